package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("expected redis disabled by default")
	}
	if cfg.Reading.DefaultLang != "en" {
		t.Fatalf("expected default lang en, got %q", cfg.Reading.DefaultLang)
	}
	if cfg.Reading.ShareRateWindow != time.Minute {
		t.Fatalf("expected default rate window 1m, got %v", cfg.Reading.ShareRateWindow)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SHARE_RATE_LIMIT", "10")
	t.Setenv("SHARE_RATE_WINDOW", "30s")
	t.Setenv("DEFAULT_LANG", "uk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.Addr() != "redis.internal:6379" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Reading.ShareRateLimit != 10 || cfg.Reading.ShareRateWindow != 30*time.Second {
		t.Fatalf("unexpected rate limit config: %+v", cfg.Reading)
	}
	if cfg.Reading.DefaultLang != "uk" {
		t.Fatalf("expected default lang uk, got %q", cfg.Reading.DefaultLang)
	}
}

func TestLoadRejectsInvalidRateLimit(t *testing.T) {
	t.Setenv("SHARE_RATE_LIMIT", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative rate limit to be rejected")
	}
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("DEBUG", "not-a-bool")
	t.Setenv("SHARE_RATE_WINDOW", "sideways")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Debug || cfg.Reading.ShareRateWindow != time.Minute {
		t.Fatalf("expected defaults for malformed values, got %+v", cfg)
	}
}
