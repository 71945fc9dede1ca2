package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Reading ReadingConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	BaseURL     string // Absolute base URL used when building share links
	Environment string // "development", "production", "test"
	Debug       bool
}

type RedisConfig struct {
	Host     string // Empty disables Redis (rate limiting passes through)
	Port     int
	Password string
	DB       int
}

type ReadingConfig struct {
	DefaultLang     string
	ShareRateLimit  int64
	ShareRateWindow time.Duration
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", 8080),
			BaseURL:     getEnv("APP_BASE_URL", ""),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvBool("DEBUG", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Reading: ReadingConfig{
			DefaultLang:     getEnvNonEmpty("DEFAULT_LANG", "en"),
			ShareRateLimit:  int64(getEnvInt("SHARE_RATE_LIMIT", 60)),
			ShareRateWindow: getEnvDuration("SHARE_RATE_WINDOW", time.Minute),
		},
	}

	if cfg.Reading.ShareRateLimit <= 0 {
		return nil, fmt.Errorf("SHARE_RATE_LIMIT must be positive, got %d", cfg.Reading.ShareRateLimit)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvNonEmpty(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(value) != "" {
			return value
		}
		return defaultValue
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
