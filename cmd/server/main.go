package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tarotdaily/tarotdaily/internal/config"
	"github.com/tarotdaily/tarotdaily/internal/database"
	"github.com/tarotdaily/tarotdaily/internal/deck"
	"github.com/tarotdaily/tarotdaily/internal/handlers"
	"github.com/tarotdaily/tarotdaily/internal/logging"
	"github.com/tarotdaily/tarotdaily/internal/middleware"
	"github.com/tarotdaily/tarotdaily/internal/models"
	"github.com/tarotdaily/tarotdaily/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env": cfg.Server.Environment,
		})
	}

	logger.Info("Starting Tarot Daily server...")

	// Connect to Redis when configured. Without it rate limiting
	// passes everything through.
	var redisDB *database.RedisDB
	if cfg.Redis.Enabled() {
		logger.Info("Connecting to Redis", map[string]interface{}{
			"addr": cfg.Redis.Addr(),
		})
		redisDB, err = database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()
		logger.Info("Connected to Redis")
	} else {
		logger.Info("Redis not configured; rate limiting disabled")
	}

	// Load the deck eagerly so bad card data fails startup, not the
	// first request.
	loader := deck.NewLoader()
	for _, lang := range []models.Lang{models.LangEN, models.LangUK} {
		cards, err := loader.Load(lang)
		if err != nil {
			return fmt.Errorf("loading %s deck: %w", lang, err)
		}
		logger.Info("Deck loaded", map[string]interface{}{
			"lang":  string(lang),
			"cards": len(cards),
		})
	}

	// Initialize services
	drawService := services.NewDrawService(services.NewRNG())
	history := services.NewMemoryHistory()
	analytics := services.NewLogSink(logger)
	readingService := services.NewReadingService(loader, drawService, history, analytics, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redisDB, loader)
	readingHandler := handlers.NewReadingHandler(readingService, cfg.Server.BaseURL)
	pageHandler, err := handlers.NewPageHandler("web/templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	sharePublicHandler, err := handlers.NewSharePublicHandler("web/templates", readingService)
	if err != nil {
		return fmt.Errorf("loading share templates: %w", err)
	}

	// Initialize middleware
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Environment == "production")
	requestLogger := middleware.NewRequestLogger(logger)

	var redisClient *redis.Client
	if redisDB != nil {
		redisClient = redisDB.Client
	}
	shareRateLimiter := middleware.NewRateLimiter(redisClient, cfg.Reading.ShareRateLimit, cfg.Reading.ShareRateWindow, "ratelimit:share:", nil, true)
	drawRateLimiter := middleware.NewRateLimiter(redisClient, cfg.Reading.ShareRateLimit, cfg.Reading.ShareRateWindow, "ratelimit:draw:", nil, true)

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Reading API
	mux.Handle("POST /api/readings/draw", drawRateLimiter.Middleware(http.HandlerFunc(readingHandler.Draw)))
	mux.Handle("POST /api/readings/aspects", drawRateLimiter.Middleware(http.HandlerFunc(readingHandler.Aspects)))
	mux.Handle("POST /api/readings/share", shareRateLimiter.Middleware(http.HandlerFunc(readingHandler.Share)))
	mux.HandleFunc("GET /api/share/{token}", readingHandler.GetShared)
	mux.HandleFunc("GET /api/history", readingHandler.History)

	// Public share landing page (for link unfurls)
	mux.HandleFunc("GET /share/{token}", sharePublicHandler.Serve)

	// Static files
	fs := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("GET /{$}", pageHandler.Index)

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
