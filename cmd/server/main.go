// Package main provides the chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/guni-dev/guni-chatbot-go/internal/buildinfo"
	"github.com/guni-dev/guni-chatbot-go/internal/chat"
	"github.com/guni-dev/guni-chatbot-go/internal/config"
	"github.com/guni-dev/guni-chatbot-go/internal/dispatch"
	"github.com/guni-dev/guni-chatbot-go/internal/genai"
	"github.com/guni-dev/guni-chatbot-go/internal/intent"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
	"github.com/guni-dev/guni-chatbot-go/internal/metrics"
	"github.com/guni-dev/guni-chatbot-go/internal/ratelimit"
	"github.com/guni-dev/guni-chatbot-go/internal/schedule"
	"github.com/guni-dev/guni-chatbot-go/internal/sentry"
	"github.com/guni-dev/guni-chatbot-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (with optional Better Stack shipping)
	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting Ganpat University chatbot server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit)

	// Initialize Sentry error tracking
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
		defer sentry.Flush(2 * time.Second)
	}

	// Connect to Postgres
	db, err := storage.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("host", cfg.DBHost).WithField("database", cfg.DBName).Info("Database connected")

	// Create Prometheus registry with standard collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Repository with query instrumentation
	repo := storage.NewRepository(db, log)
	repo.SetMetrics(m)

	// Campus clock. Day resolution and "right now" queries run in the
	// campus timezone, not the host's.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Timezone).Fatal("Invalid timezone")
	}
	clock := func() time.Time { return time.Now().In(loc) }
	days := schedule.NewResolver(clock, schedule.DayCode(cfg.FallbackDay))

	// Optional Redis reply cache
	cache, err := dispatch.NewCache(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
		log.WithField("addr", cfg.RedisAddr).Info("Reply cache connected")
	} else {
		log.Info("Redis not configured, reply cache disabled")
	}

	dispatcher := dispatch.New(dispatch.Config{
		Queries:      repo,
		Cache:        cache,
		Metrics:      m,
		Log:          log,
		QueryTimeout: cfg.QueryTimeout,
		FallbackDay:  schedule.DayCode(cfg.FallbackDay),
		RoomCacheTTL: cfg.RoomCacheTTL,
	})

	// Optional LLM narrator chain (Gemini primary, Groq fallback)
	narrator, err := genai.NewNarrator(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Warn("Failed to create narrator, general questions get canned replies")
		narrator = nil
	}
	var chatNarrator chat.Narrator
	if narrator != nil {
		narrator.SetMetrics(m)
		chatNarrator = narrator
		defer func() { _ = narrator.Close() }()
		log.WithField("provider", narrator.Provider().String()).Info("Narrator enabled")
	} else {
		log.Info("No LLM provider configured, general questions get canned replies")
	}

	// Per-client rate limiting on /chat
	limiter := ratelimit.NewPerClientLimiter(ratelimit.PerClientLimiterConfig{
		MaxTokens:     cfg.ClientRateBurst,
		RefillRate:    cfg.ClientRateRefillPerSec,
		CleanupPeriod: 5 * time.Minute,
	})
	defer limiter.Stop()

	chatHandler := chat.NewHandler(chat.Config{
		Builder:    intent.NewBuilder(days, clock),
		Dispatcher: dispatcher,
		Narrator:   chatNarrator,
		Limiter:    limiter,
		Metrics:    m,
		Log:        log,
		LLMTimeout: cfg.LLMTimeout,
	})
	log.Info("Chat handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(sentryMiddleware())

	setupRoutes(router, cfg, chatHandler, db, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.ChatHTTPRead,
		WriteTimeout: config.ChatHTTPWrite,
		IdleTimeout:  config.ChatHTTPIdle,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
