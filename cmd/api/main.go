// Command api is the Scoracle draw API server.
//
// Usage:
//
//	scoracle-draw-api
//	API_PORT=8080 DRAW_STRATEGY=sequential scoracle-draw-api

// @title Scoracle Draw API
// @version 1.0.0
// @description Balanced league-phase draw service: seeded bulk and sequential draws, verification and statistics.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-draw/internal/api"
	"github.com/albapepper/scoracle-draw/internal/api/handler"
	"github.com/albapepper/scoracle-draw/internal/cache"
	"github.com/albapepper/scoracle-draw/internal/config"
	"github.com/albapepper/scoracle-draw/internal/db"
	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/metrics"
	"github.com/albapepper/scoracle-draw/internal/registry"

	_ "github.com/albapepper/scoracle-draw/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Database is optional: only the db teams source and /health/db use it.
	var (
		pool    *db.Pool
		checker handler.HealthChecker
		querier registry.Querier
	)
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		checker, querier = pool, pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	teams, err := registry.Load(ctx, cfg, querier)
	if err != nil {
		logger.Error("Failed to load teams", "source", cfg.TeamsSource, "error", err)
		os.Exit(1)
	}
	constraints := cfg.Constraints()
	// Validate the registry once at startup instead of on the first request.
	if _, err := draw.New(teams, constraints); err != nil {
		logger.Error("Invalid team registry", "source", cfg.TeamsSource, "error", err)
		os.Exit(1)
	}
	logger.Info("Teams loaded", "source", cfg.TeamsSource, "teams", len(teams))

	appCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	router := api.NewRouter(handler.Deps{
		Teams:       teams,
		Constraints: constraints,
		Cache:       appCache,
		Config:      cfg,
		Metrics:     metrics.New(),
		DB:          checker,
		Logger:      logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Scoracle Draw API",
			"addr", addr,
			"environment", cfg.Environment,
			"strategy", cfg.Strategy,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
