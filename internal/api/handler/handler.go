// Package handler provides HTTP handlers for all API endpoints.
// Draw endpoints run a fresh seeded draw per request and cache the rendered
// document under (kind, strategy, seed, budget).
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-draw/internal/api/respond"
	"github.com/albapepper/scoracle-draw/internal/cache"
	"github.com/albapepper/scoracle-draw/internal/config"
	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/metrics"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the shared dependencies of the router and its handlers.
// DB and Metrics may be nil.
type Deps struct {
	Teams       []draw.Team
	Constraints draw.Constraints
	Cache       *cache.Cache
	Config      *config.Config
	Metrics     *metrics.Metrics
	DB          HealthChecker
	Logger      *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	teams       []draw.Team
	constraints draw.Constraints
	cache       *cache.Cache
	cfg         *config.Config
	metrics     *metrics.Metrics
	db          HealthChecker
	logger      *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		teams:       deps.Teams,
		constraints: deps.Constraints,
		cache:       deps.Cache,
		cfg:         deps.Config,
		metrics:     deps.Metrics,
		db:          deps.DB,
		logger:      logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the configured draw defaults.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"name":       "Scoracle Draw API",
		"version":    "1.0.0",
		"status":     "running",
		"docs":       "/docs",
		"teams":      len(h.teams),
		"strategy":   h.cfg.Strategy,
		"strategies": []string{draw.StrategyBulk, draw.StrategySequential},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity when the registry is database-backed.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.JSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.JSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
