// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/draw.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

// --------------------------------------------------------------------------
// Team sources
// --------------------------------------------------------------------------

const (
	SourceSample = "sample" // built-in 2024-25 registry
	SourceFile   = "file"   // YAML file at TEAMS_FILE
	SourceDB     = "db"     // Postgres draw_entrants for DRAW_SEASON
)

// EntrantsTable holds the registry for the db source.
const EntrantsTable = "draw_entrants"

// ErrInvalidConfig is returned by Load for values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Draw
	Strategy           string
	Seed               int64 // 0 = pick one per run
	MaxAttempts        int
	MaxAttemptsPerTeam int
	MaxGlobalAttempts  int

	// Format quotas (defaults: the 36-club league phase)
	OpponentsPerPot int
	HomeMatches     int
	AwayMatches     int
	MaxPerCountry   int

	// Team registry
	TeamsSource string
	TeamsFile   string
	Season      int

	// Database (db source and /health/db only)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	budget := draw.DefaultBudget()
	format := draw.DefaultConstraints()

	cfg := &Config{
		Strategy:           envOr("DRAW_STRATEGY", draw.StrategyBulk),
		Seed:               envInt64("DRAW_SEED", 0),
		MaxAttempts:        envInt("DRAW_MAX_ATTEMPTS", budget.MaxAttempts),
		MaxAttemptsPerTeam: envInt("DRAW_MAX_ATTEMPTS_PER_TEAM", budget.MaxAttemptsPerTeam),
		MaxGlobalAttempts:  envInt("DRAW_MAX_GLOBAL_ATTEMPTS", budget.MaxGlobalAttempts),

		OpponentsPerPot: envInt("DRAW_OPPONENTS_PER_POT", format.OpponentsPerPot),
		HomeMatches:     envInt("DRAW_HOME_MATCHES", format.HomeMatches),
		AwayMatches:     envInt("DRAW_AWAY_MATCHES", format.AwayMatches),
		MaxPerCountry:   envInt("DRAW_MAX_PER_COUNTRY", format.MaxPerCountry),

		TeamsSource: envOr("TEAMS_SOURCE", SourceSample),
		TeamsFile:   envOr("TEAMS_FILE", "teams.yaml"),
		Season:      envInt("DRAW_SEASON", 2024),

		DatabaseURL:    envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := draw.StrategyByName(c.Strategy, c.Budget()); err != nil {
		return fmt.Errorf("DRAW_STRATEGY: %w: %w", ErrInvalidConfig, err)
	}
	switch c.TeamsSource {
	case SourceSample, SourceFile:
	case SourceDB:
		if c.DatabaseURL == "" {
			return fmt.Errorf("TEAMS_SOURCE=db requires DATABASE_URL: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("TEAMS_SOURCE %q: %w", c.TeamsSource, ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 || c.MaxAttemptsPerTeam < 1 || c.MaxGlobalAttempts < 1 {
		return fmt.Errorf("draw budgets must be positive: %w", ErrInvalidConfig)
	}
	if err := c.Constraints().Validate(); err != nil {
		return fmt.Errorf("draw format: %w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Constraints returns the configured format quotas.
func (c *Config) Constraints() draw.Constraints {
	return draw.Constraints{
		OpponentsPerPot: c.OpponentsPerPot,
		HomeMatches:     c.HomeMatches,
		AwayMatches:     c.AwayMatches,
		MaxPerCountry:   c.MaxPerCountry,
	}
}

// Budget returns the configured draw budget.
func (c *Config) Budget() draw.Budget {
	return draw.Budget{
		MaxAttempts:        c.MaxAttempts,
		MaxAttemptsPerTeam: c.MaxAttemptsPerTeam,
		MaxGlobalAttempts:  c.MaxGlobalAttempts,
	}
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
