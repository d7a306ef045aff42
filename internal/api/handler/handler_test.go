package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-draw/internal/api/respond"
	"github.com/albapepper/scoracle-draw/internal/cache"
	"github.com/albapepper/scoracle-draw/internal/config"
	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/drawtest"
	"github.com/albapepper/scoracle-draw/internal/export"
	"github.com/albapepper/scoracle-draw/internal/metrics"
)

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func testConfig() *config.Config {
	b := drawtest.Budget()
	c := drawtest.Constraints()
	return &config.Config{
		Strategy:           draw.StrategyBulk,
		MaxAttempts:        b.MaxAttempts,
		MaxAttemptsPerTeam: b.MaxAttemptsPerTeam,
		MaxGlobalAttempts:  b.MaxGlobalAttempts,
		OpponentsPerPot:    c.OpponentsPerPot,
		HomeMatches:        c.HomeMatches,
		AwayMatches:        c.AwayMatches,
		MaxPerCountry:      c.MaxPerCountry,
		CacheEnabled:       true,
		CacheTTL:           time.Hour,
	}
}

// newTestHandler serves the compact registry, which completes for every seed
// within drawtest.Budget.
func newTestHandler(t *testing.T, cfg *config.Config, db HealthChecker) *Handler {
	t.Helper()
	c := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	t.Cleanup(c.Close)
	return New(Deps{
		Teams:       drawtest.Teams(),
		Constraints: cfg.Constraints(),
		Cache:       c,
		Config:      cfg,
		Metrics:     metrics.New(),
		DB:          db,
	})
}

func get(h http.HandlerFunc, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	rec := get(h.Root, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var root map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &root))
	assert.EqualValues(t, 8, root["teams"])
	assert.Equal(t, draw.StrategyBulk, root["strategy"])

	assert.Equal(t, http.StatusOK, get(h.HealthCheck, "/health", nil).Code)
	assert.Contains(t, get(h.HealthCheckDB, "/health/db", nil).Body.String(), "not_configured")
	assert.Contains(t, get(h.HealthCheckCache, "/health/cache", nil).Body.String(), `"enabled":true`)
}

func TestHealthCheckDB(t *testing.T) {
	ok := newTestHandler(t, testConfig(), fakeDB{})
	rec := get(ok.HealthCheckDB, "/health/db", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "connected")

	down := newTestHandler(t, testConfig(), fakeDB{err: errors.New("refused")})
	rec = get(down.HealthCheckDB, "/health/db", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "disconnected")
}

func TestGetTeamsUsesETag(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	rec := get(h.GetTeams, "/api/v1/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var teams []draw.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 8)
	assert.Equal(t, "Manchester City", teams[0].Name, "pot 1 sorted by name")
	assert.Equal(t, draw.Pot(4), teams[7].Pot)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rec = get(h.GetTeams, "/api/v1/teams", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = get(h.GetTeams, "/api/v1/teams", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestGetDrawBadRequest(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	for _, target := range []string{
		"/api/v1/draw?seed=abc",
		"/api/v1/draw?strategy=random&seed=1",
	} {
		rec := get(h.GetDraw, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		var resp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	}
}

func TestGetDrawBudgetExhaustedIsCached(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = draw.StrategySequential
	cfg.MaxAttemptsPerTeam = 1
	cfg.MaxGlobalAttempts = 1
	h := newTestHandler(t, cfg, nil)
	// No team can be drawn in a format that needs two opponents per pot from
	// pots of two clubs.
	h.constraints = draw.DefaultConstraints()

	rec := get(h.GetDraw, "/api/v1/draw?seed=9", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "9", rec.Header().Get("X-Draw-Seed"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var resp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, respond.CodeDrawFailed, resp.Error.Code)
	assert.Contains(t, resp.Error.Detail, "status=FAILED")

	for _, fn := range []http.HandlerFunc{h.GetDraw, h.GetDrawStats, h.GetDrawVerify} {
		again := get(fn, "/api/v1/draw?seed=9", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, again.Code)
		assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
		assert.Equal(t, rec.Body.String(), again.Body.String())
	}
	assert.Contains(t, get(h.HealthCheckCache, "/health/cache", nil).Body.String(), `"hits":3`)
}

func TestGetDrawEchoesGeneratedSeed(t *testing.T) {
	cfg := testConfig()
	h := newTestHandler(t, cfg, nil)

	rec := get(h.GetDraw, "/api/v1/draw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seed := rec.Header().Get("X-Draw-Seed")
	require.NotEmpty(t, seed)
	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotNil(t, doc.Seed)
	assert.Equal(t, seed, strconv.FormatInt(*doc.Seed, 10))

	cfg.Seed = 77
	rec = get(h.GetDraw, "/api/v1/draw", nil)
	assert.Equal(t, "77", rec.Header().Get("X-Draw-Seed"))
}

func TestGetDrawDocumentAndCache(t *testing.T) {
	for _, strategy := range []string{draw.StrategyBulk, draw.StrategySequential} {
		t.Run(strategy, func(t *testing.T) {
			h := newTestHandler(t, testConfig(), nil)
			target := "/api/v1/draw?strategy=" + strategy + "&seed=1"

			rec := get(h.GetDraw, target, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
			assert.Equal(t, "1", rec.Header().Get("X-Draw-Seed"))

			var doc export.Document
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			assert.Equal(t, strategy, doc.Strategy)
			require.NotNil(t, doc.Seed)
			assert.Equal(t, int64(1), *doc.Seed)
			assert.Equal(t, drawtest.Budget(), doc.Budget)
			assert.Len(t, doc.Teams, 8)
			assert.Len(t, doc.Matches, drawtest.Matches)
			for _, tf := range doc.Teams {
				assert.Len(t, tf.Fixtures.Home, 2, tf.Name)
				assert.Len(t, tf.Fixtures.Away, 2, tf.Name)
			}
			assert.NotEmpty(t, doc.DrawID)

			again := get(h.GetDraw, target, nil)
			assert.Equal(t, http.StatusOK, again.Code)
			assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
			assert.Equal(t, rec.Body.String(), again.Body.String())

			notModified := get(h.GetDraw, target, http.Header{"If-None-Match": {rec.Header().Get("ETag")}})
			assert.Equal(t, http.StatusNotModified, notModified.Code)
			assert.Empty(t, notModified.Body.String())
		})
	}
}

func TestGetDrawStatsAndVerify(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	rec := get(h.GetDrawVerify, "/api/v1/draw/verify?seed=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Valid)
	assert.Empty(t, v.Violations)
	assert.Equal(t, draw.StrategyBulk, v.Strategy)
	assert.GreaterOrEqual(t, v.Attempts, 1)

	rec = get(h.GetDrawStats, "/api/v1/draw/stats?seed=1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, v.DrawID, s.DrawID, "same registry, strategy, seed and budget share an ID")
	assert.Equal(t, drawtest.Matches, s.Stats.Matches)
	assert.Equal(t, drawtest.Matches, s.Stats.International)
	assert.Zero(t, s.Stats.MaxDifference)

	doc := get(h.GetDraw, "/api/v1/draw?seed=1", nil)
	var d export.Document
	require.NoError(t, json.Unmarshal(doc.Body.Bytes(), &d))
	assert.Equal(t, v.DrawID, d.DrawID)
}
