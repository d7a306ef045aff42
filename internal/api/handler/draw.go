package handler

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"strconv"

	"github.com/albapepper/scoracle-draw/internal/api/respond"
	"github.com/albapepper/scoracle-draw/internal/cache"
	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/export"
	"github.com/albapepper/scoracle-draw/internal/stats"
)

// Cache kinds. A budget-exhausted run is deterministic for (strategy, seed,
// budget), so its 422 body is cached once under kindFailed and replayed for
// every document kind.
const (
	kindDraw   = "draw"
	kindStats  = "stats"
	kindVerify = "verify"
	kindTeams  = "teams"
	kindFailed = "failed"
)

// drawRun is one executed request-scoped draw.
type drawRun struct {
	draw   *draw.Draw
	result draw.Result
	report draw.Report
	meta   export.Meta
}

// StatsResponse wraps the statistics of one seeded draw.
type StatsResponse struct {
	DrawID   string      `json:"draw_id"`
	Strategy string      `json:"strategy"`
	Seed     int64       `json:"seed"`
	Stats    stats.Stats `json:"stats"`
}

// VerifyResponse reports the verifier's outcome for one seeded draw.
type VerifyResponse struct {
	DrawID      string           `json:"draw_id"`
	Strategy    string           `json:"strategy"`
	Seed        int64            `json:"seed"`
	Attempts    int              `json:"attempts"`
	TeamRetries int              `json:"team_retries"`
	Valid       bool             `json:"valid"`
	Violations  []draw.Violation `json:"violations"`
}

// GetTeams returns the registry ordered by pot, then name.
// @Summary List entrants
// @Description Returns every team in the draw with its country and pot, grouped by pot.
// @Tags draw
// @Produce json
// @Success 200 {array} draw.Team
// @Router /teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	if data, etag, ok := h.cache.Get(kindTeams); ok {
		respond.Cached(w, r, data, etag, h.cfg.CacheTTL, true)
		return
	}
	teams := slices.Clone(h.teams)
	slices.SortFunc(teams, func(a, b draw.Team) int {
		return cmp.Or(cmp.Compare(a.Pot, b.Pot), cmp.Compare(a.Name, b.Name))
	})
	data, err := json.Marshal(teams)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to render teams", err.Error())
		return
	}
	etag := h.cache.Set(kindTeams, data)
	respond.Cached(w, r, data, etag, h.cfg.CacheTTL, false)
}

// GetDraw runs a seeded draw and returns the exported document.
// @Summary Run a draw
// @Description Runs the league-phase draw with the given strategy and seed. Omitting the seed picks one; the seed used is echoed in the body and the X-Draw-Seed header.
// @Tags draw
// @Produce json
// @Param strategy query string false "bulk or sequential"
// @Param seed query int false "RNG seed"
// @Success 200 {object} export.Document
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /draw [get]
func (h *Handler) GetDraw(w http.ResponseWriter, r *http.Request) {
	h.serveDraw(w, r, kindDraw, func(run drawRun) any {
		return export.Build(run.draw, run.meta)
	})
}

// GetDrawStats runs a seeded draw and returns its statistics.
// @Summary Draw statistics
// @Description Pot and country matchup tables plus home/away balance for a seeded draw.
// @Tags draw
// @Produce json
// @Param strategy query string false "bulk or sequential"
// @Param seed query int false "RNG seed"
// @Success 200 {object} handler.StatsResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /draw/stats [get]
func (h *Handler) GetDrawStats(w http.ResponseWriter, r *http.Request) {
	h.serveDraw(w, r, kindStats, func(run drawRun) any {
		return StatsResponse{
			DrawID:   export.DrawID(run.draw, run.meta).String(),
			Strategy: run.meta.Strategy,
			Seed:     run.meta.Seed,
			Stats:    stats.Compute(run.draw),
		}
	})
}

// GetDrawVerify runs a seeded draw and returns the verifier's report.
// @Summary Verify a draw
// @Description Runs every constraint check against a seeded draw.
// @Tags draw
// @Produce json
// @Param strategy query string false "bulk or sequential"
// @Param seed query int false "RNG seed"
// @Success 200 {object} handler.VerifyResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /draw/verify [get]
func (h *Handler) GetDrawVerify(w http.ResponseWriter, r *http.Request) {
	h.serveDraw(w, r, kindVerify, func(run drawRun) any {
		violations := run.report.Violations
		if violations == nil {
			violations = []draw.Violation{}
		}
		return VerifyResponse{
			DrawID:      export.DrawID(run.draw, run.meta).String(),
			Strategy:    run.meta.Strategy,
			Seed:        run.meta.Seed,
			Attempts:    run.result.Attempts,
			TeamRetries: run.result.TeamRetries,
			Valid:       run.report.OK(),
			Violations:  violations,
		}
	})
}

// --------------------------------------------------------------------------
// Shared draw pipeline
// --------------------------------------------------------------------------

func (h *Handler) serveDraw(w http.ResponseWriter, r *http.Request, kind string, render func(drawRun) any) {
	name, seed, err := h.drawParams(r)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, respond.CodeBadRequest, "Invalid draw parameters", err.Error())
		return
	}
	budget := h.cfg.Budget()
	strategy, err := draw.StrategyByName(name, budget)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, respond.CodeBadRequest, "Invalid draw parameters", err.Error())
		return
	}
	w.Header().Set("X-Draw-Seed", strconv.FormatInt(seed, 10))

	key := cache.Key(kind, name, seed, budget)
	failedKey := cache.Key(kindFailed, name, seed, budget)
	if data, etag, ok := h.cache.Get(key); ok {
		respond.Cached(w, r, data, etag, h.cfg.CacheTTL, true)
		return
	}
	if body, _, ok := h.cache.Get(failedKey); ok {
		w.Header().Set("X-Cache", "HIT")
		respond.FailBody(w, http.StatusUnprocessableEntity, body)
		return
	}

	d, err := draw.New(h.teams, h.constraints, draw.WithSeed(seed), draw.WithLogger(h.logger))
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to build draw", err.Error())
		return
	}
	res := d.Run(strategy)
	if !res.Success {
		if h.metrics != nil {
			h.metrics.ObserveDraw(res, 0)
		}
		body := respond.ErrorBody(respond.CodeDrawFailed,
			"Attempt budget exhausted before a complete draw was found", res.Summary())
		h.cache.Set(failedKey, body)
		w.Header().Set("X-Cache", "MISS")
		respond.FailBody(w, http.StatusUnprocessableEntity, body)
		return
	}
	report := d.Verify()
	if h.metrics != nil {
		h.metrics.ObserveDraw(res, len(report.Violations))
	}

	run := drawRun{draw: d, result: res, report: report, meta: export.MetaFor(res, budget)}
	data, err := json.Marshal(render(run))
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to render draw", err.Error())
		return
	}
	etag := h.cache.Set(key, data)
	respond.Cached(w, r, data, etag, h.cfg.CacheTTL, false)
}

var errBadSeed = errors.New("seed must be an integer")

// drawParams resolves strategy and seed from the query, falling back to the
// configured defaults. With no seed anywhere a random one is drawn so the
// response can still be reproduced.
func (h *Handler) drawParams(r *http.Request) (string, int64, error) {
	q := r.URL.Query()
	name := q.Get("strategy")
	if name == "" {
		name = h.cfg.Strategy
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q", errBadSeed, raw)
		}
		return name, seed, nil
	}
	if h.cfg.Seed != 0 {
		return name, h.cfg.Seed, nil
	}
	return name, rand.Int64N(1 << 31), nil
}
