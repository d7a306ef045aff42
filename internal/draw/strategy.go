package draw

import (
	"fmt"
	"strconv"
	"time"
)

// Strategy is an attempt controller: it drives the candidate generator and
// committer over a Draw's state until every team is complete or its budget
// is spent.
type Strategy interface {
	Name() string
	Execute(d *Draw) Result
}

// Strategy names accepted by StrategyByName.
const (
	StrategyBulk       = "bulk"
	StrategySequential = "sequential"
)

// Budget bounds the attempts a strategy may spend.
type Budget struct {
	MaxAttempts        int `json:"max_attempts"`          // Bulk: full attempts
	MaxAttemptsPerTeam int `json:"max_attempts_per_team"` // Sequential: retries of one team from its checkpoint
	MaxGlobalAttempts  int `json:"max_global_attempts"`   // Sequential: full restarts
}

// DefaultBudget mirrors the budgets the draw has historically been run with.
func DefaultBudget() Budget {
	return Budget{
		MaxAttempts:        25000,
		MaxAttemptsPerTeam: 5000,
		MaxGlobalAttempts:  50,
	}
}

// StrategyByName returns the named strategy configured from b.
func StrategyByName(name string, b Budget) (Strategy, error) {
	switch name {
	case StrategyBulk:
		return Bulk{MaxAttempts: b.MaxAttempts}, nil
	case StrategySequential:
		return Sequential{MaxAttemptsPerTeam: b.MaxAttemptsPerTeam, MaxGlobalAttempts: b.MaxGlobalAttempts}, nil
	default:
		return nil, fmt.Errorf("strategy %q: %w", name, ErrUnknownStrategy)
	}
}

// Result tracks the outcome of one strategy run.
type Result struct {
	Strategy    string
	Seed        int64 // meaningful only when Seeded
	Seeded      bool  // false when the source came from WithRand
	Success     bool
	Attempts    int // full attempts started
	TeamRetries int // checkpoint restores (Sequential only)
	Duration    time.Duration
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	status := "ok"
	if !r.Success {
		status = "FAILED"
	}
	seed := "unknown"
	if r.Seeded {
		seed = strconv.FormatInt(r.Seed, 10)
	}
	return fmt.Sprintf("strategy=%s seed=%s attempts=%d team_retries=%d status=%s dur=%s",
		r.Strategy, seed, r.Attempts, r.TeamRetries, status, r.Duration.Round(time.Millisecond))
}

// Run executes s against d and logs the outcome.
func (d *Draw) Run(s Strategy) Result {
	start := time.Now()
	res := s.Execute(d)
	res.Strategy = s.Name()
	res.Seed, res.Seeded = d.Seed()
	res.Duration = time.Since(start)

	if res.Success {
		d.logger.Info("Draw complete", "summary", res.Summary())
	} else {
		d.logger.Warn("Draw budget exhausted", "summary", res.Summary())
	}
	return res
}

// RunBulk runs the bulk strategy with up to maxAttempts full attempts.
func (d *Draw) RunBulk(maxAttempts int) bool {
	return d.Run(Bulk{MaxAttempts: maxAttempts}).Success
}

// RunSequential runs the pot-by-pot strategy.
func (d *Draw) RunSequential(maxAttemptsPerTeam, maxGlobalAttempts int) bool {
	return d.Run(Sequential{
		MaxAttemptsPerTeam: maxAttemptsPerTeam,
		MaxGlobalAttempts:  maxGlobalAttempts,
	}).Success
}

func (d *Draw) shuffled(idx []int) []int {
	out := append([]int(nil), idx...)
	d.rng.Shuffle(len(out), func(x, y int) { out[x], out[y] = out[y], out[x] })
	return out
}
