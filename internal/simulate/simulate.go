// Package simulate runs many independent seeded draws to measure how often a
// strategy completes within its budget.
package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Options configures a batch.
type Options struct {
	Strategy string
	Budget   draw.Budget
	Runs     int
	Workers  int
	BaseSeed int64 // run i uses BaseSeed+i
}

// RunResult is the outcome of one seeded draw.
type RunResult struct {
	Seed        int64
	Success     bool
	Verified    bool
	Attempts    int
	TeamRetries int
	Violations  []string
	Duration    time.Duration
}

// Result tracks the outcome of a full batch.
type Result struct {
	Runs          int
	Succeeded     int
	Failed        int
	Verified      int
	TotalAttempts int
	Duration      time.Duration
	Errors        []string
	Results       []RunResult // ordered by seed
}

// SuccessRate is the fraction of runs that completed.
func (r *Result) SuccessRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Runs)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"runs=%d succeeded=%d failed=%d verified=%d rate=%.3f attempts=%d dur=%s",
		r.Runs, r.Succeeded, r.Failed, r.Verified, r.SuccessRate(),
		r.TotalAttempts, r.Duration.Round(time.Millisecond))
}

// --------------------------------------------------------------------------
// Batch runner
// --------------------------------------------------------------------------

// Run executes opts.Runs draws over a worker pool. Every run builds its own
// Draw with its own seeded source, so results do not depend on scheduling.
// Cancelling ctx stops workers from picking up further seeds.
func Run(ctx context.Context, teams []draw.Team, c draw.Constraints, opts Options, logger *slog.Logger) (Result, error) {
	start := time.Now()
	var result Result

	strategy, err := draw.StrategyByName(opts.Strategy, opts.Budget)
	if err != nil {
		return result, err
	}
	// Fail on a bad registry before spinning up workers.
	if _, err := draw.New(teams, c, draw.WithSeed(opts.BaseSeed)); err != nil {
		return result, fmt.Errorf("build draw: %w", err)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Runs {
		workers = max(opts.Runs, 1)
	}

	ch := make(chan int64, opts.Runs)
	for i := range opts.Runs {
		ch <- opts.BaseSeed + int64(i)
	}
	close(ch)

	results := make([]RunResult, opts.Runs)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range ch {
				if ctx.Err() != nil {
					return
				}
				rr := runOne(teams, c, strategy, seed)

				mu.Lock()
				results[seed-opts.BaseSeed] = rr
				result.Runs++
				result.TotalAttempts += rr.Attempts
				if rr.Success {
					result.Succeeded++
				} else {
					result.Failed++
					result.AddErrorf("seed %d: budget exhausted after %d attempts", seed, rr.Attempts)
				}
				if rr.Verified {
					result.Verified++
				} else if rr.Success {
					result.AddErrorf("seed %d: %d violations", seed, len(rr.Violations))
				}
				mu.Unlock()

				logger.Debug("Simulated draw", "seed", seed, "success", rr.Success, "attempts", rr.Attempts)
			}
		}()
	}

	wg.Wait()
	for _, rr := range results {
		if rr.Duration > 0 {
			result.Results = append(result.Results, rr)
		}
	}
	result.Duration = time.Since(start)

	logger.Info("Simulation complete", "strategy", opts.Strategy, "summary", result.Summary())
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("simulation interrupted: %w", err)
	}
	return result, nil
}

func runOne(teams []draw.Team, c draw.Constraints, s draw.Strategy, seed int64) RunResult {
	d, err := draw.New(teams, c, draw.WithSeed(seed))
	if err != nil {
		// Registry was validated up front.
		panic(err)
	}
	res := d.Run(s)
	rr := RunResult{
		Seed:        seed,
		Success:     res.Success,
		Attempts:    res.Attempts,
		TeamRetries: res.TeamRetries,
		Duration:    max(res.Duration, time.Nanosecond),
	}
	if res.Success {
		report := d.Verify()
		rr.Verified = report.OK()
		rr.Violations = report.Messages()
	}
	return rr
}
