package simulate

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/drawtest"
)

var quiet = slog.New(slog.DiscardHandler)

func TestRunCompletesEveryCompactDraw(t *testing.T) {
	for _, strategy := range []string{draw.StrategyBulk, draw.StrategySequential} {
		t.Run(strategy, func(t *testing.T) {
			res, err := Run(context.Background(), drawtest.Teams(), drawtest.Constraints(), Options{
				Strategy: strategy,
				Budget:   drawtest.Budget(),
				Runs:     6,
				Workers:  3,
				BaseSeed: 100,
			}, quiet)
			require.NoError(t, err)

			assert.Equal(t, 6, res.Runs)
			assert.Equal(t, 6, res.Succeeded)
			assert.Equal(t, 6, res.Verified)
			assert.Empty(t, res.Errors)
			assert.InDelta(t, 1.0, res.SuccessRate(), 1e-9)
			require.Len(t, res.Results, 6)
			for i, rr := range res.Results {
				assert.Equal(t, int64(100+i), rr.Seed)
				assert.Empty(t, rr.Violations)
			}
			assert.Contains(t, res.Summary(), "runs=6 succeeded=6 failed=0 verified=6")
		})
	}
}

func TestRunRecordsExhaustedRuns(t *testing.T) {
	res, err := Run(context.Background(), drawtest.Teams(), draw.DefaultConstraints(), Options{
		Strategy: draw.StrategyBulk,
		Budget:   draw.Budget{MaxAttempts: 2},
		Runs:     3,
		Workers:  2,
		BaseSeed: 1,
	}, quiet)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, 6, res.TotalAttempts)
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "budget exhausted after 2 attempts")
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	opts := Options{
		Strategy: draw.StrategySequential,
		Budget:   drawtest.Budget(),
		Runs:     6,
		BaseSeed: 7,
	}
	run := func(workers int) []RunResult {
		opts.Workers = workers
		res, err := Run(context.Background(), drawtest.Teams(), drawtest.Constraints(), opts, quiet)
		require.NoError(t, err)
		for i := range res.Results {
			res.Results[i].Duration = 0
		}
		return res.Results
	}
	assert.Equal(t, run(1), run(3))
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := Run(context.Background(), draw.SampleTeams(), draw.DefaultConstraints(), Options{Strategy: "nope", Runs: 1}, quiet)
	assert.ErrorIs(t, err, draw.ErrUnknownStrategy)

	dup := append(draw.SampleTeams(), draw.Team{Name: "Celtic", Country: "SCO", Pot: 3})
	_, err = Run(context.Background(), dup, draw.DefaultConstraints(), Options{Strategy: draw.StrategyBulk, Runs: 1}, quiet)
	assert.ErrorIs(t, err, draw.ErrDuplicateTeam)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, draw.SampleTeams(), draw.DefaultConstraints(), Options{
		Strategy: draw.StrategyBulk,
		Budget:   draw.Budget{MaxAttempts: 1},
		Runs:     10,
		Workers:  2,
	}, quiet)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Runs)
}

func TestSuccessRate(t *testing.T) {
	r := Result{Runs: 4, Succeeded: 3}
	assert.InDelta(t, 0.75, r.SuccessRate(), 1e-9)
	assert.Zero(t, (&Result{}).SuccessRate())
}
