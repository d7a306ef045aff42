// Command draw is the Scoracle league-phase draw CLI.
//
// Usage:
//
//	scoracle-draw run --seed 42
//	scoracle-draw run --strategy sequential --per-team 20000
//	scoracle-draw run --format pot --stats
//	scoracle-draw verify --strategy bulk --seed 7
//	scoracle-draw export --seed 42 --out draw.json
//	scoracle-draw simulate --runs 200 --workers 8
//	scoracle-draw teams --yaml > teams.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-draw/internal/config"
	"github.com/albapepper/scoracle-draw/internal/db"
	"github.com/albapepper/scoracle-draw/internal/draw"
	"github.com/albapepper/scoracle-draw/internal/export"
	"github.com/albapepper/scoracle-draw/internal/registry"
	"github.com/albapepper/scoracle-draw/internal/report"
	"github.com/albapepper/scoracle-draw/internal/simulate"
	"github.com/albapepper/scoracle-draw/internal/stats"
)

var errDrawFailed = errors.New("draw failed")

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scoracle-draw",
		Short:         "Balanced league-phase draw CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(runCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(teamsCmd())
	return root
}

// --------------------------------------------------------------------------
// Shared flags and setup
// --------------------------------------------------------------------------

type drawFlags struct {
	strategy    string
	seed        int64
	maxAttempts int
	perTeam     int
	global      int
	source      string
	teamsFile   string
	verbose     bool
}

func addDrawFlags(cmd *cobra.Command, f *drawFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.strategy, "strategy", draw.StrategyBulk, "Draw strategy (bulk, sequential)")
	fs.Int64Var(&f.seed, "seed", 0, "RNG seed (0 = pick one)")
	fs.IntVar(&f.maxAttempts, "max-attempts", 0, "Bulk: maximum full attempts")
	fs.IntVar(&f.perTeam, "per-team", 0, "Sequential: maximum retries per team")
	fs.IntVar(&f.global, "global", 0, "Sequential: maximum full restarts")
	addSourceFlags(cmd, f)
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging")
}

func addSourceFlags(cmd *cobra.Command, f *drawFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.source, "source", config.SourceSample, "Teams source (sample, file, db)")
	fs.StringVar(&f.teamsFile, "teams", "", "YAML teams file (implies --source file)")
}

// session is the resolved configuration and registry for one command.
type session struct {
	cfg    *config.Config
	teams  []draw.Team
	logger *slog.Logger
}

// runWith loads config, applies flag overrides, loads the registry and hands
// the session to fn.
func runWith(cmd *cobra.Command, f *drawFlags, fn func(ctx context.Context, s *session) error) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, f, cfg)

	level := slog.LevelInfo
	if f.verbose || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var q registry.Querier
	if cfg.TeamsSource == config.SourceDB {
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		q = pool
	}

	teams, err := registry.Load(ctx, cfg, q)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	logger.Debug("Teams loaded", "source", cfg.TeamsSource, "teams", len(teams))

	return fn(ctx, &session{cfg: cfg, teams: teams, logger: logger})
}

func applyFlags(cmd *cobra.Command, f *drawFlags, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("max-attempts") {
		cfg.MaxAttempts = f.maxAttempts
	}
	if fs.Changed("per-team") {
		cfg.MaxAttemptsPerTeam = f.perTeam
	}
	if fs.Changed("global") {
		cfg.MaxGlobalAttempts = f.global
	}
	if fs.Changed("source") {
		cfg.TeamsSource = f.source
	}
	if f.teamsFile != "" {
		cfg.TeamsSource = config.SourceFile
		cfg.TeamsFile = f.teamsFile
	}
}

// draw runs the configured strategy once. On budget exhaustion the partial
// draw is still returned alongside errDrawFailed.
func (s *session) draw() (*draw.Draw, draw.Result, error) {
	strategy, err := draw.StrategyByName(s.cfg.Strategy, s.cfg.Budget())
	if err != nil {
		return nil, draw.Result{}, err
	}
	opts := []draw.Option{draw.WithLogger(s.logger)}
	if s.cfg.Seed != 0 {
		opts = append(opts, draw.WithSeed(s.cfg.Seed))
	}
	d, err := draw.New(s.teams, s.cfg.Constraints(), opts...)
	if err != nil {
		return nil, draw.Result{}, fmt.Errorf("build draw: %w", err)
	}

	res := d.Run(strategy)
	if !res.Success {
		return d, res, fmt.Errorf("%w: %s", errDrawFailed, res.Summary())
	}
	return d, res, nil
}

func (s *session) meta(res draw.Result) export.Meta {
	return export.MetaFor(res, s.cfg.Budget())
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		f         drawFlags
		format    string
		out       string
		withStats bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a draw and print the fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "pot", "json":
			default:
				return fmt.Errorf("unknown format %q (text, pot, json)", format)
			}
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				d, res, err := s.draw()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()

				switch format {
				case "json":
					doc := export.Build(d, s.meta(res))
					if out != "" {
						if err := export.WriteFile(out, doc); err != nil {
							return err
						}
						s.logger.Info("Draw exported", "path", out, "draw_id", doc.DrawID)
					} else {
						data, err := export.Marshal(doc)
						if err != nil {
							return err
						}
						fmt.Fprintln(w, string(data))
					}
				case "pot":
					report.WriteByPot(w, d)
				default:
					report.WriteByTeam(w, d)
				}

				if format != "json" {
					report.WriteVerification(w, d.Verify())
					fmt.Fprintf(w, "\n%s\n", res.Summary())
				}
				if withStats {
					stats.Write(w, stats.Compute(d))
				}
				return nil
			})
		},
	}
	addDrawFlags(cmd, &f)
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, pot, json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&withStats, "stats", false, "Append draw statistics")
	return cmd
}

// --------------------------------------------------------------------------
// verify command
// --------------------------------------------------------------------------

func verifyCmd() *cobra.Command {
	var f drawFlags
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run a draw and check every constraint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				d, res, drawErr := s.draw()
				if d == nil {
					return drawErr
				}
				w := cmd.OutOrStdout()
				rep := d.Verify()
				report.WriteVerification(w, rep)
				fmt.Fprintf(w, "\n%s\n", res.Summary())
				if drawErr != nil {
					return drawErr
				}
				if !rep.OK() {
					return fmt.Errorf("%d constraint violations", len(rep.Violations))
				}
				return nil
			})
		},
	}
	addDrawFlags(cmd, &f)
	return cmd
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	var f drawFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a draw and print matchup statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				d, _, err := s.draw()
				if err != nil {
					return err
				}
				stats.Write(cmd.OutOrStdout(), stats.Compute(d))
				return nil
			})
		},
	}
	addDrawFlags(cmd, &f)
	return cmd
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var (
		f          drawFlags
		out        string
		tournament string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run a draw and write it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				d, res, err := s.draw()
				if err != nil {
					return err
				}
				meta := s.meta(res)
				meta.Tournament = tournament
				doc := export.Build(d, meta)
				if err := export.WriteFile(out, doc); err != nil {
					return err
				}
				s.logger.Info("Draw exported", "path", out, "draw_id", doc.DrawID, "matches", len(doc.Matches))
				return nil
			})
		},
	}
	addDrawFlags(cmd, &f)
	cmd.Flags().StringVarP(&out, "out", "o", "draw.json", "Output file")
	cmd.Flags().StringVar(&tournament, "tournament", export.DefaultTournament, "Tournament label")
	return cmd
}

// --------------------------------------------------------------------------
// simulate command
// --------------------------------------------------------------------------

func simulateCmd() *cobra.Command {
	var (
		f       drawFlags
		runs    int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run many seeded draws and report the success rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("--runs must be positive")
			}
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				base := s.cfg.Seed
				if base == 0 {
					base = 1
				}
				result, err := simulate.Run(ctx, s.teams, s.cfg.Constraints(), simulate.Options{
					Strategy: s.cfg.Strategy,
					Budget:   s.cfg.Budget(),
					Runs:     runs,
					Workers:  workers,
					BaseSeed: base,
				}, s.logger)
				for _, e := range result.Errors {
					s.logger.Warn("simulation run failed", "error", e)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
				return err
			})
		},
	}
	addDrawFlags(cmd, &f)
	cmd.Flags().IntVar(&runs, "runs", 100, "Number of seeded draws")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent workers")
	return cmd
}

// --------------------------------------------------------------------------
// teams command
// --------------------------------------------------------------------------

func teamsCmd() *cobra.Command {
	var (
		f      drawFlags
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the draw entrants by pot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(cmd, &f, func(ctx context.Context, s *session) error {
				return writeTeams(cmd.OutOrStdout(), s.teams, asYAML)
			})
		},
	}
	addSourceFlags(cmd, &f)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as a YAML teams file")
	return cmd
}

func writeTeams(w io.Writer, teams []draw.Team, asYAML bool) error {
	if !asYAML {
		report.WriteTeams(w, teams)
		return nil
	}
	data, err := registry.Marshal(teams)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
