// Package registry loads the list of draw entrants from the configured
// source: the built-in sample, a YAML file, or Postgres.
package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	"github.com/albapepper/scoracle-draw/internal/config"
	"github.com/albapepper/scoracle-draw/internal/db"
	"github.com/albapepper/scoracle-draw/internal/draw"
)

// Querier is the slice of pgxpool.Pool the db source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// File is the YAML layout of a teams file.
//
//	teams:
//	  - {name: Real Madrid, country: ESP, pot: 1}
type File struct {
	Teams []draw.Team `yaml:"teams"`
}

// Load returns the entrants for cfg.TeamsSource. q is only used by the db
// source and may be nil otherwise.
func Load(ctx context.Context, cfg *config.Config, q Querier) ([]draw.Team, error) {
	switch cfg.TeamsSource {
	case config.SourceSample:
		return draw.SampleTeams(), nil
	case config.SourceFile:
		return LoadFile(cfg.TeamsFile)
	case config.SourceDB:
		if q == nil {
			return nil, fmt.Errorf("db source: no database connection")
		}
		return LoadSeason(ctx, q, cfg.Season)
	default:
		return nil, fmt.Errorf("unknown teams source %q", cfg.TeamsSource)
	}
}

// LoadFile reads a YAML teams file.
func LoadFile(path string) ([]draw.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML teams document.
func Parse(data []byte) ([]draw.Team, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal teams: %w", err)
	}
	if len(f.Teams) == 0 {
		return nil, fmt.Errorf("teams file lists no teams")
	}
	return f.Teams, nil
}

// Marshal encodes teams in the layout Parse reads.
func Marshal(teams []draw.Team) ([]byte, error) {
	return yaml.Marshal(File{Teams: teams})
}

// LoadSeason reads the entrants of one season from Postgres.
func LoadSeason(ctx context.Context, q Querier, season int) ([]draw.Team, error) {
	rows, err := q.Query(ctx, db.StmtDrawEntrants, season)
	if err != nil {
		return nil, fmt.Errorf("query entrants: %w", err)
	}
	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (draw.Team, error) {
		var t draw.Team
		var pot int
		err := row.Scan(&t.Name, &t.Country, &pot)
		t.Pot = draw.Pot(pot)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan entrants: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no entrants for season %d", season)
	}
	return teams, nil
}
