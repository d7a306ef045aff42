// Package export converts a finished draw into the JSON exchange document.
package export

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/google/uuid"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

// DefaultTournament is the tournament label used when none is given.
const DefaultTournament = "UEFA Champions League 2024-2025"

// namespace scopes draw IDs; draws with the same strategy, seed, budget and
// registry share an ID.
var namespace = uuid.MustParse("6f1c2a52-55e3-4c33-9a51-9f0c1b0a7d11")

// Meta describes how a draw was produced.
type Meta struct {
	Tournament string
	Strategy   string
	Seed       int64
	Seeded     bool // false: the seed is unknown and left out of the document
	Budget     draw.Budget
}

// MetaFor describes the run that produced res under budget b.
func MetaFor(res draw.Result, b draw.Budget) Meta {
	return Meta{
		Tournament: DefaultTournament,
		Strategy:   res.Strategy,
		Seed:       res.Seed,
		Seeded:     res.Seeded,
		Budget:     b,
	}
}

// Format summarises the quotas.
type Format struct {
	TotalTeams     int `json:"total_teams"`
	MatchesPerTeam int `json:"matches_per_team"`
	HomeMatches    int `json:"home_matches"`
	AwayMatches    int `json:"away_matches"`
	Pots           int `json:"pots"`
}

// Opponent is one fixture from a team's point of view.
type Opponent struct {
	Opponent        string `json:"opponent"`
	OpponentCountry string `json:"opponent_country"`
	OpponentPot     int    `json:"opponent_pot"`
}

// TeamFixtures is one team with its fixtures split by venue.
type TeamFixtures struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Pot      int    `json:"pot"`
	Fixtures struct {
		Home []Opponent `json:"home"`
		Away []Opponent `json:"away"`
	} `json:"fixtures"`
}

// Match is one unique match.
type Match struct {
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeCountry string `json:"home_country"`
	AwayCountry string `json:"away_country"`
}

// Document is the exported draw.
type Document struct {
	DrawID     string         `json:"draw_id"`
	Tournament string         `json:"tournament"`
	Strategy   string         `json:"strategy"`
	Seed       *int64         `json:"seed,omitempty"`
	Budget     draw.Budget    `json:"budget"`
	Format     Format         `json:"format"`
	Teams      []TeamFixtures `json:"teams"`
	Matches    []Match        `json:"matches"`
}

// DrawID returns the name-based UUID for a seeded draw. A draw with an
// unknown seed cannot be reproduced and gets a random ID.
func DrawID(d *draw.Draw, meta Meta) uuid.UUID {
	if !meta.Seeded {
		return uuid.New()
	}
	b := meta.Budget
	key := fmt.Sprintf("%s:%d:%d:%d:%d", meta.Strategy, meta.Seed,
		b.MaxAttempts, b.MaxAttemptsPerTeam, b.MaxGlobalAttempts)
	for _, t := range d.Teams() {
		key += "|" + t.Name
	}
	return uuid.NewSHA1(namespace, []byte(key))
}

// Build assembles the document from d's read accessors. Teams are ordered by
// pot then name; matches by home pot, home name, away name.
func Build(d *draw.Draw, meta Meta) Document {
	c := d.Constraints()
	doc := Document{
		DrawID:     DrawID(d, meta).String(),
		Tournament: cmp.Or(meta.Tournament, DefaultTournament),
		Strategy:   meta.Strategy,
		Budget:     meta.Budget,
		Format: Format{
			TotalTeams:     len(d.Teams()),
			MatchesPerTeam: c.MatchesPerTeam(),
			HomeMatches:    c.HomeMatches,
			AwayMatches:    c.AwayMatches,
			Pots:           draw.NumPots,
		},
		Teams:   []TeamFixtures{},
		Matches: []Match{},
	}
	if meta.Seeded {
		seed := meta.Seed
		doc.Seed = &seed
	}

	teams := d.Teams()
	slices.SortFunc(teams, func(a, b draw.Team) int {
		return cmp.Or(cmp.Compare(a.Pot, b.Pot), cmp.Compare(a.Name, b.Name))
	})

	for _, t := range teams {
		tf := TeamFixtures{Name: t.Name, Country: t.Country, Pot: int(t.Pot)}
		tf.Fixtures.Home = []Opponent{}
		tf.Fixtures.Away = []Opponent{}
		for _, f := range d.Fixtures(t) {
			o := Opponent{Opponent: f.Opponent.Name, OpponentCountry: f.Opponent.Country, OpponentPot: int(f.Opponent.Pot)}
			if f.Home {
				tf.Fixtures.Home = append(tf.Fixtures.Home, o)
			} else {
				tf.Fixtures.Away = append(tf.Fixtures.Away, o)
			}
		}
		doc.Teams = append(doc.Teams, tf)
	}

	matches := d.Matches()
	slices.SortFunc(matches, func(a, b draw.Match) int {
		return cmp.Or(
			cmp.Compare(a.Home.Pot, b.Home.Pot),
			cmp.Compare(a.Home.Name, b.Home.Name),
			cmp.Compare(a.Away.Name, b.Away.Name),
		)
	})
	for _, m := range matches {
		doc.Matches = append(doc.Matches, Match{
			HomeTeam:    m.Home.Name,
			AwayTeam:    m.Away.Name,
			HomeCountry: m.Home.Country,
			AwayCountry: m.Away.Country,
		})
	}
	return doc
}

// Marshal encodes doc with two-space indentation.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal draw: %w", err)
	}
	return data, nil
}

// WriteFile writes doc to path.
func WriteFile(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
