// Package draw builds league-phase fixture lists: every team meets two
// opponents from each of four pots, plays four home and four away matches,
// never meets a club from its own country and meets at most two clubs from
// any other single country.
//
// A Draw owns the registry, the quotas, one mutable State and one random
// source. Strategies (Bulk, Sequential) drive the shared compatibility check
// and committer until every team is complete or the attempt budget runs out.
package draw

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Draw is one draw over a fixed registry. It is not safe for concurrent use.
type Draw struct {
	teams       []Team
	index       map[string]int
	byPot       [NumPots][]int
	constraints Constraints

	state  *State
	rng    *rand.Rand
	seed   int64
	seeded bool
	logger *slog.Logger

	scratch []int
	cands   []candidate
}

// Option configures a Draw.
type Option func(*Draw)

// WithSeed seeds a private random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(d *Draw) {
		d.rng = rand.New(rand.NewSource(seed))
		d.seed = seed
		d.seeded = true
	}
}

// WithRand uses r for every random choice. Nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(d *Draw) {
		if r != nil {
			d.rng = r
			d.seed = 0
			d.seeded = false
		}
	}
}

// WithLogger sets the logger for attempt outcomes. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Draw) {
		if l != nil {
			d.logger = l
		}
	}
}

// New validates the registry and quotas and returns a Draw with empty state.
func New(teams []Team, c Constraints, opts ...Option) (*Draw, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	d := &Draw{
		teams:       make([]Team, len(teams)),
		index:       make(map[string]int, len(teams)),
		constraints: c,
		logger:      slog.New(slog.DiscardHandler),
	}
	copy(d.teams, teams)

	for i, t := range d.teams {
		if t.Name == "" || t.Country == "" {
			return nil, fmt.Errorf("team %d %q: %w", i, t.Name, ErrInvalidTeam)
		}
		if !t.Pot.Valid() {
			return nil, fmt.Errorf("team %q pot %d: %w", t.Name, t.Pot, ErrInvalidPot)
		}
		if _, dup := d.index[t.Name]; dup {
			return nil, fmt.Errorf("team %q: %w", t.Name, ErrDuplicateTeam)
		}
		d.index[t.Name] = i
		d.byPot[t.Pot-1] = append(d.byPot[t.Pot-1], i)
	}

	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		WithSeed(time.Now().UnixNano())(d)
	}

	d.state = newState(len(d.teams), c.MatchesPerTeam())
	return d, nil
}

// Reset discards every committed match.
func (d *Draw) Reset() {
	d.state = newState(len(d.teams), d.constraints.MatchesPerTeam())
}

// Seed returns the seed of the random source and whether one is known.
// It is unknown when the source was supplied with WithRand.
func (d *Draw) Seed() (int64, bool) {
	return d.seed, d.seeded
}

// Constraints returns the quotas.
func (d *Draw) Constraints() Constraints {
	return d.constraints
}

// --------------------------------------------------------------------------
// Read accessors
// --------------------------------------------------------------------------

// Teams returns the registry in registration order.
func (d *Draw) Teams() []Team {
	out := make([]Team, len(d.teams))
	copy(out, d.teams)
	return out
}

// Team looks a team up by name.
func (d *Draw) Team(name string) (Team, bool) {
	i, ok := d.index[name]
	if !ok {
		return Team{}, false
	}
	return d.teams[i], true
}

// TeamsInPot returns the teams of pot p in registry order.
func (d *Draw) TeamsInPot(p Pot) []Team {
	if !p.Valid() {
		return nil
	}
	out := make([]Team, 0, len(d.byPot[p-1]))
	for _, i := range d.byPot[p-1] {
		out = append(out, d.teams[i])
	}
	return out
}

// Fixtures returns t's committed fixtures in commit order.
func (d *Draw) Fixtures(t Team) []Fixture {
	i, ok := d.index[t.Name]
	if !ok {
		return nil
	}
	out := make([]Fixture, 0, len(d.state.fixtures[i]))
	for _, e := range d.state.fixtures[i] {
		out = append(out, Fixture{Opponent: d.teams[e.opp], Home: e.home})
	}
	return out
}

// OpponentsFromPot returns how many of t's opponents come from pot p.
func (d *Draw) OpponentsFromPot(t Team, p Pot) int {
	i, ok := d.index[t.Name]
	if !ok || !p.Valid() {
		return 0
	}
	return d.state.pots[i].Get(p)
}

// PotCounts returns t's opponent counts for every pot.
func (d *Draw) PotCounts(t Team) PotCounts {
	i, ok := d.index[t.Name]
	if !ok {
		return PotCounts{}
	}
	return d.state.pots[i]
}

// OpponentsFromCountry returns how many of t's opponents come from country.
func (d *Draw) OpponentsFromCountry(t Team, country string) int {
	i, ok := d.index[t.Name]
	if !ok {
		return 0
	}
	return d.state.countries[i].Get(country)
}

// CountryCounts returns t's opponent counts per country.
func (d *Draw) CountryCounts(t Team) CountryCounts {
	i, ok := d.index[t.Name]
	if !ok {
		return CountryCounts{}
	}
	return d.state.countries[i].clone()
}

// HomeAway returns t's home and away counts.
func (d *Draw) HomeAway(t Team) HomeAway {
	i, ok := d.index[t.Name]
	if !ok {
		return HomeAway{}
	}
	return d.state.homeAway[i]
}

// Matches returns every committed match once, from the home side, in
// registry order of the home team.
func (d *Draw) Matches() []Match {
	var out []Match
	for i, fs := range d.state.fixtures {
		for _, e := range fs {
			if e.home {
				out = append(out, Match{Home: d.teams[i], Away: d.teams[e.opp]})
			}
		}
	}
	return out
}

// Complete reports whether every team has met its full quota.
func (d *Draw) Complete() bool {
	for i := range d.teams {
		if !d.complete(i) {
			return false
		}
	}
	return true
}

func (d *Draw) complete(i int) bool {
	return d.state.homeAway[i].Total() >= d.constraints.MatchesPerTeam()
}

func (d *Draw) mustIndex(t Team) int {
	i, ok := d.index[t.Name]
	if !ok {
		panic(fmt.Sprintf("draw: unknown team %q", t.Name))
	}
	return i
}
