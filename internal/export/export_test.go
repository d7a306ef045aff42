package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

func partialDraw(t *testing.T) *draw.Draw {
	t.Helper()
	d, err := draw.New(draw.SampleTeams(), draw.DefaultConstraints(), draw.WithSeed(3))
	require.NoError(t, err)
	get := func(name string) draw.Team {
		tm, ok := d.Team(name)
		require.True(t, ok)
		return tm
	}
	d.Commit(get("Celtic"), get("Real Madrid"), true)
	d.Commit(get("Real Madrid"), get("Arsenal"), true)
	return d
}

func TestBuild(t *testing.T) {
	doc := Build(partialDraw(t), Meta{Strategy: draw.StrategyBulk, Seed: 3, Seeded: true})

	assert.Equal(t, DefaultTournament, doc.Tournament)
	assert.Equal(t, Format{TotalTeams: 36, MatchesPerTeam: 8, HomeMatches: 4, AwayMatches: 4, Pots: 4}, doc.Format)
	require.Len(t, doc.Teams, 36)
	assert.Equal(t, "Barcelona", doc.Teams[0].Name, "pot 1 sorted by name")

	var real TeamFixtures
	for _, tf := range doc.Teams {
		if tf.Name == "Real Madrid" {
			real = tf
		}
	}
	assert.Equal(t, []Opponent{{Opponent: "Arsenal", OpponentCountry: "ENG", OpponentPot: 2}}, real.Fixtures.Home)
	assert.Equal(t, []Opponent{{Opponent: "Celtic", OpponentCountry: "SCO", OpponentPot: 3}}, real.Fixtures.Away)

	assert.Equal(t, []Match{
		{HomeTeam: "Real Madrid", AwayTeam: "Arsenal", HomeCountry: "ESP", AwayCountry: "ENG"},
		{HomeTeam: "Celtic", AwayTeam: "Real Madrid", HomeCountry: "SCO", AwayCountry: "ESP"},
	}, doc.Matches)
}

func TestDrawIDIsStable(t *testing.T) {
	d := partialDraw(t)
	meta := Meta{Strategy: "sequential", Seed: 3, Seeded: true, Budget: draw.DefaultBudget()}
	a := Build(d, meta)
	b := Build(d, meta)
	assert.Equal(t, a.DrawID, b.DrawID)

	otherSeed := meta
	otherSeed.Seed = 4
	assert.NotEqual(t, a.DrawID, Build(d, otherSeed).DrawID)

	otherBudget := meta
	otherBudget.Budget.MaxAttemptsPerTeam = 10
	assert.NotEqual(t, a.DrawID, Build(d, otherBudget).DrawID, "budget changes which draw comes out")
}

func TestUnknownSeedIsOmitted(t *testing.T) {
	d := partialDraw(t)
	meta := Meta{Strategy: "bulk"}
	a := Build(d, meta)
	b := Build(d, meta)

	assert.Nil(t, a.Seed)
	assert.NotEqual(t, a.DrawID, b.DrawID, "unreproducible draws never share an ID")

	data, err := Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"seed"`)
}

func TestMetaFor(t *testing.T) {
	b := draw.Budget{MaxAttempts: 7}
	meta := MetaFor(draw.Result{Strategy: "bulk", Seed: 5, Seeded: true}, b)
	assert.Equal(t, Meta{Tournament: DefaultTournament, Strategy: "bulk", Seed: 5, Seeded: true, Budget: b}, meta)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.json")
	require.NoError(t, WriteFile(path, Build(partialDraw(t), Meta{Tournament: "Test Cup", Strategy: "sequential", Seed: 9, Seeded: true, Budget: draw.DefaultBudget()})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Test Cup", raw["tournament"])
	assert.Equal(t, "sequential", raw["strategy"])
	assert.EqualValues(t, 9, raw["seed"])
	assert.Len(t, raw["matches"], 2)
	assert.Equal(t, map[string]any{
		"max_attempts": 25000.0, "max_attempts_per_team": 5000.0, "max_global_attempts": 50.0,
	}, raw["budget"])
	assert.Contains(t, string(data), "\n  \"draw_id\"")
}
