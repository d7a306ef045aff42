package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DrawSuite struct {
	suite.Suite
	d *Draw
}

func (s *DrawSuite) SetupTest() {
	d, err := New(SampleTeams(), DefaultConstraints(), WithSeed(1))
	s.Require().NoError(err)
	s.d = d
}

func TestDrawSuite(t *testing.T) {
	suite.Run(t, new(DrawSuite))
}

func (s *DrawSuite) team(name string) Team {
	t, ok := s.d.Team(name)
	s.Require().True(ok, "unknown team %s", name)
	return t
}

func (s *DrawSuite) TestInitialState() {
	s.Len(s.d.Teams(), 36)
	for _, p := range Pots() {
		s.Len(s.d.TeamsInPot(p), 9, "pot %d", p)
	}
	for _, t := range s.d.Teams() {
		s.Empty(s.d.Fixtures(t))
		s.Zero(s.d.PotCounts(t).Total())
		s.Zero(s.d.HomeAway(t).Total())
	}
	s.False(s.d.Complete())
}

func (s *DrawSuite) TestCanPlay() {
	real := s.team("Real Madrid")
	city := s.team("Manchester City")
	liverpool := s.team("Liverpool")

	s.Run("rejects self", func() {
		s.False(s.d.CanPlay(real, real, true))
		s.False(s.d.CanPlay(real, real, false))
	})

	s.Run("rejects same country in both orientations, even after unrelated commits", func() {
		s.False(s.d.CanPlay(city, liverpool, true))
		s.False(s.d.CanPlay(city, liverpool, false))

		s.d.Commit(real, s.team("Benfica"), true)
		s.d.Commit(s.team("Bayern Munich"), s.team("Celtic"), false)

		s.False(s.d.CanPlay(city, liverpool, true))
		s.False(s.d.CanPlay(liverpool, city, false))
	})

	s.Run("rejects unknown teams", func() {
		s.False(s.d.CanPlay(real, Team{Name: "Nobody", Country: "XXX", Pot: 1}, true))
	})
}

func (s *DrawSuite) TestCommitIsSymmetric() {
	real := s.team("Real Madrid")
	arsenal := s.team("Arsenal")

	s.d.Commit(real, arsenal, true)

	s.Equal([]Fixture{{Opponent: arsenal, Home: true}}, s.d.Fixtures(real))
	s.Equal([]Fixture{{Opponent: real, Home: false}}, s.d.Fixtures(arsenal))
	s.Equal(HomeAway{Home: 1}, s.d.HomeAway(real))
	s.Equal(HomeAway{Away: 1}, s.d.HomeAway(arsenal))
	s.Equal(1, s.d.OpponentsFromPot(real, 2))
	s.Equal(1, s.d.OpponentsFromPot(arsenal, 1))
	s.Equal(1, s.d.OpponentsFromCountry(real, "ENG"))
	s.Equal(1, s.d.OpponentsFromCountry(arsenal, "ESP"))
	s.Equal([]Match{{Home: real, Away: arsenal}}, s.d.Matches())

	s.False(s.d.CanPlay(real, arsenal, true), "already met")
	s.False(s.d.CanPlay(arsenal, real, true), "already met")
}

func (s *DrawSuite) TestHomeQuota() {
	real := s.team("Real Madrid")
	for _, name := range []string{"Bayer Leverkusen", "Benfica", "Feyenoord", "Celtic"} {
		opp := s.team(name)
		s.Require().True(s.d.CanPlay(real, opp, true))
		s.d.Commit(real, opp, true)
	}

	sparta := s.team("Sparta Prague")
	s.False(s.d.CanPlay(real, sparta, true), "home quota is full")
	s.True(s.d.CanPlay(real, sparta, false), "away is still open")

	for _, c := range s.d.Candidates(real) {
		s.False(c.Home, "offered home match against %s", c.Opponent.Name)
	}
}

func (s *DrawSuite) TestCountryCap() {
	real := s.team("Real Madrid")
	s.d.Commit(real, s.team("Arsenal"), true)
	s.d.Commit(real, s.team("Aston Villa"), false)

	s.Equal(2, s.d.OpponentsFromCountry(real, "ENG"))
	s.False(s.d.CanPlay(real, s.team("Liverpool"), true))
	s.False(s.d.CanPlay(s.team("Manchester City"), real, false))
}

func (s *DrawSuite) TestPotQuota() {
	real := s.team("Real Madrid")
	s.d.Commit(real, s.team("Benfica"), true)
	s.d.Commit(real, s.team("Club Brugge"), false)

	s.False(s.d.CanPlay(real, s.team("Juventus"), true))
	for _, c := range s.d.Candidates(real) {
		s.NotEqual(Pot(2), c.Opponent.Pot)
	}
}

func (s *DrawSuite) TestCandidatesOfferBothOrientations() {
	real := s.team("Real Madrid")
	cands := s.d.Candidates(real)

	// Every club outside Spain, once at home and once away.
	perOpponent := make(map[string][]bool)
	for _, c := range cands {
		s.NotEqual("ESP", c.Opponent.Country)
		perOpponent[c.Opponent.Name] = append(perOpponent[c.Opponent.Name], c.Home)
	}
	s.Len(perOpponent, 32)
	for name, sides := range perOpponent {
		s.ElementsMatch([]bool{true, false}, sides, name)
	}
}

func (s *DrawSuite) TestCommitPanicsOnIllegalMatch() {
	s.Panics(func() { s.d.Commit(s.team("Real Madrid"), s.team("Barcelona"), true) })
	s.Panics(func() { s.d.Commit(s.team("Real Madrid"), s.team("Real Madrid"), true) })
	s.Panics(func() { s.d.Commit(Team{Name: "Nobody"}, s.team("Celtic"), true) })

	s.Run("pot overflow", func() {
		s.SetupTest()
		real := s.team("Real Madrid")
		s.d.Commit(real, s.team("Benfica"), true)
		s.d.Commit(real, s.team("Club Brugge"), true)
		s.Panics(func() { s.d.Commit(real, s.team("Juventus"), false) })
	})
}

func (s *DrawSuite) TestCloneIsIndependent() {
	snapshot := s.d.state.Clone()
	s.d.Commit(s.team("Real Madrid"), s.team("Celtic"), true)

	s.Empty(snapshot.fixtures[s.d.index["Real Madrid"]])
	s.Zero(snapshot.countries[s.d.index["Real Madrid"]].Get("SCO"))
	s.Equal(1, s.d.OpponentsFromCountry(s.team("Real Madrid"), "SCO"))
}

func (s *DrawSuite) TestVerifyReportsEveryViolation() {
	r := s.d.Verify()
	s.False(r.OK())
	// match count + home + away + four pots, for each of 36 teams.
	s.Len(r.Violations, 36*7)
}

func (s *DrawSuite) TestVerifyDetectsCorruption() {
	real := s.team("Real Madrid")
	celtic := s.team("Celtic")
	s.d.Commit(real, celtic, true)

	ri := s.d.index[real.Name]
	s.d.state.fixtures[ri] = append(s.d.state.fixtures[ri], entry{opp: s.d.index[celtic.Name], home: true})

	rules := make(map[Rule]bool)
	for _, v := range s.d.Verify().Violations {
		if v.Team == real.Name {
			rules[v.Rule] = true
		}
	}
	s.True(rules[RuleDuplicate])
	s.True(rules[RuleSymmetry])
	s.True(rules[RuleCounters])
}

func (s *DrawSuite) TestReset() {
	s.d.Commit(s.team("Real Madrid"), s.team("Celtic"), true)
	s.d.Reset()
	s.Empty(s.d.Matches())
}

// --------------------------------------------------------------------------
// Registry and constraint validation
// --------------------------------------------------------------------------

func TestNewValidation(t *testing.T) {
	sample := SampleTeams()

	cases := []struct {
		name  string
		teams []Team
		c     Constraints
		want  error
	}{
		{"duplicate name", append(SampleTeams(), Team{"Real Madrid", "ESP", 2}), DefaultConstraints(), ErrDuplicateTeam},
		{"pot zero", []Team{{"A", "AAA", 0}}, DefaultConstraints(), ErrInvalidPot},
		{"pot five", []Team{{"A", "AAA", 5}}, DefaultConstraints(), ErrInvalidPot},
		{"empty country", []Team{{"A", "", 1}}, DefaultConstraints(), ErrInvalidTeam},
		{"empty name", []Team{{"", "AAA", 1}}, DefaultConstraints(), ErrInvalidTeam},
		{"inconsistent quotas", sample, Constraints{OpponentsPerPot: 2, HomeMatches: 4, AwayMatches: 3, MaxPerCountry: 2}, ErrInvalidConstraints},
		{"zero cap", sample, Constraints{OpponentsPerPot: 2, HomeMatches: 4, AwayMatches: 4}, ErrInvalidConstraints},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.teams, tc.c)
			require.ErrorIs(t, err, tc.want)
		})
	}

	d, err := New(sample, DefaultConstraints())
	require.NoError(t, err)
	_, known := d.Seed()
	assert.True(t, known, "a clock seed is recorded")
}

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints()
	assert.Equal(t, 2, c.OpponentsPerPot)
	assert.Equal(t, 4, c.HomeMatches)
	assert.Equal(t, 4, c.AwayMatches)
	assert.Equal(t, 8, c.MatchesPerTeam())
	assert.NoError(t, c.Validate())
}

func TestSampleTeams(t *testing.T) {
	teams := SampleTeams()
	require.Len(t, teams, 36)

	names := make(map[string]bool)
	pots := make(map[Pot]int)
	for _, tm := range teams {
		names[tm.Name] = true
		pots[tm.Pot]++
	}
	assert.Len(t, names, 36)
	for _, p := range Pots() {
		assert.Equal(t, 9, pots[p])
	}
}

func TestTeamIdentityIsName(t *testing.T) {
	a := Team{"Real Madrid", "ESP", 1}
	b := Team{"Real Madrid", "XXX", 3}
	assert.True(t, a.Same(b))
	assert.False(t, a.Same(Team{"Barcelona", "ESP", 1}))
	assert.Equal(t, "Real Madrid (ESP)", a.String())
}
