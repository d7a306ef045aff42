package draw

// entry is one side of a committed match, keyed by registry index.
type entry struct {
	opp  int
	home bool
}

// State is the per-attempt bookkeeping derived from committed matches.
// Every slice is indexed by the team's registry position.
type State struct {
	fixtures  [][]entry
	pots      []PotCounts
	countries []CountryCounts
	homeAway  []HomeAway
}

func newState(n, matchesPerTeam int) *State {
	s := &State{
		fixtures:  make([][]entry, n),
		pots:      make([]PotCounts, n),
		countries: make([]CountryCounts, n),
		homeAway:  make([]HomeAway, n),
	}
	for i := range s.fixtures {
		s.fixtures[i] = make([]entry, 0, matchesPerTeam)
	}
	return s
}

// Clone returns a deep copy; mutating one never affects the other.
func (s *State) Clone() *State {
	c := &State{
		fixtures:  make([][]entry, len(s.fixtures)),
		pots:      make([]PotCounts, len(s.pots)),
		countries: make([]CountryCounts, len(s.countries)),
		homeAway:  make([]HomeAway, len(s.homeAway)),
	}
	for i, f := range s.fixtures {
		c.fixtures[i] = append(make([]entry, 0, cap(f)), f...)
	}
	copy(c.pots, s.pots)
	for i, cc := range s.countries {
		c.countries[i] = cc.clone()
	}
	copy(c.homeAway, s.homeAway)
	return c
}

func (s *State) hasMet(i, j int) bool {
	for _, e := range s.fixtures[i] {
		if e.opp == j {
			return true
		}
	}
	return false
}
