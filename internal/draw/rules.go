package draw

import "fmt"

// CanPlay reports whether a and b may be paired with a at home when aHome is
// true (away otherwise). It never mutates state.
func (d *Draw) CanPlay(a, b Team, aHome bool) bool {
	i, ok := d.index[a.Name]
	if !ok {
		return false
	}
	j, ok := d.index[b.Name]
	if !ok {
		return false
	}
	return d.canPlay(i, j, aHome)
}

func (d *Draw) canPlay(i, j int, iHome bool) bool {
	if i == j {
		return false
	}
	a, b := d.teams[i], d.teams[j]
	if a.Country == b.Country {
		return false
	}

	s, c := d.state, d.constraints
	if s.countries[i].Get(b.Country) >= c.MaxPerCountry || s.countries[j].Get(a.Country) >= c.MaxPerCountry {
		return false
	}
	if s.pots[i].Get(b.Pot) >= c.OpponentsPerPot || s.pots[j].Get(a.Pot) >= c.OpponentsPerPot {
		return false
	}

	home, away := i, j
	if !iHome {
		home, away = j, i
	}
	if s.homeAway[home].Home >= c.HomeMatches || s.homeAway[away].Away >= c.AwayMatches {
		return false
	}

	return !s.hasMet(i, j)
}

// Commit records a match between a and b, a at home when aHome is true.
// The caller must have checked CanPlay; a violated quota panics.
func (d *Draw) Commit(a, b Team, aHome bool) {
	d.commit(d.mustIndex(a), d.mustIndex(b), aHome)
}

func (d *Draw) commit(i, j int, iHome bool) {
	a, b := d.teams[i], d.teams[j]
	if i == j || a.Country == b.Country {
		panic(fmt.Sprintf("draw: illegal match %s v %s", a, b))
	}

	s, c := d.state, d.constraints
	s.fixtures[i] = append(s.fixtures[i], entry{opp: j, home: iHome})
	s.fixtures[j] = append(s.fixtures[j], entry{opp: i, home: !iHome})

	s.pots[i].add(b.Pot, c.OpponentsPerPot)
	s.pots[j].add(a.Pot, c.OpponentsPerPot)

	s.countries[i].add(b.Country, c.MaxPerCountry)
	s.countries[j].add(a.Country, c.MaxPerCountry)

	s.homeAway[i].add(iHome, c)
	s.homeAway[j].add(!iHome, c)
}

// --------------------------------------------------------------------------
// Candidates
// --------------------------------------------------------------------------

type candidate struct {
	opp  int
	home bool
}

// Candidates lists every legal (opponent, home/away) option for t from the
// pots t still needs. Both orientations appear when both are legal. Order
// follows the draw's random source.
func (d *Draw) Candidates(t Team) []Candidate {
	i, ok := d.index[t.Name]
	if !ok {
		return nil
	}
	cands := d.candidates(i)
	out := make([]Candidate, len(cands))
	for k, c := range cands {
		out[k] = Candidate{Opponent: d.teams[c.opp], Home: c.home}
	}
	return out
}

// candidates reuses an internal buffer; the result is valid until the next call.
func (d *Draw) candidates(i int) []candidate {
	d.cands = d.cands[:0]
	need := d.state.pots[i]

	for p := Pot(1); p <= NumPots; p++ {
		if need.Get(p) >= d.constraints.OpponentsPerPot {
			continue
		}
		pool := append(d.scratch[:0], d.byPot[p-1]...)
		d.rng.Shuffle(len(pool), func(x, y int) { pool[x], pool[y] = pool[y], pool[x] })
		d.scratch = pool

		for _, j := range pool {
			if j == i || d.complete(j) {
				continue
			}
			if d.canPlay(i, j, true) {
				d.cands = append(d.cands, candidate{opp: j, home: true})
			}
			if d.canPlay(i, j, false) {
				d.cands = append(d.cands, candidate{opp: j, home: false})
			}
		}
	}
	return d.cands
}

// fill commits random candidates for team i until its quota is met.
// It returns false on a dead end, leaving the partial commits in place.
func (d *Draw) fill(i int) bool {
	total := d.constraints.MatchesPerTeam()
	for d.state.homeAway[i].Total() < total {
		cands := d.candidates(i)
		if len(cands) == 0 {
			return false
		}
		c := cands[d.rng.Intn(len(cands))]
		d.commit(i, c.opp, c.home)
	}
	return true
}
