// Package stats aggregates figures over a finished draw.
package stats

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

// PotPair is an unordered pair of pots, Low <= High.
type PotPair struct {
	Low  draw.Pot `json:"low"`
	High draw.Pot `json:"high"`
}

// CountryPair is an unordered pair of countries, A < B.
type CountryPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Matchup is a match count for a pot pair or country pair, for encoding.
type Matchup struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Matches int    `json:"matches"`
}

// PotComposition describes the clubs in one pot.
type PotComposition struct {
	Pot       draw.Pot       `json:"pot"`
	Teams     int            `json:"teams"`
	Countries map[string]int `json:"countries"`
}

// CountryTotals aggregates one country's clubs.
type CountryTotals struct {
	Country string `json:"country"`
	Teams   int    `json:"teams"`
	Matches int    `json:"matches"`
	Home    int    `json:"home"`
	Away    int    `json:"away"`
}

// Balance is one team's home/away split.
type Balance struct {
	Team       string `json:"team"`
	Home       int    `json:"home"`
	Away       int    `json:"away"`
	Difference int    `json:"difference"`
}

// Stats is the full statistics bundle for a draw.
type Stats struct {
	Teams          int                 `json:"teams"`
	Matches        int                 `json:"matches"`
	MatchesPerTeam int                 `json:"matches_per_team"`
	Pots           []PotComposition    `json:"pots"`
	PotMatchups    map[PotPair]int     `json:"-"`
	CountryMatches map[CountryPair]int `json:"-"`
	International  int                 `json:"international_matches"`
	PotTable       []Matchup           `json:"pot_matchups"`
	CountryTable   []Matchup           `json:"country_matchups"`
	Countries      []CountryTotals     `json:"countries"`
	Balance        []Balance           `json:"balance"`
	MaxDifference  int                 `json:"max_home_away_difference"`
}

// Compute aggregates statistics over d's committed matches.
func Compute(d *draw.Draw) Stats {
	teams := d.Teams()
	matches := d.Matches()
	s := Stats{
		Teams:          len(teams),
		Matches:        len(matches),
		MatchesPerTeam: d.Constraints().MatchesPerTeam(),
		PotMatchups:    make(map[PotPair]int),
		CountryMatches: make(map[CountryPair]int),
	}

	for _, p := range draw.Pots() {
		pc := PotComposition{Pot: p, Countries: make(map[string]int)}
		for _, t := range d.TeamsInPot(p) {
			pc.Teams++
			pc.Countries[t.Country]++
		}
		s.Pots = append(s.Pots, pc)
	}

	for _, m := range matches {
		pp := PotPair{Low: min(m.Home.Pot, m.Away.Pot), High: max(m.Home.Pot, m.Away.Pot)}
		s.PotMatchups[pp]++
		if m.Home.Country != m.Away.Country {
			cp := CountryPair{A: min(m.Home.Country, m.Away.Country), B: max(m.Home.Country, m.Away.Country)}
			s.CountryMatches[cp]++
			s.International++
		}
	}

	byCountry := make(map[string]*CountryTotals)
	for _, t := range teams {
		ha := d.HomeAway(t)
		ct, ok := byCountry[t.Country]
		if !ok {
			ct = &CountryTotals{Country: t.Country}
			byCountry[t.Country] = ct
		}
		ct.Teams++
		ct.Matches += ha.Total()
		ct.Home += ha.Home
		ct.Away += ha.Away

		b := Balance{Team: t.Name, Home: ha.Home, Away: ha.Away, Difference: abs(ha.Home - ha.Away)}
		s.Balance = append(s.Balance, b)
		s.MaxDifference = max(s.MaxDifference, b.Difference)
	}
	for _, c := range slices.Sorted(maps.Keys(byCountry)) {
		s.Countries = append(s.Countries, *byCountry[c])
	}

	for _, pp := range slices.SortedFunc(maps.Keys(s.PotMatchups), comparePotPairs) {
		s.PotTable = append(s.PotTable, Matchup{
			A: fmt.Sprint(pp.Low), B: fmt.Sprint(pp.High), Matches: s.PotMatchups[pp],
		})
	}
	for _, cp := range slices.SortedFunc(maps.Keys(s.CountryMatches), compareCountryPairs) {
		s.CountryTable = append(s.CountryTable, Matchup{A: cp.A, B: cp.B, Matches: s.CountryMatches[cp]})
	}
	return s
}

// Unbalanced returns the teams whose home and away counts differ.
func (s Stats) Unbalanced() []Balance {
	var out []Balance
	for _, b := range s.Balance {
		if b.Difference > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Write renders s as plain text.
func Write(w io.Writer, s Stats) {
	rule := strings.Repeat("-", 80)

	fmt.Fprintf(w, "GENERAL STATISTICS\n%s\n", rule)
	fmt.Fprintf(w, "Total teams: %d\n", s.Teams)
	fmt.Fprintf(w, "Total matches: %d\n", s.Matches)
	fmt.Fprintf(w, "Matches per team: %d\n", s.MatchesPerTeam)
	fmt.Fprintf(w, "International matches: %d\n", s.International)

	fmt.Fprintf(w, "\nDISTRIBUTION BY POT\n%s\n", rule)
	for _, pc := range s.Pots {
		fmt.Fprintf(w, "Pot %d: %d teams\n", pc.Pot, pc.Teams)
		parts := make([]string, 0, len(pc.Countries))
		for _, c := range slices.Sorted(maps.Keys(pc.Countries)) {
			parts = append(parts, fmt.Sprintf("%s=%d", c, pc.Countries[c]))
		}
		fmt.Fprintf(w, "  Countries: %s\n", strings.Join(parts, " "))
	}

	fmt.Fprintf(w, "\nMATCHES BETWEEN POTS\n%s\n", rule)
	for _, m := range s.PotTable {
		fmt.Fprintf(w, "Pot %s vs Pot %s: %d matches\n", m.A, m.B, m.Matches)
	}

	fmt.Fprintf(w, "\nSTATISTICS BY COUNTRY\n%s\n", rule)
	for _, c := range s.Countries {
		fmt.Fprintf(w, "%s: %d team(s), %d matches (%d home, %d away)\n",
			c.Country, c.Teams, c.Matches, c.Home, c.Away)
	}

	fmt.Fprintf(w, "\nHOME/AWAY BALANCE\n%s\n", rule)
	fmt.Fprintf(w, "Maximum difference: %d (should be 0)\n", s.MaxDifference)
	if s.MaxDifference == 0 {
		fmt.Fprintln(w, "Perfect balance for all teams!")
	}
	for _, b := range s.Unbalanced() {
		fmt.Fprintf(w, "Warning: %s: %d home, %d away\n", b.Team, b.Home, b.Away)
	}
}

func comparePotPairs(a, b PotPair) int {
	if a.Low != b.Low {
		return int(a.Low - b.Low)
	}
	return int(a.High - b.High)
}

func compareCountryPairs(a, b CountryPair) int {
	if a.A != b.A {
		return strings.Compare(a.A, b.A)
	}
	return strings.Compare(a.B, b.B)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
