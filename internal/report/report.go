// Package report renders a finished draw as plain text.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/albapepper/scoracle-draw/internal/draw"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 60)
)

// Banner writes a title between two heavy rules.
func Banner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", heavyRule, title, heavyRule)
}

// WriteByTeam writes every team's fixtures, ordered by pot then name.
func WriteByTeam(w io.Writer, d *draw.Draw) {
	Banner(w, "CHAMPIONS LEAGUE DRAW RESULTS")
	for _, t := range sortedTeams(d.Teams()) {
		WriteTeam(w, d, t)
	}
}

// WriteByPot writes the fixtures grouped under one heading per pot.
func WriteByPot(w io.Writer, d *draw.Draw) {
	Banner(w, "CHAMPIONS LEAGUE DRAW RESULTS - POT BY POT")
	for _, p := range draw.Pots() {
		Banner(w, fmt.Sprintf("POT %d", p))
		for _, t := range sortedTeams(d.TeamsInPot(p)) {
			WriteTeam(w, d, t)
		}
	}
}

// WriteTeam writes one team's home and away fixtures, each sorted by
// opponent name.
func WriteTeam(w io.Writer, d *draw.Draw, t draw.Team) {
	fmt.Fprintf(w, "\n%s (%s) - Pot %d\n%s\n", t.Name, t.Country, t.Pot, lightRule)

	var home, away []draw.Team
	for _, f := range d.Fixtures(t) {
		if f.Home {
			home = append(home, f.Opponent)
		} else {
			away = append(away, f.Opponent)
		}
	}
	byName := func(a, b draw.Team) int { return cmp.Compare(a.Name, b.Name) }
	slices.SortFunc(home, byName)
	slices.SortFunc(away, byName)

	fmt.Fprintf(w, "  HOME matches (%d):\n", len(home))
	for _, o := range home {
		fmt.Fprintf(w, "    %s vs %s (%s)\n", t.Name, o.Name, o.Country)
	}
	fmt.Fprintf(w, "\n  AWAY matches (%d):\n", len(away))
	for _, o := range away {
		fmt.Fprintf(w, "    %s vs %s (%s)\n", o.Name, t.Name, o.Country)
	}
}

// WriteVerification writes the verifier's verdict.
func WriteVerification(w io.Writer, r draw.Report) {
	Banner(w, "CONSTRAINT VERIFICATION")
	if r.OK() {
		fmt.Fprintln(w, "All constraints satisfied!")
		return
	}
	fmt.Fprintf(w, "CONSTRAINT VIOLATIONS (%d):\n", len(r.Violations))
	for _, msg := range r.Messages() {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

// WriteTeams writes the registry grouped by pot.
func WriteTeams(w io.Writer, teams []draw.Team) {
	for _, p := range draw.Pots() {
		fmt.Fprintf(w, "Pot %d\n", p)
		for _, t := range sortedTeams(teams) {
			if t.Pot == p {
				fmt.Fprintf(w, "  %-22s %s\n", t.Name, t.Country)
			}
		}
	}
}

func sortedTeams(teams []draw.Team) []draw.Team {
	out := slices.Clone(teams)
	slices.SortFunc(out, func(a, b draw.Team) int {
		return cmp.Or(cmp.Compare(a.Pot, b.Pot), cmp.Compare(a.Name, b.Name))
	})
	return out
}
