package draw

import "fmt"

// Rule names a verified constraint.
type Rule string

const (
	RuleMatchCount  Rule = "match_count"
	RuleHomeAway    Rule = "home_away"
	RulePotQuota    Rule = "pot_quota"
	RuleSameCountry Rule = "same_country"
	RuleCountryCap  Rule = "country_cap"
	RuleSymmetry    Rule = "symmetry"
	RuleDuplicate   Rule = "duplicate"
	RuleCounters    Rule = "counters"
)

// Violation is one failed check for one team.
type Violation struct {
	Team   string `json:"team"`
	Rule   Rule   `json:"rule"`
	Detail string `json:"detail"`
}

func (v Violation) String() string {
	return v.Team + ": " + v.Detail
}

// Report is the outcome of Verify.
type Report struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether no violation was found.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Messages returns each violation as a line of text.
func (r Report) Messages() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.String()
	}
	return out
}

func (r *Report) addf(team string, rule Rule, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Team: team, Rule: rule, Detail: fmt.Sprintf(format, args...)})
}

// Verify audits the current state against the quotas. It recomputes every
// figure from the fixture lists, reports every violation it finds and never
// mutates the draw.
func (d *Draw) Verify() Report {
	var r Report
	c := d.constraints
	s := d.state

	for i, t := range d.teams {
		fs := s.fixtures[i]
		if len(fs) != c.MatchesPerTeam() {
			r.addf(t.Name, RuleMatchCount, "%d matches instead of %d", len(fs), c.MatchesPerTeam())
		}

		var ha HomeAway
		var pots PotCounts
		countries := make(map[string]int)
		seen := make(map[int]bool, len(fs))

		for _, e := range fs {
			opp := d.teams[e.opp]
			if e.home {
				ha.Home++
			} else {
				ha.Away++
			}
			pots[opp.Pot-1]++
			countries[opp.Country]++

			if opp.Country == t.Country {
				r.addf(t.Name, RuleSameCountry, "plays against %s (same country: %s)", opp.Name, t.Country)
			}
			if seen[e.opp] {
				r.addf(t.Name, RuleDuplicate, "plays %s more than once", opp.Name)
			}
			seen[e.opp] = true

			if n, mirrors := countEntries(fs, e.opp, e.home), countEntries(s.fixtures[e.opp], i, !e.home); n != mirrors {
				r.addf(t.Name, RuleSymmetry, "%d fixture(s) against %s but %d mirrored", n, opp.Name, mirrors)
			}
		}

		if ha.Home != c.HomeMatches {
			r.addf(t.Name, RuleHomeAway, "%d home matches instead of %d", ha.Home, c.HomeMatches)
		}
		if ha.Away != c.AwayMatches {
			r.addf(t.Name, RuleHomeAway, "%d away matches instead of %d", ha.Away, c.AwayMatches)
		}
		for p := Pot(1); p <= NumPots; p++ {
			if n := pots.Get(p); n != c.OpponentsPerPot {
				r.addf(t.Name, RulePotQuota, "%d opponents from pot %d instead of %d", n, p, c.OpponentsPerPot)
			}
		}
		for _, country := range sortedKeys(countries) {
			if n := countries[country]; n > c.MaxPerCountry {
				r.addf(t.Name, RuleCountryCap, "%d opponents from %s (max %d)", n, country, c.MaxPerCountry)
			}
		}

		if ha != s.homeAway[i] || pots != s.pots[i] || !sameCounts(countries, s.countries[i]) {
			r.addf(t.Name, RuleCounters, "bookkeeping counters disagree with fixture list")
		}
	}
	return r
}

func sameCounts(m map[string]int, c CountryCounts) bool {
	n := 0
	same := true
	c.Each(func(country string, v int) {
		n++
		if m[country] != v {
			same = false
		}
	})
	return same && n == len(m)
}

func countEntries(fs []entry, opp int, home bool) int {
	n := 0
	for _, e := range fs {
		if e.opp == opp && e.home == home {
			n++
		}
	}
	return n
}
