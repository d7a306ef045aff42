package draw

import "fmt"

// PotCounts holds the number of committed opponents per pot.
type PotCounts [NumPots]int

// Get returns the opponent count for pot p.
func (c PotCounts) Get(p Pot) int {
	return c[p-1]
}

// Total returns the opponent count across all pots.
func (c PotCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func (c *PotCounts) add(p Pot, limit int) {
	if c[p-1] >= limit {
		panic(fmt.Sprintf("draw: pot %d opponent count would exceed %d", p, limit))
	}
	c[p-1]++
}

// CountryCounts holds the number of committed opponents per country.
type CountryCounts struct {
	m map[string]int
}

// Get returns the opponent count for country.
func (c CountryCounts) Get(country string) int {
	return c.m[country]
}

// Each calls fn for every country with at least one opponent.
func (c CountryCounts) Each(fn func(country string, n int)) {
	for k, v := range c.m {
		fn(k, v)
	}
}

func (c *CountryCounts) add(country string, limit int) {
	if c.m == nil {
		c.m = make(map[string]int)
	}
	if c.m[country] >= limit {
		panic(fmt.Sprintf("draw: opponents from %s would exceed %d", country, limit))
	}
	c.m[country]++
}

func (c CountryCounts) clone() CountryCounts {
	if c.m == nil {
		return CountryCounts{}
	}
	m := make(map[string]int, len(c.m))
	for k, v := range c.m {
		m[k] = v
	}
	return CountryCounts{m: m}
}

// HomeAway holds a team's home and away match counts.
type HomeAway struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns home + away.
func (h HomeAway) Total() int {
	return h.Home + h.Away
}

func (h *HomeAway) add(home bool, c Constraints) {
	if home {
		if h.Home >= c.HomeMatches {
			panic(fmt.Sprintf("draw: home count would exceed %d", c.HomeMatches))
		}
		h.Home++
		return
	}
	if h.Away >= c.AwayMatches {
		panic(fmt.Sprintf("draw: away count would exceed %d", c.AwayMatches))
	}
	h.Away++
}
