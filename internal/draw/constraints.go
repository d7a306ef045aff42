package draw

import "fmt"

// Constraints are the per-team quotas every completed draw must meet.
type Constraints struct {
	OpponentsPerPot int `json:"opponents_per_pot"`
	HomeMatches     int `json:"home_matches"`
	AwayMatches     int `json:"away_matches"`
	// MaxPerCountry caps opponents drawn from any single foreign country.
	MaxPerCountry int `json:"max_per_country"`
}

// DefaultConstraints returns the league-phase format: two opponents per pot,
// four home and four away matches, at most two opponents per country.
func DefaultConstraints() Constraints {
	return Constraints{
		OpponentsPerPot: 2,
		HomeMatches:     4,
		AwayMatches:     4,
		MaxPerCountry:   2,
	}
}

// MatchesPerTeam is the fixture count of a completed team.
func (c Constraints) MatchesPerTeam() int {
	return c.HomeMatches + c.AwayMatches
}

// Validate checks the quotas are positive and mutually consistent.
func (c Constraints) Validate() error {
	if c.OpponentsPerPot < 1 || c.HomeMatches < 1 || c.AwayMatches < 1 || c.MaxPerCountry < 1 {
		return fmt.Errorf("quotas must be positive (%+v): %w", c, ErrInvalidConstraints)
	}
	if c.MatchesPerTeam() != NumPots*c.OpponentsPerPot {
		return fmt.Errorf("home+away=%d but %d pots x %d opponents=%d: %w",
			c.MatchesPerTeam(), NumPots, c.OpponentsPerPot, NumPots*c.OpponentsPerPot, ErrInvalidConstraints)
	}
	return nil
}
