package draw

import "fmt"

// Pot is a seeding tier. Pots are numbered 1..NumPots.
type Pot int

// NumPots is the number of seeding pots in the league phase.
const NumPots = 4

// Valid reports whether p is within 1..NumPots.
func (p Pot) Valid() bool {
	return p >= 1 && p <= NumPots
}

// Pots returns every pot in draw order.
func Pots() []Pot {
	pots := make([]Pot, NumPots)
	for i := range pots {
		pots[i] = Pot(i + 1)
	}
	return pots
}

// Team is a draw participant. Identity is the name alone: two Team values
// with the same Name are the same team regardless of other fields.
type Team struct {
	Name    string `json:"name" yaml:"name"`
	Country string `json:"country" yaml:"country"`
	Pot     Pot    `json:"pot" yaml:"pot"`
}

// Same reports whether t and other are the same team.
func (t Team) Same(other Team) bool {
	return t.Name == other.Name
}

func (t Team) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Country)
}

// Fixture is one side's view of a committed match.
type Fixture struct {
	Opponent Team
	Home     bool
}

// Match is a committed pairing seen from the home side.
type Match struct {
	Home Team
	Away Team
}

// Candidate is a legal (opponent, home/away) option for a team.
type Candidate struct {
	Opponent Team
	Home     bool
}
