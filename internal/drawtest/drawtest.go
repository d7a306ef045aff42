// Package drawtest provides a compact registry for tests that need a
// completed draw quickly. Eight clubs, two per pot, one opponent from each
// pot: the two clubs of a pot always meet, and the cross-pot pairings and
// venues still go through the full rule set.
package drawtest

import "github.com/albapepper/scoracle-draw/internal/draw"

// Constraints is the compact format: four matches, two at home.
func Constraints() draw.Constraints {
	return draw.Constraints{
		OpponentsPerPot: 1,
		HomeMatches:     2,
		AwayMatches:     2,
		MaxPerCountry:   2,
	}
}

// Teams returns the compact registry. Real Madrid and Atletico Madrid share
// a country across pots 1 and 2, so their cross pairing is forced.
func Teams() []draw.Team {
	return []draw.Team{
		{Name: "Real Madrid", Country: "ESP", Pot: 1},
		{Name: "Manchester City", Country: "ENG", Pot: 1},
		{Name: "Atletico Madrid", Country: "ESP", Pot: 2},
		{Name: "Benfica", Country: "POR", Pot: 2},
		{Name: "Celtic", Country: "SCO", Pot: 3},
		{Name: "Feyenoord", Country: "NED", Pot: 3},
		{Name: "Monaco", Country: "FRA", Pot: 4},
		{Name: "Sturm Graz", Country: "AUT", Pot: 4},
	}
}

// Budget is generous for the compact format; every seed completes well
// inside it.
func Budget() draw.Budget {
	return draw.Budget{
		MaxAttempts:        25000,
		MaxAttemptsPerTeam: 200,
		MaxGlobalAttempts:  500,
	}
}

// Matches is the number of unique matches in a completed compact draw.
const Matches = 16
