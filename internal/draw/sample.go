package draw

import (
	"maps"
	"slices"
)

// SampleTeams returns the 36 clubs of the 2024-25 league phase.
func SampleTeams() []Team {
	return []Team{
		// Pot 1
		{"Real Madrid", "ESP", 1},
		{"Manchester City", "ENG", 1},
		{"Bayern Munich", "GER", 1},
		{"PSG", "FRA", 1},
		{"Liverpool", "ENG", 1},
		{"Inter", "ITA", 1},
		{"Borussia Dortmund", "GER", 1},
		{"RB Leipzig", "GER", 1},
		{"Barcelona", "ESP", 1},

		// Pot 2
		{"Bayer Leverkusen", "GER", 2},
		{"Atletico Madrid", "ESP", 2},
		{"Atalanta", "ITA", 2},
		{"Juventus", "ITA", 2},
		{"Benfica", "POR", 2},
		{"Arsenal", "ENG", 2},
		{"Club Brugge", "BEL", 2},
		{"Shakhtar Donetsk", "UKR", 2},
		{"AC Milan", "ITA", 2},

		// Pot 3
		{"Feyenoord", "NED", 3},
		{"Sporting CP", "POR", 3},
		{"PSV", "NED", 3},
		{"Dinamo Zagreb", "CRO", 3},
		{"Red Bull Salzburg", "AUT", 3},
		{"Lille", "FRA", 3},
		{"Crvena Zvezda", "SRB", 3},
		{"Young Boys", "SUI", 3},
		{"Celtic", "SCO", 3},

		// Pot 4
		{"Slovan Bratislava", "SVK", 4},
		{"Monaco", "FRA", 4},
		{"Sparta Prague", "CZE", 4},
		{"Aston Villa", "ENG", 4},
		{"Bologna", "ITA", 4},
		{"Girona", "ESP", 4},
		{"Stuttgart", "GER", 4},
		{"Sturm Graz", "AUT", 4},
		{"Brest", "FRA", 4},
	}
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}
