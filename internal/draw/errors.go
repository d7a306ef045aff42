package draw

import "errors"

var (
	// ErrInvalidTeam is returned for a team with an empty name or country.
	ErrInvalidTeam = errors.New("invalid team")
	// ErrInvalidPot is returned for a team outside pots 1..NumPots.
	ErrInvalidPot = errors.New("invalid pot")
	// ErrDuplicateTeam is returned when two registry entries share a name.
	ErrDuplicateTeam = errors.New("duplicate team name")
	// ErrInvalidConstraints is returned for inconsistent quotas.
	ErrInvalidConstraints = errors.New("invalid constraints")
	// ErrUnknownStrategy is returned by StrategyByName.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
