package draw

// Sequential draws pot by pot and team by team, the way the ceremony runs.
// Each team is filled from a checkpoint of the state taken when the team
// comes up; a dead end restores the checkpoint and retries that team alone.
// Only when a team exhausts MaxAttemptsPerTeam is the whole draw restarted.
type Sequential struct {
	MaxAttemptsPerTeam int
	MaxGlobalAttempts  int
}

func (Sequential) Name() string { return StrategySequential }

// Execute implements Strategy.
func (s Sequential) Execute(d *Draw) Result {
	var res Result

	for attempt := 1; attempt <= s.MaxGlobalAttempts; attempt++ {
		res.Attempts = attempt
		d.Reset()
		if s.attempt(d, &res) {
			res.Success = true
			return res
		}
		d.logger.Info("Sequential draw restarting", "attempt", attempt)
	}
	return res
}

func (s Sequential) attempt(d *Draw, res *Result) bool {
	for p := Pot(1); p <= NumPots; p++ {
		for _, i := range d.shuffled(d.byPot[p-1]) {
			if !s.drawTeam(d, i, res) {
				d.logger.Info("Team could not be drawn", "team", d.teams[i].Name, "pot", p)
				return false
			}
			d.logger.Debug("Team drawn", "team", d.teams[i].Name, "pot", p,
				"retries", res.TeamRetries)
		}
	}
	return true
}

func (s Sequential) drawTeam(d *Draw, i int, res *Result) bool {
	checkpoint := d.state.Clone()
	for try := 1; try <= s.MaxAttemptsPerTeam; try++ {
		if d.fill(i) {
			return true
		}
		res.TeamRetries++
		// Restore is a full replacement; the checkpoint itself stays pristine.
		d.state = checkpoint.Clone()
	}
	return false
}
