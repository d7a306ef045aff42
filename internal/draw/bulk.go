package draw

// Bulk fills every team in one shuffled pass per attempt. A dead end on any
// team discards the whole state and starts a new attempt.
type Bulk struct {
	MaxAttempts int
}

func (Bulk) Name() string { return StrategyBulk }

// Execute implements Strategy.
func (b Bulk) Execute(d *Draw) Result {
	var res Result
	all := make([]int, len(d.teams))
	for i := range all {
		all[i] = i
	}

	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		res.Attempts = attempt
		d.Reset()
		if d.attemptBulk(all) {
			res.Success = true
			return res
		}
		if attempt%1000 == 0 {
			d.logger.Debug("Bulk draw progress", "attempts", attempt)
		}
	}
	return res
}

func (d *Draw) attemptBulk(all []int) bool {
	for _, i := range d.shuffled(all) {
		if !d.fill(i) {
			return false
		}
	}
	return true
}
