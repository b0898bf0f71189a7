// Package escalation tracks consecutive Unfit predictions and decides when a
// hand-off to HR or a counsellor is due.
package escalation

// Threshold is the number of consecutive Unfit results that fires a hand-off.
const Threshold = 3

// State is the escalation state of one session.
type State struct {
	UnfitCount     int  `json:"unfit_count"`
	HandoffPending bool `json:"handoff_pending"`
}

// Next applies one classification to s. unfit is true for an Unfit result
// and false for Fit. fired reports whether this step triggered a hand-off,
// in which case the count is already back at zero.
func Next(s State, unfit bool) (next State, fired bool) {
	if !unfit {
		s.UnfitCount = 0
		return s, false
	}

	s.UnfitCount++
	if s.UnfitCount >= Threshold {
		s.UnfitCount = 0
		s.HandoffPending = true
		return s, true
	}
	return s, false
}

// Acknowledge clears a pending hand-off. The count is left alone.
func Acknowledge(s State) State {
	s.HandoffPending = false
	return s
}
