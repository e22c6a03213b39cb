package wizard

// Signal interrupts a step and tells the sequencer what to do next.
// It implements error so prompt drivers can return it alongside their value;
// Run consumes every Signal and never returns one.
type Signal int

const (
	// Back re-runs the previous step.
	Back Signal = iota + 1
	// Cancel ends the run.
	Cancel
	// Resume re-runs the step that was interrupted.
	Resume
)

func (s Signal) Error() string {
	switch s {
	case Back:
		return "wizard: back"
	case Cancel:
		return "wizard: cancelled"
	case Resume:
		return "wizard: resume"
	default:
		return "wizard: unknown signal"
	}
}
