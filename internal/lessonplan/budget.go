package lessonplan

// PhaseBudget is the per-phase split of the lesson duration, in minutes.
// Derived on every request, never stored.
type PhaseBudget struct {
	Phase1 int
	Phase2 int
	Phase3 int
}

// SplitDuration divides the total duration across the three phases.
// Starter and reflection each get 15% capped at 10 minutes; the main
// phase takes the remainder, so the three always sum to the total.
func SplitDuration(total int) PhaseBudget {
	starter := total * 15 / 100
	if starter > 10 {
		starter = 10
	}
	reflection := total * 15 / 100
	if reflection > 10 {
		reflection = 10
	}
	return PhaseBudget{
		Phase1: starter,
		Phase2: total - starter - reflection,
		Phase3: reflection,
	}
}
