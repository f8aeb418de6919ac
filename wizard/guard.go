package wizard

// Decision is the guard's navigation outcome for wizard entry.
type Decision int

const (
	// DecisionNone means no navigation action may be taken yet. Returned
	// while persisted state has not hydrated, so a cold start never
	// produces a false "incomplete" redirect.
	DecisionNone Decision = iota
	// DecisionResume routes to the first incomplete step.
	DecisionResume
	// DecisionSkipToComplete routes straight to the completed destination,
	// bypassing every wizard step.
	DecisionSkipToComplete
)

// String returns the decision name for logs and test output.
func (d Decision) String() string {
	switch d {
	case DecisionNone:
		return "none"
	case DecisionResume:
		return "resume"
	case DecisionSkipToComplete:
		return "skip-to-complete"
	}
	return "unknown"
}

// Guard decides the wizard entry point on (re)launch. It latches its
// decision: re-checks after the first decision (a screen re-rendering)
// return the same outcome with fire=false, so navigation fires exactly
// once per guard lifetime.
type Guard struct {
	decided    bool
	decision   Decision
	resumeStep Step
	thresholds Thresholds
}

// NewGuard creates an undecided guard for one screen mount.
func NewGuard(th Thresholds) *Guard {
	return &Guard{thresholds: th}
}

// Check evaluates the snapshot. While the snapshot is un-hydrated it
// returns DecisionNone without latching. The first hydrated evaluation
// latches the decision and returns fire=true; every later call returns
// the latched decision with fire=false.
func (g *Guard) Check(snap Snapshot, failed map[string]bool) (decision Decision, resumeAt Step, fire bool) {
	if g.decided {
		return g.decision, g.resumeStep, false
	}

	if !snap.HasHydrated {
		return DecisionNone, StepPhotos, false
	}

	if snap.SetupComplete {
		g.decision = DecisionSkipToComplete
	} else {
		g.decision = DecisionResume
		g.resumeStep = FirstIncomplete(snap.State, failed, g.thresholds)
	}
	g.decided = true
	return g.decision, g.resumeStep, true
}

// Decided reports whether the guard has latched a decision.
func (g *Guard) Decided() bool {
	return g.decided
}
