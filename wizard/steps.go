package wizard

// Step enumerates the screens of the private-profile setup flow, in the
// order the user walks them.
type Step int

const (
	StepPhotos Step = iota
	StepIntents
	StepDesire
	StepReview
)

const StepCount = 4

// Steps returns the flow order.
func Steps() []Step {
	return []Step{StepPhotos, StepIntents, StepDesire, StepReview}
}

// String returns the step's display label.
func (s Step) String() string {
	switch s {
	case StepPhotos:
		return "Photos"
	case StepIntents:
		return "Intents"
	case StepDesire:
		return "Desire"
	case StepReview:
		return "Review"
	}
	return "Unknown"
}

// Next returns the following step, clamped at Review.
func (s Step) Next() Step {
	if s >= StepReview {
		return StepReview
	}
	return s + 1
}

// Prev returns the preceding step, clamped at Photos.
func (s Step) Prev() Step {
	if s <= StepPhotos {
		return StepPhotos
	}
	return s - 1
}

// FirstIncomplete returns the first step whose predicate fails. When every
// gated step is satisfied it returns Review.
func FirstIncomplete(st State, failed map[string]bool, th Thresholds) Step {
	for _, step := range []Step{StepPhotos, StepIntents, StepDesire} {
		if !StepComplete(step, st, failed, th) {
			return step
		}
	}
	return StepReview
}
