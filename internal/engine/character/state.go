package character

// WalkState is the walk-cycle state.
type WalkState int

const (
	// WalkIdle: no forward key held. The next accepted step starts a cycle.
	WalkIdle WalkState = iota
	// WalkStepping: a cycle is in progress; turning re-aligns the body.
	WalkStepping
)

// String returns the state name.
func (s WalkState) String() string {
	switch s {
	case WalkIdle:
		return "idle"
	case WalkStepping:
		return "stepping"
	default:
		return "unknown"
	}
}

// TailState says whether idle tail sway runs this frame.
type TailState int

const (
	// TailSwaying: the sway offset is applied every frame.
	TailSwaying TailState = iota
	// TailSuppressed: a step is easing the tail; sway waits for expiry.
	TailSuppressed
)

// String returns the state name.
func (s TailState) String() string {
	switch s {
	case TailSwaying:
		return "swaying"
	case TailSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}
