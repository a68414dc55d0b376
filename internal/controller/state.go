// internal/controller/state.go
package controller

// State is a controller's lifecycle state.
type State int

const (
	StateCreated State = iota
	StateInitializing
	StateInitialized
	StateRunning
	StateStopped
	StateDestroying
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateInitializing:
		return "Initializing"
	case StateInitialized:
		return "Initialized"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	case StateDestroying:
		return "Destroying"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// CanRun reports whether run is valid from s.
func (s State) CanRun() bool {
	return s == StateInitialized || s == StateStopped
}

// CanDestroy reports whether destroy is valid from s.
func (s State) CanDestroy() bool {
	return s == StateInitialized || s == StateRunning || s == StateStopped
}

// Verdict is what a before-hook returns.
type Verdict int

const (
	// Proceed lets the transition continue. A hook returning nothing
	// proceeds too.
	Proceed Verdict = iota
	// Abort vetoes the transition.
	Abort
)

// String returns the verdict name.
func (v Verdict) String() string {
	if v == Abort {
		return "Abort"
	}
	return "Proceed"
}

func vetoed(out any) bool {
	v, ok := out.(Verdict)
	return ok && v == Abort
}
