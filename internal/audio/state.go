package audio

// State is where a Player is in playback. Play leads to Playing from any
// state. Pause and Resume move between Playing and Paused. Stop and the
// end of a track lead back to Stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{
	Stopped: "Stopped",
	Playing: "Playing",
	Paused:  "Paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsActive reports whether a track is loaded.
func (s State) IsActive() bool { return s == Playing || s == Paused }

func (s State) CanPause() bool { return s == Playing }

func (s State) CanResume() bool { return s == Paused }
