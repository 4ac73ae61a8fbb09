// Package playback provides playback control and progress rendering.
package playback

// State represents the session state reported by the controller.
type State int

const (
	StateIdle    State = iota // No session running
	StatePlaying              // Track is playing
	StatePaused               // Track is paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Phase is the Playing/Paused phase of an active session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// State maps the phase to the session state.
func (p Phase) State() State {
	if p == PhasePaused {
		return StatePaused
	}
	return StatePlaying
}
