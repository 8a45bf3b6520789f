package game

// Status is the lifecycle phase of a session.
type Status int

const (
	StatusIdle    Status = iota // Hovering, waiting for the first flap
	StatusPlaying               // Full simulation running
	StatusCrashed               // Frozen, terminal for the session
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPlaying:
		return "Playing"
	case StatusCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// canMoveTo reports whether the lifecycle allows going from s to next.
// Transitions only move forward, one step at a time.
func (s Status) canMoveTo(next Status) bool {
	return next == s+1 && next <= StatusCrashed
}
