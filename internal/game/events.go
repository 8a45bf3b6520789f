package game

import "fmt"

// EventKind identifies a notification emitted by a tick or a flap.
type EventKind int

const (
	EventStarted      EventKind = iota // First flap accepted
	EventScored                        // A gate was cleared
	EventTierAchieved                  // A new tier was reached
	EventMilestone                     // Score reached a milestone value
	EventCrashed                       // The bird hit something
	EventGameOver                      // Grace delay elapsed, final score is ready
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventScored:
		return "scored"
	case EventTierAchieved:
		return "tier_achieved"
	case EventMilestone:
		return "milestone"
	case EventCrashed:
		return "crashed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a one-shot notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	Score int           // Score at the time of the event
	Tier  Tier          // EventTierAchieved
	Label string        // EventMilestone
	Cause CollisionKind // EventCrashed
}

func (e Event) String() string {
	switch e.Kind {
	case EventTierAchieved:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Tier)
	case EventMilestone:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Label)
	case EventCrashed:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Cause)
	default:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Score)
	}
}
