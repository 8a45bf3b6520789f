package core

// Action is a semantic input intent, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionFlap              // Space, W, Up, mouse click - flap the bird / start the run
	ActionUp                // Up, K - menu navigation
	ActionDown              // Down, J - menu navigation
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - back to the menu
	ActionRestart           // R - play again after game over
	ActionScreenshot        // Ctrl+S - dump the current frame to disk
	ActionQuit              // Q, Ctrl+C - leave the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
