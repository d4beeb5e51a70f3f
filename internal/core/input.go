package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move up / menu cursor up
	ActionDown             // S, Down arrow - move down / menu cursor down
	ActionLeft             // A, Left arrow - move left
	ActionRight            // D, Right arrow - move right
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B - go back one screen
	ActionRetry            // R - retry after game over
	ActionPause            // P - pause/resume toggle
	ActionBoost            // Space held - faster ticks
	ActionBoostRelease     // synthesized when the boost key stops repeating
	ActionCancel           // Escape - back to the start menu from anywhere
	ActionQuit             // Q, Ctrl+C - exit
	ActionAny              // any other key (splash screen)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRetry:
		return "Retry"
	case ActionPause:
		return "Pause"
	case ActionBoost:
		return "Boost"
	case ActionBoostRelease:
		return "BoostRelease"
	case ActionCancel:
		return "Cancel"
	case ActionQuit:
		return "Quit"
	case ActionAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Direction returns the heading for a directional action.
// The second value is false for non-directional actions.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}
