package core

// Action represents a semantic game action, abstracted from physical key presses.
// Every frontend maps its own input events onto these.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - steer left
	ActionRight          // D, Right arrow - steer right
	ActionConfirm        // Enter, Space - start from the home screen
	ActionRestart        // R, Enter - restart after game over
	ActionPause          // P - pause/unpause
	ActionMute           // M - toggle music
	ActionQuit           // Q, Ctrl+C - exit
	ActionBack           // B - leave the game for the ship picker
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Direction returns -1 for left, +1 for right and 0 for anything else.
func (a Action) Direction() int {
	switch a {
	case ActionLeft:
		return -1
	case ActionRight:
		return 1
	default:
		return 0
	}
}
