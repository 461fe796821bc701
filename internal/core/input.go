package core

// Action represents a semantic player action, abstracted from physical key presses.
// Keyboard, mouse and headless input sources all produce the same actions.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up, mouse click - flap or jump
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionLeft           // cycle difficulty
	ActionRight          // cycle difficulty
	ActionConfirm        // Enter - start the selected mode
	ActionRestart        // R - restart with the same settings after game over
	ActionBack           // B, Escape - back to the menu
	ActionScores         // Tab - open the scoreboard
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
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
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// RuntimeConfig contains platform settings passed to a game session.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means derive one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
