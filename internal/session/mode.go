package session

// Mode is the screen the session is showing. The session is always in exactly
// one mode; Transition is the only way to move between them.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
	ModeCleared
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game over"
	case ModeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event drives mode changes.
type Event int

const (
	EventStart Event = iota
	EventPause
	EventResume
	EventDie
	EventClear
	EventRestart
	EventMenu
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventDie:
		return "die"
	case EventClear:
		return "clear"
	case EventRestart:
		return "restart"
	case EventMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Transition returns the mode reached by applying e in m.
// The second result is false when e has no meaning in m; the mode is then unchanged.
func Transition(m Mode, e Event) (Mode, bool) {
	switch m {
	case ModeMenu:
		if e == EventStart {
			return ModePlaying, true
		}
	case ModePlaying:
		switch e {
		case EventPause:
			return ModePaused, true
		case EventDie:
			return ModeGameOver, true
		case EventClear:
			return ModeCleared, true
		case EventRestart:
			return ModePlaying, true
		case EventMenu:
			return ModeMenu, true
		}
	case ModePaused:
		switch e {
		case EventResume:
			return ModePlaying, true
		case EventRestart:
			return ModePlaying, true
		case EventMenu:
			return ModeMenu, true
		}
	case ModeGameOver, ModeCleared:
		switch e {
		case EventRestart:
			return ModePlaying, true
		case EventMenu:
			return ModeMenu, true
		}
	}
	return m, false
}
