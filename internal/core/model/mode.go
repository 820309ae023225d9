package model

// Mode identifies which interval the timer is counting down.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeWork, ModeShortBreak, ModeLongBreak}
}

// Label returns a human readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeWork:
		return "Focus"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	default:
		return string(mode)
	}
}

// IsBreak reports whether the mode is one of the break modes.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Valid reports whether mode is a known mode.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}
