package model

import "time"

// Settings contains the user preferences the timer and its feedback depend on.
// Durations are whole minutes.
type Settings struct {
	WorkDuration       int
	ShortBreakDuration int
	LongBreakDuration  int
	LongBreakInterval  int

	AutoStartBreaks    bool
	AutoStartPomodoros bool

	SoundEnabled         bool
	NotificationsEnabled bool
	Volume               float64
}

// DefaultSettings returns the classic 25/5/15 cadence with a long break every fourth pomodoro.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:         25,
		ShortBreakDuration:   5,
		LongBreakDuration:    15,
		LongBreakInterval:    4,
		AutoStartBreaks:      false,
		AutoStartPomodoros:   false,
		SoundEnabled:         true,
		NotificationsEnabled: true,
		Volume:               0.5,
	}
}

// Minutes returns the configured minutes for mode.
func (settings Settings) Minutes(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakDuration
	case ModeLongBreak:
		return settings.LongBreakDuration
	default:
		return settings.WorkDuration
	}
}

// Seconds returns the countdown length for mode in seconds.
func (settings Settings) Seconds(mode Mode) int {
	return settings.Minutes(mode) * 60
}

// Duration returns the countdown length for mode.
func (settings Settings) Duration(mode Mode) time.Duration {
	return time.Duration(settings.Minutes(mode)) * time.Minute
}

// SameDurations reports whether both settings share all three mode durations.
func (settings Settings) SameDurations(other Settings) bool {
	return settings.WorkDuration == other.WorkDuration &&
		settings.ShortBreakDuration == other.ShortBreakDuration &&
		settings.LongBreakDuration == other.LongBreakDuration
}
