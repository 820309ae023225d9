package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"focusclock/internal/core/model"
)

// ErrInvalidField reports a form field that is not a positive whole number.
var ErrInvalidField = errors.New("invalid field")

// form holds the editable values exactly as the widgets show them.
type form struct {
	work          string
	shortBreak    string
	longBreak     string
	interval      string
	autoBreaks    bool
	autoPomodoros bool
	sound         bool
	notifications bool
	volume        float64
}

func formFromSettings(settings model.Settings) form {
	return form{
		work:          strconv.Itoa(settings.WorkDuration),
		shortBreak:    strconv.Itoa(settings.ShortBreakDuration),
		longBreak:     strconv.Itoa(settings.LongBreakDuration),
		interval:      strconv.Itoa(settings.LongBreakInterval),
		autoBreaks:    settings.AutoStartBreaks,
		autoPomodoros: settings.AutoStartPomodoros,
		sound:         settings.SoundEnabled,
		notifications: settings.NotificationsEnabled,
		volume:        settings.Volume,
	}
}

// apply returns base with the form values written over it.
func (values form) apply(base model.Settings) (model.Settings, error) {
	fields := []struct {
		label  string
		text   string
		target *int
	}{
		{"Focus length", values.work, &base.WorkDuration},
		{"Short break length", values.shortBreak, &base.ShortBreakDuration},
		{"Long break length", values.longBreak, &base.LongBreakDuration},
		{"Long break every", values.interval, &base.LongBreakInterval},
	}
	for _, field := range fields {
		parsed, ok := parsePositiveInt(field.text)
		if !ok {
			return base, fmt.Errorf("%s %q: %w", field.label, field.text, ErrInvalidField)
		}
		*field.target = parsed
	}

	base.AutoStartBreaks = values.autoBreaks
	base.AutoStartPomodoros = values.autoPomodoros
	base.SoundEnabled = values.sound
	base.NotificationsEnabled = values.notifications
	base.Volume = clampVolume(values.volume)
	return base, nil
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func clampVolume(volume float64) float64 {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	default:
		return volume
	}
}
