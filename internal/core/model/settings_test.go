package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDurations(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		mode     Mode
		seconds  int
		duration time.Duration
	}{
		{ModeWork, 1500, 25 * time.Minute},
		{ModeShortBreak, 300, 5 * time.Minute},
		{ModeLongBreak, 900, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.seconds, settings.Seconds(tt.mode))
			assert.Equal(t, tt.duration, settings.Duration(tt.mode))
		})
	}
}

func TestSettingsSameDurations(t *testing.T) {
	base := DefaultSettings()

	toggled := base
	toggled.SoundEnabled = false
	toggled.Volume = 0.9
	assert.True(t, base.SameDurations(toggled))

	longer := base
	longer.WorkDuration = 30
	assert.False(t, base.SameDurations(longer))
}

func TestModeHelpers(t *testing.T) {
	assert.False(t, ModeWork.IsBreak())
	assert.True(t, ModeShortBreak.IsBreak())
	assert.True(t, ModeLongBreak.IsBreak())
	assert.True(t, ModeLongBreak.Valid())
	assert.False(t, Mode("nap").Valid())
	assert.Equal(t, "Short break", ModeShortBreak.Label())
	assert.Len(t, Modes(), 3)
}
