package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/core/model"
)

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "focusclock", settingsFileName)
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(settingsPath(t))

	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveThenLoadSettings(t *testing.T) {
	path := settingsPath(t)
	want := model.Settings{
		WorkDuration:         50,
		ShortBreakDuration:   10,
		LongBreakDuration:    30,
		LongBreakInterval:    3,
		AutoStartBreaks:      true,
		AutoStartPomodoros:   true,
		SoundEnabled:         false,
		NotificationsEnabled: false,
		Volume:               0.25,
	}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsKeepsDefaultsForMissingOrInvalidKeys(t *testing.T) {
	path := settingsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: 40\nlong_break_interval: -2\nvolume: 3\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	defaults := model.DefaultSettings()
	assert.Equal(t, 40, settings.WorkDuration)
	assert.Equal(t, defaults.LongBreakInterval, settings.LongBreakInterval)
	assert.InDelta(t, defaults.Volume, settings.Volume, 0.0001)
	assert.True(t, settings.SoundEnabled)
	assert.True(t, settings.NotificationsEnabled)
}

func TestLoadSettingsRejectsBrokenYAML(t *testing.T) {
	path := settingsPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Settings)
		valid  bool
	}{
		{"defaults", func(*model.Settings) {}, true},
		{"zero work", func(s *model.Settings) { s.WorkDuration = 0 }, false},
		{"negative short", func(s *model.Settings) { s.ShortBreakDuration = -1 }, false},
		{"zero long", func(s *model.Settings) { s.LongBreakDuration = 0 }, false},
		{"zero interval", func(s *model.Settings) { s.LongBreakInterval = 0 }, false},
		{"loud", func(s *model.Settings) { s.Volume = 1.5 }, false},
		{"silent", func(s *model.Settings) { s.Volume = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := model.DefaultSettings()
			tt.mutate(&settings)
			err := Validate(settings)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			}
		})
	}
}

func TestStoreUpdateNotifiesSubscribers(t *testing.T) {
	store, err := OpenStore(settingsPath(t), zerolog.Nop())
	require.NoError(t, err)

	var received []model.Settings
	cancel := store.Subscribe(func(settings model.Settings) {
		received = append(received, settings)
	})

	updated := store.Current()
	updated.WorkDuration = 30
	require.NoError(t, store.Update(updated))
	require.NoError(t, store.Update(updated))

	require.Len(t, received, 1, "unchanged settings are not republished")
	assert.Equal(t, 30, received[0].WorkDuration)
	assert.Equal(t, 30, store.Current().WorkDuration)

	onDisk, err := LoadSettings(store.Path())
	require.NoError(t, err)
	assert.Equal(t, 30, onDisk.WorkDuration)

	cancel()
	cancel()
	updated.WorkDuration = 45
	require.NoError(t, store.Update(updated))
	assert.Len(t, received, 1)
}

func TestStoreUpdateRejectsInvalidSettings(t *testing.T) {
	store, err := OpenStore(settingsPath(t), zerolog.Nop())
	require.NoError(t, err)

	invalid := store.Current()
	invalid.LongBreakInterval = 0

	err = store.Update(invalid)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, model.DefaultSettings(), store.Current())
	_, statErr := os.Stat(store.Path())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestStoreReloadPicksUpExternalEdit(t *testing.T) {
	path := settingsPath(t)
	store, err := OpenStore(path, zerolog.Nop())
	require.NoError(t, err)

	edited := model.DefaultSettings()
	edited.ShortBreakDuration = 7
	require.NoError(t, SaveSettings(path, edited))

	require.NoError(t, store.Reload())
	assert.Equal(t, 7, store.Current().ShortBreakDuration)
}

func TestStoreWatchReloadsOnWrite(t *testing.T) {
	path := settingsPath(t)
	store, err := OpenStore(path, zerolog.Nop())
	require.NoError(t, err)

	var mu sync.Mutex
	var latest model.Settings
	store.Subscribe(func(settings model.Settings) {
		mu.Lock()
		latest = settings
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx)
	}()

	edited := model.DefaultSettings()
	edited.LongBreakDuration = 20
	require.Eventually(t, func() bool {
		// Rewrite until the watcher has been registered and sees the change.
		_ = SaveSettings(path, edited)
		mu.Lock()
		defer mu.Unlock()
		return latest.LongBreakDuration == 20
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestMarshalSettingsUsesFileKeys(t *testing.T) {
	serialized, err := MarshalSettings(model.DefaultSettings())
	require.NoError(t, err)

	text := string(serialized)
	assert.Contains(t, text, "work_minutes: 25")
	assert.Contains(t, text, "long_break_interval: 4")
	assert.Contains(t, text, "sound_enabled: true")
	assert.Contains(t, text, "volume: 0.5")
}

func TestStoreReloadIgnoresEmptyOrMissingFile(t *testing.T) {
	path := settingsPath(t)
	store, err := OpenStore(path, zerolog.Nop())
	require.NoError(t, err)

	updated := store.Current()
	updated.WorkDuration = 50
	require.NoError(t, store.Update(updated))

	var published int
	store.Subscribe(func(model.Settings) { published++ })

	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	require.NoError(t, store.Reload())
	require.NoError(t, os.Remove(path))
	require.NoError(t, store.Reload())

	assert.Zero(t, published)
	assert.Equal(t, 50, store.Current().WorkDuration)
}

func TestStoreWatchNeverPublishesUnwrittenSettings(t *testing.T) {
	path := settingsPath(t)
	store, err := OpenStore(path, zerolog.Nop())
	require.NoError(t, err)

	base := store.Current()
	base.WorkDuration = 50
	require.NoError(t, store.Update(base))

	var mu sync.Mutex
	var seen []model.Settings
	store.Subscribe(func(settings model.Settings) {
		mu.Lock()
		seen = append(seen, settings)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx)
	}()

	written := map[model.Settings]bool{base: true}
	for i := 1; i <= 300; i++ {
		next := base
		next.Volume = float64(i%100) / 100
		written[next] = true
		require.NoError(t, store.Update(next))
	}
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for _, settings := range seen {
		assert.Equal(t, 50, settings.WorkDuration)
		assert.True(t, written[settings], "published settings %+v were never written", settings)
	}
}
