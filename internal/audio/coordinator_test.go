package audio

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/core/model"
)

type fakePlayer struct {
	rewinds int
	plays   int
	closes  int
	volumes []float64
	playErr error
}

func (player *fakePlayer) Rewind() error {
	player.rewinds++
	return nil
}

func (player *fakePlayer) Play() error {
	player.plays++
	return player.playErr
}

func (player *fakePlayer) SetVolume(volume float64) {
	player.volumes = append(player.volumes, volume)
}

func (player *fakePlayer) Close() error {
	player.closes++
	return nil
}

func (player *fakePlayer) lastVolume() float64 {
	if len(player.volumes) == 0 {
		return -1
	}
	return player.volumes[len(player.volumes)-1]
}

type fakeHost struct {
	players map[Cue]*fakePlayer
	failing map[Cue]bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{players: map[Cue]*fakePlayer{}, failing: map[Cue]bool{}}
}

func (host *fakeHost) Load(cue Cue) (Player, error) {
	if host.failing[cue] {
		return nil, fmt.Errorf("load %s: %w", cue, ErrUnknownCue)
	}
	player := &fakePlayer{}
	host.players[cue] = player
	return player, nil
}

type settingsSource struct {
	mu        sync.Mutex
	settings  model.Settings
	listeners []func(model.Settings)
	cancelled int
}

func (source *settingsSource) Current() model.Settings {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.settings
}

func (source *settingsSource) Subscribe(listener func(model.Settings)) func() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.listeners = append(source.listeners, listener)
	return func() {
		source.mu.Lock()
		source.listeners = nil
		source.cancelled++
		source.mu.Unlock()
	}
}

func (source *settingsSource) set(settings model.Settings) {
	source.mu.Lock()
	source.settings = settings
	listeners := append([]func(model.Settings){}, source.listeners...)
	source.mu.Unlock()
	for _, listener := range listeners {
		listener(settings)
	}
}

func TestSoundDisabledMakesNoHostCalls(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SoundEnabled = false
	host := newFakeHost()
	coordinator := Open(host, &settingsSource{settings: settings}, zerolog.Nop())
	defer coordinator.Close()

	coordinator.PlayNotification()
	coordinator.PlayClick()

	for cue, player := range host.players {
		assert.Zero(t, player.plays, "cue %s", cue)
		assert.Zero(t, player.rewinds, "cue %s", cue)
	}
}

func TestPlayRewindsAndAppliesVolume(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Volume = 0.3
	host := newFakeHost()
	coordinator := Open(host, &settingsSource{settings: settings}, zerolog.Nop())
	defer coordinator.Close()

	coordinator.PlayNotification()
	coordinator.PlayNotification()
	coordinator.PlayClick()

	notification := host.players[CueNotification]
	require.NotNil(t, notification)
	assert.Equal(t, 2, notification.rewinds)
	assert.Equal(t, 2, notification.plays)
	assert.InDelta(t, 0.3, notification.lastVolume(), 0.0001)
	assert.Equal(t, 1, host.players[CueClick].plays)
}

func TestVolumeChangeAppliesToBothCues(t *testing.T) {
	source := &settingsSource{settings: model.DefaultSettings()}
	host := newFakeHost()
	coordinator := Open(host, source, zerolog.Nop())
	defer coordinator.Close()

	louder := model.DefaultSettings()
	louder.Volume = 0.9
	source.set(louder)

	for _, cue := range Cues() {
		assert.InDelta(t, 0.9, host.players[cue].lastVolume(), 0.0001, "cue %s", cue)
		assert.Zero(t, host.players[cue].plays)
	}
}

func TestCloseReleasesOnce(t *testing.T) {
	source := &settingsSource{settings: model.DefaultSettings()}
	host := newFakeHost()
	coordinator := Open(host, source, zerolog.Nop())

	coordinator.Close()
	coordinator.Close()
	coordinator.PlayNotification()

	for _, cue := range Cues() {
		assert.Equal(t, 1, host.players[cue].closes)
		assert.Zero(t, host.players[cue].plays)
	}
	assert.Equal(t, 1, source.cancelled)
}

func TestFailedLoadDegradesToSilence(t *testing.T) {
	host := newFakeHost()
	host.failing[CueNotification] = true
	coordinator := Open(host, &settingsSource{settings: model.DefaultSettings()}, zerolog.Nop())

	coordinator.PlayNotification()
	coordinator.PlayClick()
	coordinator.Close()

	assert.NotContains(t, host.players, CueNotification)
	assert.Equal(t, 1, host.players[CueClick].plays)
	assert.Equal(t, 1, host.players[CueClick].closes)
}

func TestPlayErrorIsSwallowed(t *testing.T) {
	host := newFakeHost()
	coordinator := Open(host, &settingsSource{settings: model.DefaultSettings()}, zerolog.Nop())
	defer coordinator.Close()
	host.players[CueClick].playErr = errors.New("autoplay blocked")

	assert.NotPanics(t, coordinator.PlayClick)
	assert.Equal(t, 1, host.players[CueClick].plays)
}

func TestNilHostIsSilent(t *testing.T) {
	coordinator := Open(nil, &settingsSource{settings: model.DefaultSettings()}, zerolog.Nop())

	assert.NotPanics(t, func() {
		coordinator.PlayNotification()
		coordinator.PlayClick()
		coordinator.Close()
	})
}
