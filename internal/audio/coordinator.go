package audio

import (
	"sync"

	"github.com/rs/zerolog"

	"focusclock/internal/core/model"
)

// SettingsSource provides the live sound toggle and volume.
type SettingsSource interface {
	Current() model.Settings
	Subscribe(listener func(model.Settings)) (cancel func())
}

// Coordinator owns the cue players for its lifetime and plays them on demand.
type Coordinator struct {
	mu          sync.Mutex
	settings    SettingsSource
	logger      zerolog.Logger
	players     map[Cue]Player
	unsubscribe func()
	closeOnce   sync.Once
}

// Open loads every cue from host. Cues that fail to load stay silent; a nil host yields
// a coordinator that never plays.
func Open(host Host, settings SettingsSource, logger zerolog.Logger) *Coordinator {
	coordinator := &Coordinator{
		settings: settings,
		logger:   logger.With().Str("component", "audio").Logger(),
		players:  map[Cue]Player{},
	}

	if host != nil {
		volume := settings.Current().Volume
		for _, cue := range Cues() {
			player, err := host.Load(cue)
			if err != nil {
				coordinator.logger.Warn().Err(err).Str("cue", string(cue)).Msg("load audio cue")
				continue
			}
			player.SetVolume(volume)
			coordinator.players[cue] = player
		}
	}

	coordinator.unsubscribe = settings.Subscribe(coordinator.applyVolume)
	return coordinator
}

// PlayNotification plays the interval-finished cue.
func (coordinator *Coordinator) PlayNotification() {
	coordinator.play(CueNotification)
}

// PlayClick plays the button cue.
func (coordinator *Coordinator) PlayClick() {
	coordinator.play(CueClick)
}

// Close releases every player. It is safe to call more than once.
func (coordinator *Coordinator) Close() {
	coordinator.closeOnce.Do(func() {
		if coordinator.unsubscribe != nil {
			coordinator.unsubscribe()
		}

		coordinator.mu.Lock()
		players := coordinator.players
		coordinator.players = nil
		coordinator.mu.Unlock()

		for cue, player := range players {
			if err := player.Close(); err != nil {
				coordinator.logger.Warn().Err(err).Str("cue", string(cue)).Msg("release audio cue")
			}
		}
	})
}

func (coordinator *Coordinator) play(cue Cue) {
	settings := coordinator.settings.Current()
	if !settings.SoundEnabled {
		return
	}

	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	player, ok := coordinator.players[cue]
	if !ok {
		return
	}
	if err := player.Rewind(); err != nil {
		coordinator.logger.Warn().Err(err).Str("cue", string(cue)).Msg("rewind audio cue")
		return
	}
	player.SetVolume(settings.Volume)
	if err := player.Play(); err != nil {
		coordinator.logger.Warn().Err(err).Str("cue", string(cue)).Msg("play audio cue")
	}
}

func (coordinator *Coordinator) applyVolume(settings model.Settings) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	for _, player := range coordinator.players {
		player.SetVolume(settings.Volume)
	}
}
