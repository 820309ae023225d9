package platform

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"

	"focusclock/internal/audio"
	"focusclock/resources"
)

// Speaker plays the synthesized cues through the system audio device.
type Speaker struct {
	once    sync.Once
	context *oto.Context
	err     error
}

// NewSpeaker returns a Speaker. The audio device is opened on the first Load.
func NewSpeaker() *Speaker {
	return &Speaker{}
}

// Load returns a player for cue.
func (speaker *Speaker) Load(cue audio.Cue) (audio.Player, error) {
	pcm, err := resources.Tone(string(cue))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cue, audio.ErrUnknownCue)
	}
	context, err := speaker.open()
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(pcm)
	return &speakerPlayer{player: context.NewPlayer(reader)}, nil
}

func (speaker *Speaker) open() (*oto.Context, error) {
	speaker.once.Do(func() {
		context, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   resources.SampleRate,
			ChannelCount: resources.ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			speaker.err = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		speaker.context = context
	})
	return speaker.context, speaker.err
}

type speakerPlayer struct {
	mu     sync.Mutex
	player *oto.Player
	closed bool
}

func (player *speakerPlayer) Rewind() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return nil
	}
	if player.player.IsPlaying() {
		player.player.Pause()
	}
	if _, err := player.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind cue: %w", err)
	}
	return nil
}

func (player *speakerPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return nil
	}
	player.player.Play()
	return nil
}

func (player *speakerPlayer) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return
	}
	player.player.SetVolume(volume)
}

func (player *speakerPlayer) Close() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.closed {
		return nil
	}
	player.closed = true
	player.player.Pause()
	return nil
}
