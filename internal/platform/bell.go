package platform

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"focusclock/internal/audio"
)

const bellChar = "\a"

// Bell is an audio host for terminals: the notification cue rings the terminal bell.
// The click cue is silent.
type Bell struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewBell returns a Bell writing to writer.
func NewBell(writer io.Writer) *Bell {
	return &Bell{writer: writer}
}

// Load returns a player for cue.
func (bell *Bell) Load(cue audio.Cue) (audio.Player, error) {
	switch cue {
	case audio.CueNotification:
		return &bellPlayer{bell: bell, rings: true}, nil
	case audio.CueClick:
		return &bellPlayer{bell: bell}, nil
	default:
		return nil, fmt.Errorf("load %s: %w", cue, audio.ErrUnknownCue)
	}
}

func (bell *Bell) ring() error {
	bell.mu.Lock()
	defer bell.mu.Unlock()
	if bell.writer == nil {
		return nil
	}
	if _, err := io.WriteString(bell.writer, bellChar); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

type bellPlayer struct {
	bell  *Bell
	rings bool
	muted atomic.Bool
}

func (player *bellPlayer) Rewind() error { return nil }

func (player *bellPlayer) Play() error {
	if !player.rings || player.muted.Load() {
		return nil
	}
	return player.bell.ring()
}

// A terminal bell has no volume; zero volume mutes it.
func (player *bellPlayer) SetVolume(volume float64) {
	player.muted.Store(volume <= 0)
}

func (player *bellPlayer) Close() error { return nil }
