// Package audio plays short feedback cues through a host audio device.
package audio

import "errors"

// ErrUnknownCue indicates a host has no resource for the requested cue.
var ErrUnknownCue = errors.New("unknown audio cue")

// Cue identifies one of the feedback sounds.
type Cue string

const (
	CueNotification Cue = "notification"
	CueClick        Cue = "click"
)

// Cues lists every cue the coordinator acquires.
func Cues() []Cue {
	return []Cue{CueNotification, CueClick}
}

// Player is a loaded cue that can be replayed.
type Player interface {
	Rewind() error
	Play() error
	SetVolume(volume float64)
	Close() error
}

// Host loads cues into players.
type Host interface {
	Load(cue Cue) (Player, error)
}
