package resources

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"
)

// PCM format of every generated tone: signed 16-bit little endian stereo.
const (
	SampleRate     = 44100
	ChannelCount   = 2
	bytesPerSample = 2
)

type note struct {
	frequency float64
	length    time.Duration
}

var toneScores = map[string][]note{
	"notification": {
		{frequency: 800, length: 200 * time.Millisecond},
		{frequency: 1000, length: 200 * time.Millisecond},
		{frequency: 1200, length: 300 * time.Millisecond},
	},
	"click": {
		{frequency: 1600, length: 25 * time.Millisecond},
	},
}

var toneCache sync.Map

// Tone returns the PCM data for the named cue.
func Tone(name string) ([]byte, error) {
	if cached, ok := toneCache.Load(name); ok {
		return cached.([]byte), nil
	}
	score, ok := toneScores[name]
	if !ok {
		return nil, fmt.Errorf("load tone %s: not found", name)
	}

	var pcm []byte
	for _, n := range score {
		pcm = append(pcm, synthesize(n)...)
	}
	toneCache.Store(name, pcm)
	return pcm, nil
}

// synthesize renders one sine note with a short linear fade at both ends to avoid clicks.
func synthesize(n note) []byte {
	frames := int(int64(n.length) * SampleRate / int64(time.Second))
	fade := SampleRate / 200
	if fade > frames/2 {
		fade = frames / 2
	}

	out := make([]byte, frames*ChannelCount*bytesPerSample)
	for i := 0; i < frames; i++ {
		envelope := 1.0
		if fade > 0 {
			if i < fade {
				envelope = float64(i) / float64(fade)
			} else if remaining := frames - 1 - i; remaining < fade {
				envelope = float64(remaining) / float64(fade)
			}
		}
		value := math.Sin(2*math.Pi*n.frequency*float64(i)/SampleRate) * envelope * 0.6
		sample := uint16(int16(value * math.MaxInt16))
		for channel := 0; channel < ChannelCount; channel++ {
			offset := (i*ChannelCount + channel) * bytesPerSample
			binary.LittleEndian.PutUint16(out[offset:], sample)
		}
	}
	return out
}
