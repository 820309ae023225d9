package timer

import (
	"time"

	"focusclock/internal/core/model"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventTick     EventType = "tick"
	EventComplete EventType = "complete"
	EventState    EventType = "state"
)

// Snapshot is a consistent view of the engine state.
type Snapshot struct {
	Mode               model.Mode
	TimeLeft           int
	Total              int
	Running            bool
	CompletedPomodoros int
	Progress           float64
}

// Remaining returns TimeLeft as a duration.
func (snapshot Snapshot) Remaining() time.Duration {
	return time.Duration(snapshot.TimeLeft) * time.Second
}

// Completion describes an interval that just ended, naturally or by skip.
type Completion struct {
	Ended              model.Mode
	Next               model.Mode
	Skipped            bool
	Planned            time.Duration
	Elapsed            time.Duration
	CompletedPomodoros int
	At                 time.Time
}

// Event represents an Engine update for channel observers.
type Event struct {
	Type       EventType
	Snapshot   Snapshot
	Completion Completion
	At         time.Time
}

// Progress returns the elapsed share of total as a percentage in [0,100].
// A zero total reports 0 since no time has elapsed.
func Progress(total, timeLeft int) float64 {
	if total <= 0 {
		return 0
	}
	progress := float64(total-timeLeft) / float64(total) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
