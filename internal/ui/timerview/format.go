package timerview

import (
	"fmt"

	"focusclock/internal/core/model"
	"focusclock/internal/core/timer"
)

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Status is the one-line summary shown in the tray and the window title.
func Status(snapshot timer.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.Mode.Label(), FormatClock(snapshot.TimeLeft))
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

// CounterText describes the completed pomodoro count.
func CounterText(completed int) string {
	if completed == 1 {
		return "1 pomodoro done"
	}
	return fmt.Sprintf("%d pomodoros done", completed)
}

// ToggleLabel is the caption of the start/pause control.
func ToggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

// selectedMode maps a mode selector label to the mode to switch to. An empty or unknown
// label keeps current and reports false so the selector can be restored.
func selectedMode(label string, current model.Mode) (model.Mode, bool) {
	for _, mode := range model.Modes() {
		if mode.Label() == label {
			return mode, true
		}
	}
	return current, false
}
