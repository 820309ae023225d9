// Package app connects the timer engine to user actions and feedback.
package app

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"focusclock/internal/core/model"
	"focusclock/internal/core/timer"
	"focusclock/internal/history"
)

// Sounds plays the feedback cues.
type Sounds interface {
	PlayNotification()
	PlayClick()
}

// Notifier shows the notification for an ended mode.
type Notifier interface {
	Show(ended model.Mode)
}

// Journal records finished intervals.
type Journal interface {
	Add(entry history.Entry) (history.Record, error)
}

// Options contains the collaborators of a Controller.
type Options struct {
	Settings timer.SettingsSource
	Sounds   Sounds
	Notifier Notifier
	Journal  Journal
	Logger   zerolog.Logger
	Timer    timer.Config
}

// Controller owns the engine, forwards user actions and fans completions out to feedback.
type Controller struct {
	engine   *timer.Engine
	sounds   Sounds
	notifier Notifier
	journal  Journal
	logger   zerolog.Logger

	mu       sync.Mutex
	note     string
	feedback sync.WaitGroup
}

// New creates a Controller and its engine.
func New(options Options) *Controller {
	controller := &Controller{
		sounds:   options.Sounds,
		notifier: options.Notifier,
		journal:  options.Journal,
		logger:   options.Logger.With().Str("component", "controller").Logger(),
	}
	controller.engine = timer.New(options.Settings, timer.Callbacks{
		OnTick:     controller.handleTick,
		OnComplete: controller.handleComplete,
	}, options.Timer)
	return controller
}

// Engine exposes the engine for reads and observer subscriptions.
func (controller *Controller) Engine() *timer.Engine {
	return controller.engine
}

// Start resumes the countdown.
func (controller *Controller) Start() {
	controller.click()
	controller.engine.Start()
}

// Pause stops the countdown.
func (controller *Controller) Pause() {
	controller.click()
	controller.engine.Pause()
}

// Toggle starts or pauses the countdown.
func (controller *Controller) Toggle() {
	controller.click()
	controller.engine.Toggle()
}

// Reset refills the current interval.
func (controller *Controller) Reset() {
	controller.click()
	controller.engine.Reset()
}

// Skip ends the current interval now.
func (controller *Controller) Skip() {
	controller.click()
	controller.engine.Skip()
}

// SetMode switches to mode.
func (controller *Controller) SetMode(mode model.Mode) {
	controller.click()
	controller.engine.SetMode(mode)
}

// SetNote sets the note attached to the next finished work interval.
func (controller *Controller) SetNote(note string) {
	controller.mu.Lock()
	controller.note = note
	controller.mu.Unlock()
}

// Note returns the current work note.
func (controller *Controller) Note() string {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.note
}

// Wait blocks until in-flight notification and journal work has finished.
func (controller *Controller) Wait() {
	controller.feedback.Wait()
}

// Close stops the engine and waits for pending feedback.
func (controller *Controller) Close() {
	controller.engine.Close()
	controller.feedback.Wait()
}

func (controller *Controller) click() {
	if controller.sounds != nil {
		controller.sounds.PlayClick()
	}
}

func (controller *Controller) handleTick(timeLeft int) {
	if timeLeft%60 == 0 {
		controller.logger.Debug().Int("time_left", timeLeft).Msg("tick")
	}
}

func (controller *Controller) handleComplete(completion timer.Completion) {
	controller.logger.Info().
		Str("ended", string(completion.Ended)).
		Str("next", string(completion.Next)).
		Bool("skipped", completion.Skipped).
		Int("completed_pomodoros", completion.CompletedPomodoros).
		Msg("interval complete")

	if controller.sounds != nil {
		controller.sounds.PlayNotification()
	}

	note := ""
	if completion.Ended == model.ModeWork {
		controller.mu.Lock()
		note = controller.note
		controller.note = ""
		controller.mu.Unlock()
	}

	controller.feedback.Add(1)
	go func() {
		defer controller.feedback.Done()
		if controller.notifier != nil {
			controller.notifier.Show(completion.Ended)
		}
		controller.record(completion, note)
	}()
}

func (controller *Controller) record(completion timer.Completion, note string) {
	if controller.journal == nil {
		return
	}
	_, err := controller.journal.Add(history.Entry{
		Mode:    completion.Ended,
		Planned: completion.Planned,
		Elapsed: completion.Elapsed,
		Skipped: completion.Skipped,
		Note:    note,
		At:      completion.At,
	})
	if err != nil && !errors.Is(err, history.ErrNothingElapsed) {
		controller.logger.Warn().Err(err).Msg("record interval")
	}
}
