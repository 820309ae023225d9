// Package timer implements the pomodoro countdown engine.
package timer

import (
	"sync"
	"time"

	"focusclock/internal/clock"
	"focusclock/internal/core/model"
)

// SettingsSource exposes live settings and notifies on change.
type SettingsSource interface {
	Current() model.Settings
	Subscribe(listener func(model.Settings)) (cancel func())
}

// Callbacks receive engine events synchronously and in transition order.
// They must not call mutating Engine methods; Snapshot and Progress are safe.
type Callbacks struct {
	OnTick     func(timeLeft int)
	OnComplete func(Completion)
}

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Clock        clock.Clock
}

// Engine is the countdown state machine for work and break intervals.
type Engine struct {
	// opMu serializes transitions together with the delivery of their events.
	opMu sync.Mutex

	mu          sync.Mutex
	source      SettingsSource
	callbacks   Callbacks
	options     Config
	mode        model.Mode
	timeLeft    int
	running     bool
	completed   int
	durations   model.Settings
	ticker      clock.Ticker
	stopCh      chan struct{}
	generation  uint64
	events      []chan Event
	unsubscribe func()
	closed      bool
}

// New creates an Engine in work mode, paused, with a full work countdown.
func New(source SettingsSource, callbacks Callbacks, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.Real{}
	}

	settings := source.Current()
	engine := &Engine{
		source:    source,
		callbacks: callbacks,
		options:   options,
		mode:      model.ModeWork,
		timeLeft:  settings.Seconds(model.ModeWork),
		durations: settings,
	}
	engine.unsubscribe = source.Subscribe(engine.applySettings)
	return engine
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Progress returns the elapsed share of the current interval in percent.
func (engine *Engine) Progress() float64 {
	return engine.Snapshot().Progress
}

// Start resumes the countdown. It does nothing when already running or when no time is left.
func (engine *Engine) Start() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()
	engine.startOp()
}

// Pause stops the countdown. No tick or completion fires after Pause returns.
func (engine *Engine) Pause() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()
	engine.pauseOp()
}

// Toggle pauses a running countdown and starts a paused one.
func (engine *Engine) Toggle() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	running := engine.running
	engine.mu.Unlock()

	if running {
		engine.pauseOp()
		return
	}
	engine.startOp()
}

// Reset stops the countdown and refills the current mode.
func (engine *Engine) Reset() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.setRunningLocked(false)
	engine.timeLeft = engine.totalLocked(engine.mode)
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.emit(Event{Type: EventState, Snapshot: snapshot, At: engine.options.Clock.Now()})
}

// SetMode switches to mode with a full, paused countdown.
func (engine *Engine) SetMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}

	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.setRunningLocked(false)
	engine.mode = mode
	engine.timeLeft = engine.totalLocked(mode)
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.emit(Event{Type: EventState, Snapshot: snapshot, At: engine.options.Clock.Now()})
}

// Skip completes the current interval immediately.
func (engine *Engine) Skip() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()
	engine.completeOp(true)
}

// Close stops the clock, detaches from settings and closes observer channels.
func (engine *Engine) Close() {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.setRunningLocked(false)
	events := engine.events
	engine.events = nil
	unsubscribe := engine.unsubscribe
	engine.unsubscribe = nil
	engine.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startOp() {
	engine.mu.Lock()
	if engine.closed || engine.running || engine.timeLeft == 0 {
		engine.mu.Unlock()
		return
	}
	engine.setRunningLocked(true)
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.emit(Event{Type: EventState, Snapshot: snapshot, At: engine.options.Clock.Now()})
}

func (engine *Engine) pauseOp() {
	engine.mu.Lock()
	if engine.closed || !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.setRunningLocked(false)
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.emit(Event{Type: EventState, Snapshot: snapshot, At: engine.options.Clock.Now()})
}

func (engine *Engine) run(generation uint64, ticker clock.Ticker, stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			engine.step(generation)
		}
	}
}

// step advances the countdown by one tick of the clock identified by generation.
func (engine *Engine) step(generation uint64) {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	if engine.closed || !engine.running || engine.generation != generation {
		engine.mu.Unlock()
		return
	}
	if engine.timeLeft <= 0 {
		engine.mu.Unlock()
		engine.completeOp(false)
		return
	}
	engine.timeLeft--
	timeLeft := engine.timeLeft
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	if engine.callbacks.OnTick != nil {
		engine.callbacks.OnTick(timeLeft)
	}
	engine.emit(Event{Type: EventTick, Snapshot: snapshot, At: engine.options.Clock.Now()})

	if timeLeft == 0 {
		engine.completeOp(false)
	}
}

// completeOp applies the end-of-interval transition. Callers hold opMu.
func (engine *Engine) completeOp(skipped bool) {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}

	settings := engine.source.Current()
	ended := engine.mode
	planned := settings.Seconds(ended)
	elapsed := planned - engine.timeLeft
	if elapsed < 0 {
		elapsed = 0
	}

	var next model.Mode
	var running bool
	if ended == model.ModeWork {
		engine.completed++
		if settings.LongBreakInterval > 0 && engine.completed%settings.LongBreakInterval == 0 {
			next = model.ModeLongBreak
		} else {
			next = model.ModeShortBreak
		}
		running = settings.AutoStartBreaks
	} else {
		next = model.ModeWork
		running = settings.AutoStartPomodoros
	}

	engine.mode = next
	engine.timeLeft = settings.Seconds(next)
	engine.setRunningLocked(running)

	now := engine.options.Clock.Now()
	completion := Completion{
		Ended:              ended,
		Next:               next,
		Skipped:            skipped,
		Planned:            time.Duration(planned) * time.Second,
		Elapsed:            time.Duration(elapsed) * time.Second,
		CompletedPomodoros: engine.completed,
		At:                 now,
	}
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	if engine.callbacks.OnComplete != nil {
		engine.callbacks.OnComplete(completion)
	}
	engine.emit(Event{Type: EventComplete, Snapshot: snapshot, Completion: completion, At: now})
}

func (engine *Engine) applySettings(settings model.Settings) {
	engine.opMu.Lock()
	defer engine.opMu.Unlock()

	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	changed := !engine.durations.SameDurations(settings)
	engine.durations = settings
	if !changed {
		engine.mu.Unlock()
		return
	}

	total := settings.Seconds(engine.mode)
	if !engine.running || engine.timeLeft > total {
		engine.timeLeft = total
	}
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.emit(Event{Type: EventState, Snapshot: snapshot, At: engine.options.Clock.Now()})
}

// setRunningLocked flips the running flag and owns the clock goroutine lifecycle.
func (engine *Engine) setRunningLocked(running bool) {
	if running == engine.running {
		return
	}
	engine.running = running
	if running {
		engine.startClockLocked()
	} else {
		engine.stopClockLocked()
	}
}

func (engine *Engine) startClockLocked() {
	engine.generation++
	ticker := engine.options.Clock.NewTicker(engine.options.TickInterval)
	stopCh := make(chan struct{})
	engine.ticker = ticker
	engine.stopCh = stopCh
	go engine.run(engine.generation, ticker, stopCh)
}

func (engine *Engine) stopClockLocked() {
	if engine.stopCh == nil {
		return
	}
	close(engine.stopCh)
	engine.ticker.Stop()
	engine.stopCh = nil
	engine.ticker = nil
	engine.generation++
}

func (engine *Engine) totalLocked(mode model.Mode) int {
	return engine.source.Current().Seconds(mode)
}

func (engine *Engine) snapshotLocked() Snapshot {
	total := engine.totalLocked(engine.mode)
	return Snapshot{
		Mode:               engine.mode,
		TimeLeft:           engine.timeLeft,
		Total:              total,
		Running:            engine.running,
		CompletedPomodoros: engine.completed,
		Progress:           Progress(total, engine.timeLeft),
	}
}

func (engine *Engine) emit(event Event) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
