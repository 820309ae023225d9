package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Tickers created from it fire once per elapsed interval during Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// NewTicker creates a ticker that fires as Advance moves time forward.
func (manual *Manual) NewTicker(interval time.Duration) Ticker {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	ticker := &manualTicker{
		ch:       make(chan time.Time, 1),
		interval: interval,
		next:     manual.now.Add(interval),
	}
	manual.tickers = append(manual.tickers, ticker)
	return ticker
}

// Advance moves the clock forward by delta, firing due tickers.
// Like time.Ticker, a ticker whose reader is slow drops ticks.
func (manual *Manual) Advance(delta time.Duration) {
	manual.mu.Lock()
	manual.now = manual.now.Add(delta)
	now := manual.now
	tickers := append([]*manualTicker(nil), manual.tickers...)
	manual.mu.Unlock()

	for _, ticker := range tickers {
		ticker.fire(now)
	}
}

// Tickers returns the number of tickers that have not been stopped.
func (manual *Manual) Tickers() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	active := 0
	for _, ticker := range manual.tickers {
		if !ticker.isStopped() {
			active++
		}
	}
	return active
}

type manualTicker struct {
	mu       sync.Mutex
	ch       chan time.Time
	interval time.Duration
	next     time.Time
	stopped  bool
}

func (ticker *manualTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *manualTicker) Stop() {
	ticker.mu.Lock()
	ticker.stopped = true
	ticker.mu.Unlock()
}

func (ticker *manualTicker) isStopped() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.stopped
}

func (ticker *manualTicker) fire(now time.Time) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.stopped || ticker.interval <= 0 {
		return
	}
	for !ticker.next.After(now) {
		select {
		case ticker.ch <- ticker.next:
		default:
		}
		ticker.next = ticker.next.Add(ticker.interval)
	}
}

var _ Clock = (*Manual)(nil)
