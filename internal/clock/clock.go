// Package clock abstracts wall time and periodic tickers so timing code can be driven by tests.
package clock

import "time"

// Clock provides the current time and periodic tickers.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Real implements Clock with the time package.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (Real) NewTicker(interval time.Duration) Ticker {
	return realTicker{ticker: time.NewTicker(interval)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (ticker realTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker realTicker) Stop() {
	ticker.ticker.Stop()
}

var _ Clock = Real{}
