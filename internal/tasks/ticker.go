package tasks

import "time"

// Ticker is the timer handle owned by the loading rotator.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a [Ticker] firing every d.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

// NewTicker wraps [time.NewTicker].
func NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }
