// Package clock provides the time sources used for entry expiry.
//
// Nothing in this package runs in the background until Coarse is first
// called. Every time it hands out carries a monotonic reading whenever the
// underlying time.Now does, so deadlines survive wall clock jumps.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is how often the coarse clock is refreshed.
const Resolution = time.Millisecond

var (
	coarse     atomic.Pointer[time.Time]
	coarseOnce sync.Once
)

func startCoarse() {
	now := time.Now()
	coarse.Store(&now)
	go func() {
		ticker := time.NewTicker(Resolution)
		for t := range ticker.C {
			now := t
			coarse.Store(&now)
		}
	}()
}

// Coarse returns the current time as last sampled by a shared ticker.
// This is cheaper than time.Now in hot paths but may be up to Resolution
// stale. The first call starts the ticker, which runs for the life of the
// process.
func Coarse() time.Time {
	coarseOnce.Do(startCoarse)
	return *coarse.Load()
}

// Manual is a clock that only moves when told to.
type Manual struct {
	start  time.Time
	offset atomic.Int64
}

// NewManual returns a Manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{start: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.start.Add(time.Duration(m.offset.Load()))
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}
