package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. Record timestamps and session expiry
// checks read it so tests can pin time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }

// System returns the wall clock in UTC.
func System() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// Fake is a manually driven clock, safe for concurrent use.
// With a non-zero step every Now call moves it forward, which gives
// successive records distinct timestamps.
type Fake struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFake returns a Fake frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// WithStep makes every Now call advance the clock by step afterwards.
func (f *Fake) WithStep(step time.Duration) *Fake {
	f.mu.Lock()
	f.step = step
	f.mu.Unlock()
	return f
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now
	f.now = f.now.Add(f.step)
	return now
}

func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
