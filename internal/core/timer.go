package core

import "time"

// Clock reports monotonic milliseconds.
type Clock interface {
	Millis() int64
}

// SystemClock measures milliseconds since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock { return &SystemClock{start: time.Now()} }

// Millis returns the elapsed milliseconds. time.Since uses the monotonic reading.
func (c *SystemClock) Millis() int64 { return time.Since(c.start).Milliseconds() }

// Interval throttles simulation ticks to a wall-clock cadence. It is polled
// once per frame and never sleeps.
type Interval struct {
	clock  Clock
	period int64
	last   int64
	primed bool
}

// NewInterval constructs an Interval firing every periodMillis milliseconds.
func NewInterval(clock Clock, periodMillis int64) *Interval {
	if periodMillis <= 0 {
		periodMillis = 1
	}
	return &Interval{clock: clock, period: periodMillis}
}

// SetPeriod changes the tick period. It is safe to call from the main loop.
func (iv *Interval) SetPeriod(periodMillis int64) {
	if periodMillis <= 0 {
		periodMillis = 1
	}
	iv.period = periodMillis
}

// Period returns the tick period in milliseconds.
func (iv *Interval) Period() int64 { return iv.period }

// Due reports whether a full period has elapsed since the last tick. The
// first poll only records the start time. At most one tick is reported per
// poll; a late frame does not trigger a burst of catch-up ticks.
func (iv *Interval) Due() bool {
	now := iv.clock.Millis()
	if !iv.primed {
		iv.last = now
		iv.primed = true
		return false
	}
	if now-iv.last < iv.period {
		return false
	}
	iv.last = now
	return true
}
