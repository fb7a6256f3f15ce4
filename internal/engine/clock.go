package engine

import "time"

// Clock is a countdown anchored to an absolute wall-clock timestamp.
// Remaining time is always recomputed as duration minus elapsed time
// since the anchor, never by decrementing a counter per tick, so late,
// bursty, or dropped observations cannot make the countdown drift.
//
// Clock does no scheduling of its own; callers poll it. It is not safe
// for concurrent use — the Controller serializes access to it.
type Clock struct {
	duration  time.Duration
	remaining time.Duration // frozen value while not running
	anchor    time.Time     // instant the current running stretch is measured from
	running   bool
	now       func() time.Time
}

// NewClock creates a stopped clock holding the full duration.
func NewClock(d time.Duration) *Clock {
	return NewClockAt(d, time.Now)
}

// NewClockAt creates a clock that observes time through now. Tests pass
// a fake; production code uses time.Now.
func NewClockAt(d time.Duration, now func() time.Time) *Clock {
	return &Clock{duration: d, remaining: d, now: now}
}

// Start begins (or resumes) the countdown from the current remaining
// time. Calling Start on a running or expired clock is a no-op.
//
// On resume the anchor is shifted forward so that time spent paused is
// not counted as elapsed.
func (c *Clock) Start() {
	if c.running || c.remaining <= 0 {
		return
	}
	c.anchor = c.now().Add(c.remaining - c.duration)
	c.running = true
}

// Pause freezes the remaining time at its current value. Calling Pause
// on a stopped clock is a no-op.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.remaining = c.liveRemaining()
	c.running = false
}

// Reset stops the clock and restores the configured duration.
func (c *Clock) Reset() {
	c.ResetTo(c.duration)
}

// ResetTo stops the clock and sets both the configured duration and the
// remaining time to d.
func (c *Clock) ResetTo(d time.Duration) {
	c.duration = d
	c.remaining = d
	c.running = false
}

// Duration returns the configured countdown duration.
func (c *Clock) Duration() time.Duration {
	return c.duration
}

// Remaining returns the time left, clamped at zero. Observing an
// expired clock clears the running flag; the clock never goes negative.
func (c *Clock) Remaining() time.Duration {
	if !c.running {
		return c.remaining
	}
	rem := c.liveRemaining()
	if rem == 0 {
		c.remaining = 0
		c.running = false
	}
	return rem
}

// RemainingSeconds returns the remaining time at whole-second display
// granularity: a fresh 30s clock reads 30 and the value stays at 1
// until the countdown actually hits zero.
func (c *Clock) RemainingSeconds() int {
	rem := c.Remaining()
	return int((rem + time.Second - 1) / time.Second)
}

// Running reports whether the countdown is live, observing expiry.
func (c *Clock) Running() bool {
	c.Remaining()
	return c.running
}

// ProgressPercent returns how much of the countdown has elapsed, 0-100.
func (c *Clock) ProgressPercent() float64 {
	if c.duration <= 0 {
		return 0
	}
	return float64(c.duration-c.Remaining()) / float64(c.duration) * 100
}

func (c *Clock) liveRemaining() time.Duration {
	rem := c.duration - c.now().Sub(c.anchor)
	if rem < 0 {
		rem = 0
	}
	return rem
}
