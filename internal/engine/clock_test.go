package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTime is a hand-stepped time source shared by the engine tests.
// The mutex matters only for the ticker-loop test, where the tick
// goroutine observes time while the test advances it.
type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestClockCountsDownFromAnchor(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)

	require.Equal(t, 30, c.RemainingSeconds())
	require.False(t, c.Running())

	c.Start()
	require.True(t, c.Running())

	ft.Advance(10 * time.Second)
	assert.Equal(t, 20*time.Second, c.Remaining())
	assert.Equal(t, 20, c.RemainingSeconds())
	assert.InDelta(t, 33.33, c.ProgressPercent(), 0.01)
}

func TestClockPauseResumePreservesElapsedTime(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)

	c.Start()
	ft.Advance(10 * time.Second)
	c.Pause()
	require.False(t, c.Running())
	require.Equal(t, 20*time.Second, c.Remaining())

	// The pause gap must not count as elapsed countdown time.
	ft.Advance(5 * time.Second)
	require.Equal(t, 20*time.Second, c.Remaining())

	c.Start()
	ft.Advance(20 * time.Second)
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.False(t, c.Running())
}

func TestClockRemainingNeverIncreasesWhileRunning(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(60*time.Second, ft.Now)
	c.Start()

	prev := c.Remaining()
	steps := []time.Duration{
		50 * time.Millisecond, 3 * time.Second, 0, 700 * time.Millisecond,
		10 * time.Second, 1 * time.Nanosecond, 90 * time.Second,
	}
	for _, step := range steps {
		ft.Advance(step)
		rem := c.Remaining()
		assert.LessOrEqual(t, rem, prev)
		assert.GreaterOrEqual(t, rem, time.Duration(0))
		prev = rem
	}
}

func TestClockStartIsIdempotent(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)

	c.Start()
	ft.Advance(10 * time.Second)
	// A second Start must not re-anchor and hand back elapsed time.
	c.Start()
	assert.Equal(t, 20*time.Second, c.Remaining())

	c.Pause()
	c.Pause()
	assert.Equal(t, 20*time.Second, c.Remaining())
}

func TestClockClampsAtZeroAndStops(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)
	c.Start()

	// Simulates an observation arriving long after expiry, as after a
	// backgrounded-tab style suspension.
	ft.Advance(5 * time.Minute)
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.Equal(t, 0, c.RemainingSeconds())
	assert.False(t, c.Running())
	assert.InDelta(t, 100, c.ProgressPercent(), 0.001)

	// Starting an expired clock is a no-op until it is reset.
	c.Start()
	assert.False(t, c.Running())

	c.Reset()
	assert.Equal(t, 30*time.Second, c.Remaining())
	c.Start()
	assert.True(t, c.Running())
}

func TestClockResetTo(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)
	c.Start()
	ft.Advance(12 * time.Second)

	c.ResetTo(45 * time.Second)
	assert.False(t, c.Running())
	assert.Equal(t, 45*time.Second, c.Remaining())
	assert.Equal(t, 45*time.Second, c.Duration())
}

func TestClockRemainingSecondsIsCeiling(t *testing.T) {
	ft := newFakeTime()
	c := NewClockAt(30*time.Second, ft.Now)
	c.Start()

	ft.Advance(100 * time.Millisecond)
	assert.Equal(t, 30, c.RemainingSeconds())

	ft.Advance(900 * time.Millisecond)
	assert.Equal(t, 29, c.RemainingSeconds())

	// Displays 1 until the countdown actually reaches zero.
	ft.Advance(28*time.Second + 500*time.Millisecond)
	assert.Equal(t, 1, c.RemainingSeconds())
	ft.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, c.RemainingSeconds())
}
