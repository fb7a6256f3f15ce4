package engine

import (
	"math/rand"
	"sync"
	"time"

	"poseloop/internal/domain"
)

// nearZeroThreshold is the remaining time at which CountdownNearZero
// fires, once per pose.
const nearZeroThreshold = 3 * time.Second

// defaultTickInterval is finer than a second so progress readouts
// animate smoothly; displayed values stay whole seconds.
const defaultTickInterval = 100 * time.Millisecond

// Controller glues the Selector and the Clock into a navigable
// session. It builds the fixed pose sequence once at construction,
// owns the current position, advances automatically when a pose's
// countdown expires, and exposes play/pause/next/previous plus a
// snapshot of the presentation state.
//
// All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	plan     SessionPlan
	position int
	clock    *Clock
	notifier Notifier
	now      func() time.Time
	rng      *rand.Rand
	tick     time.Duration

	// generation stamps the active tick loop. Pause, navigation,
	// restart, and Close bump it; a loop that wakes up with a stale
	// stamp exits without touching state.
	generation int
	closed     bool
	warned     bool // near-zero already fired for the current pose
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier installs the transition notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithNow substitutes the time source. Tests step a fake.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand substitutes the randomness source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithTickInterval overrides how often the tick loop polls the clock.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) { c.tick = d }
}

// NewController builds the pose sequence from cfg and pool and returns
// a session positioned at the first pose with the clock stopped. An
// empty pool yields a degenerate session that reports no current pose
// and ignores navigation; nothing here can fail.
func NewController(cfg Config, pool []domain.Pose, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		notifier: NopNotifier{},
		now:      time.Now,
		tick:     defaultTickInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.plan = PlanSession(pool, cfg.MatchTerms, cfg.TargetCount(), cfg.Randomize, c.rng)
	c.clock = NewClockAt(cfg.PoseLength(), c.now)
	return c
}

// Play starts (or resumes) the countdown for the current pose. It is a
// no-op while already playing, after completion, on a degenerate
// session, and after Close.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.play()
}

// Pause freezes the countdown. No-op when not playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.clock.Running() {
		return
	}
	c.clock.Pause()
	c.generation++
}

// Next advances to the following pose, resets the countdown, and
// resumes playing — a manual skip feels identical to natural expiry.
// Skipping past the last pose completes the session.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.plan.Poses) == 0 || c.position >= len(c.plan.Poses) {
		return
	}
	if c.position == len(c.plan.Poses)-1 {
		c.complete()
		return
	}
	c.moveTo(c.position + 1)
}

// Previous steps back one pose, resets the countdown, and resumes
// playing. No-op at the first pose.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.plan.Poses) == 0 || c.position == 0 {
		return
	}
	c.moveTo(c.position - 1)
}

// Restart rewinds a session to its first pose and resumes playing,
// with the same sequence the session was built with.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.plan.Poses) == 0 {
		return
	}
	c.moveTo(0)
}

// Close tears the session down. Any pending tick becomes a no-op; the
// Controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	c.clock.Pause()
}

// State is the presentation snapshot of a session.
type State struct {
	// CurrentPose is nil once the session has completed and on
	// degenerate (empty-sequence) sessions.
	CurrentPose *domain.Pose
	// Position is 1-based for "Pose N of M" display; it stays at Total
	// after completion.
	Position         int
	Total            int
	RemainingSeconds int
	ProgressPercent  float64
	Running          bool
	Completed        bool
}

// Snapshot returns the current presentation state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := len(c.plan.Poses)
	st := State{
		Total:            total,
		RemainingSeconds: c.clock.RemainingSeconds(),
		ProgressPercent:  c.clock.ProgressPercent(),
		Running:          c.clock.Running(),
		Completed:        c.position >= total,
	}
	if st.Completed {
		st.Position = total
	} else {
		pose := c.plan.Poses[c.position]
		st.CurrentPose = &pose
		st.Position = c.position + 1
	}
	return st
}

// Sequence returns a copy of the pose sequence the session runs.
func (c *Controller) Sequence() []domain.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Pose, len(c.plan.Poses))
	copy(out, c.plan.Poses)
	return out
}

// Fallback reports whether the sequence came from the full-pool
// fallback because no pose matched the session's terms.
func (c *Controller) Fallback() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan.Fallback
}

// play starts the clock and a fresh tick loop. Callers hold mu.
func (c *Controller) play() {
	if c.closed || len(c.plan.Poses) == 0 || c.position >= len(c.plan.Poses) {
		return
	}
	if c.clock.Running() {
		return
	}
	c.clock.Start()
	c.generation++
	go c.loop(c.generation)
}

// moveTo repositions the session and resumes playing. Callers hold mu.
func (c *Controller) moveTo(position int) {
	c.position = position
	c.clock.Reset()
	c.warned = false
	c.generation++ // retire any loop attached to the old pose
	c.play()
	c.notifier.PoseChanged(c.plan.Poses[c.position], c.position+1, len(c.plan.Poses))
}

// complete moves the position one past the end and pauses. Callers
// hold mu.
func (c *Controller) complete() {
	c.position = len(c.plan.Poses)
	c.clock.Reset()
	c.generation++
	c.notifier.SessionCompleted()
}

// loop polls the clock until its generation goes stale.
func (c *Controller) loop(gen int) {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()
	for range ticker.C {
		if !c.step(gen) {
			return
		}
	}
}

// step processes one tick and reports whether the loop should keep
// going. A stale generation or a closed controller means a dangling
// tick; it must not touch state.
func (c *Controller) step(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return false
	}
	rem := c.clock.Remaining()
	if rem > 0 {
		if !c.warned && rem <= nearZeroThreshold {
			c.warned = true
			c.notifier.CountdownNearZero(c.clock.RemainingSeconds())
		}
		return true
	}

	// Current pose expired.
	if c.position < len(c.plan.Poses)-1 {
		c.position++
		c.clock.Reset()
		c.warned = false
		c.clock.Start()
		c.notifier.PoseChanged(c.plan.Poses[c.position], c.position+1, len(c.plan.Poses))
		return true
	}
	c.complete()
	return false
}
