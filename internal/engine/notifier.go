package engine

import "poseloop/internal/domain"

// Notifier receives session transition events: pose changes, the
// countdown approaching zero, and session completion. It replaces the
// ad hoc global sound helpers of earlier designs with an injected
// capability so it can be swapped or faked in tests.
//
// Callbacks run on the Controller's tick goroutine (or on the caller's
// goroutine for manual navigation) while the Controller lock is held;
// implementations should return quickly and must not call back into
// the Controller.
type Notifier interface {
	// PoseChanged fires whenever a new pose becomes current, whether by
	// expiry, manual navigation, or restart. Position is 1-based.
	PoseChanged(pose domain.Pose, position, total int)

	// CountdownNearZero fires once per pose, the first time the
	// remaining time is observed at or below the warning threshold
	// while playing.
	CountdownNearZero(remainingSeconds int)

	// SessionCompleted fires when the last pose finishes or is skipped
	// past.
	SessionCompleted()
}

// NopNotifier ignores all events.
type NopNotifier struct{}

func (NopNotifier) PoseChanged(domain.Pose, int, int) {}
func (NopNotifier) CountdownNearZero(int)             {}
func (NopNotifier) SessionCompleted()                 {}
