package engine

import "time"

// SessionType selects how the length of a session is expressed: a
// fixed number of poses, or a total duration from which the pose count
// is derived.
type SessionType string

const (
	SessionByCount    SessionType = "count"
	SessionByDuration SessionType = "duration"
)

// Bounds enforced at the intake boundary. The engine itself accepts
// any positive values; Normalized clamps into these ranges.
const (
	MinPoseLengthSeconds = 5
	MaxPoseLengthSeconds = 1800
	MinPoseCount         = 1
	MaxPoseCount         = 100
	MinSessionMinutes    = 1
	MaxSessionMinutes    = 360
)

// Config is the immutable configuration of one session. Changing any
// of it means constructing a new session.
type Config struct {
	PoseLengthSeconds      int
	SessionType            SessionType
	PoseCount              int
	SessionDurationMinutes int
	MatchTerms             []string
	Randomize              bool
	AudioRef               string
}

// Normalized returns a copy with out-of-range values clamped into the
// documented bounds. Boundary values degrade instead of failing.
func (c Config) Normalized() Config {
	c.PoseLengthSeconds = clamp(c.PoseLengthSeconds, MinPoseLengthSeconds, MaxPoseLengthSeconds)
	if c.SessionType == "" {
		c.SessionType = SessionByCount
	}
	switch c.SessionType {
	case SessionByDuration:
		c.SessionDurationMinutes = clamp(c.SessionDurationMinutes, MinSessionMinutes, MaxSessionMinutes)
	default:
		c.PoseCount = clamp(c.PoseCount, MinPoseCount, MaxPoseCount)
	}
	return c
}

// TargetCount returns the number of poses the session should contain.
// For duration sessions this is floor(totalSeconds / poseLength) with a
// minimum of one pose.
func (c Config) TargetCount() int {
	if c.SessionType == SessionByDuration {
		if c.PoseLengthSeconds <= 0 {
			return MinPoseCount
		}
		n := (c.SessionDurationMinutes * 60) / c.PoseLengthSeconds
		if n < 1 {
			n = 1
		}
		return n
	}
	return c.PoseCount
}

// PoseLength returns the per-pose countdown duration.
func (c Config) PoseLength() time.Duration {
	return time.Duration(c.PoseLengthSeconds) * time.Second
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
