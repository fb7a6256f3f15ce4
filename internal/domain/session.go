package domain

import (
	"context"
	"time"
)

// SessionRecord tracks one practice session for history purposes. The
// live countdown state is owned by the engine and never persisted.
type SessionRecord struct {
	ID                string
	HostID            string
	PoseLengthSeconds int
	PoseCount         int
	MatchTerms        []string
	StartedAt         time.Time
	CompletedAt       *time.Time
}

// SessionRepository defines the interface for session record storage
type SessionRepository interface {
	// Create creates a new session record; an empty ID gets generated
	Create(ctx context.Context, record SessionRecord) (*SessionRecord, error)

	// GetByID retrieves a session record by its ID
	GetByID(ctx context.Context, id string) (*SessionRecord, error)

	// List retrieves all session records, most recent first
	List(ctx context.Context) ([]*SessionRecord, error)

	// ListByHost retrieves session records for a host, most recent first
	ListByHost(ctx context.Context, hostID string) ([]*SessionRecord, error)

	// Complete marks a session record as finished at the given time
	Complete(ctx context.Context, id string, at time.Time) error

	// Delete removes a session record by ID
	Delete(ctx context.Context, id string) error
}
