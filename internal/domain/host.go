package domain

import (
	"context"
	"time"
)

// Host is a person running practice sessions. There is no
// authentication; hosts exist for attribution and history only.
type Host struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// HostRepository defines the interface for host storage operations
type HostRepository interface {
	// Create creates a new host record; an empty ID gets generated
	Create(ctx context.Context, host Host) (*Host, error)

	// GetByID retrieves a host by its ID
	GetByID(ctx context.Context, id string) (*Host, error)

	// List retrieves all hosts
	List(ctx context.Context) ([]*Host, error)

	// Update replaces the stored host with the given one
	Update(ctx context.Context, host Host) (*Host, error)

	// Delete removes a host by ID
	Delete(ctx context.Context, id string) error
}
