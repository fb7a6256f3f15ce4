package domain

import (
	"context"
	"time"
)

// Difficulty classifies a pose for filtering and display. The value is
// supplied by an external analysis step; the engine treats it as opaque.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty classes.
// The empty string means "not classified" and is also acceptable.
func (d Difficulty) Valid() bool {
	switch d {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Pose is a reference image in the practice library
type Pose struct {
	ID               string
	ImageRef         string
	Keywords         []string
	Difficulty       Difficulty
	DifficultyReason string
	CreatedAt        time.Time
}

// PoseRepository defines the interface for pose storage operations
type PoseRepository interface {
	// Create creates a new pose record; an empty ID gets generated
	Create(ctx context.Context, pose Pose) (*Pose, error)

	// GetByID retrieves a pose by its ID
	GetByID(ctx context.Context, id string) (*Pose, error)

	// List retrieves all poses in insertion order
	List(ctx context.Context) ([]*Pose, error)

	// ListByIDs retrieves the poses with the given IDs, in the order given
	ListByIDs(ctx context.Context, ids []string) ([]*Pose, error)

	// Update replaces the stored pose with the given one
	Update(ctx context.Context, pose Pose) (*Pose, error)

	// Count returns the total number of poses
	Count(ctx context.Context) (int64, error)

	// Delete removes a pose by ID
	Delete(ctx context.Context, id string) error
}
