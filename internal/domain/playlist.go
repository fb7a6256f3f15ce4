package domain

import (
	"context"
	"time"
)

// Playlist is a hand-curated ordered subset of the pose library that
// can be used as the pool for a session instead of the whole library.
type Playlist struct {
	ID        string
	Name      string
	PoseIDs   []string
	CreatedAt time.Time
}

// PlaylistRepository defines the interface for playlist storage operations
type PlaylistRepository interface {
	// Create creates a new playlist; an empty ID gets generated
	Create(ctx context.Context, playlist Playlist) (*Playlist, error)

	// GetByID retrieves a playlist by its ID
	GetByID(ctx context.Context, id string) (*Playlist, error)

	// List retrieves all playlists
	List(ctx context.Context) ([]*Playlist, error)

	// Update replaces the stored playlist with the given one
	Update(ctx context.Context, playlist Playlist) (*Playlist, error)

	// Delete removes a playlist by ID
	Delete(ctx context.Context, id string) error
}
