package domain

import (
	"context"
	"time"
)

// BlogPost is an announcement or article; the body is markdown.
type BlogPost struct {
	ID          string
	Slug        string
	Title       string
	Body        string
	PublishedAt time.Time
}

// BlogRepository defines the interface for blog post storage operations
type BlogRepository interface {
	// Create creates a new blog post; an empty ID gets generated
	Create(ctx context.Context, post BlogPost) (*BlogPost, error)

	// GetByID retrieves a post by its ID
	GetByID(ctx context.Context, id string) (*BlogPost, error)

	// GetBySlug retrieves a post by its slug
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)

	// List retrieves all posts, most recent first
	List(ctx context.Context) ([]*BlogPost, error)

	// Update replaces the stored post with the given one
	Update(ctx context.Context, post BlogPost) (*BlogPost, error)

	// Delete removes a post by ID
	Delete(ctx context.Context, id string) error
}
