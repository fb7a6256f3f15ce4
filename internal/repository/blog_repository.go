package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"poseloop/internal/domain"
)

// BlogRepository implements domain.BlogRepository over SQLite
type BlogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = "id, slug, title, body, published_at"

// Create creates a new blog post; an empty ID gets generated
func (r *BlogRepository) Create(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.PublishedAt.IsZero() {
		post.PublishedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
insert into blog_posts (id, slug, title, body, published_at) values (?, ?, ?, ?, ?)`,
		post.ID, post.Slug, post.Title, post.Body, post.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByID retrieves a post by its ID
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return r.get(ctx, "select "+blogColumns+" from blog_posts where id = ?", id)
}

// GetBySlug retrieves a post by its slug
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return r.get(ctx, "select "+blogColumns+" from blog_posts where slug = ?", slug)
}

func (r *BlogRepository) get(ctx context.Context, query string, arg any) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&post.ID, &post.Slug, &post.Title, &post.Body, &post.PublishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts, most recent first
func (r *BlogRepository) List(ctx context.Context) ([]*domain.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		"select "+blogColumns+" from blog_posts order by published_at desc, rowid desc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BlogPost
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.Body, &post.PublishedAt); err != nil {
			return nil, err
		}
		result = append(result, &post)
	}
	return result, rows.Err()
}

// Update replaces the stored post with the given one
func (r *BlogRepository) Update(ctx context.Context, post domain.BlogPost) (*domain.BlogPost, error) {
	res, err := r.db.ExecContext(ctx,
		"update blog_posts set slug = ?, title = ?, body = ? where id = ?",
		post.Slug, post.Title, post.Body, post.ID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, post.ID)
}

// Delete removes a post by ID
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "delete from blog_posts where id = ?", id)
	return err
}

// Verify that BlogRepository implements domain.BlogRepository
var _ domain.BlogRepository = (*BlogRepository)(nil)
