package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"poseloop/internal/domain"
)

// HostRepository implements domain.HostRepository over SQLite
type HostRepository struct {
	db *sql.DB
}

// NewHostRepository creates a new HostRepository
func NewHostRepository(db *sql.DB) *HostRepository {
	return &HostRepository{db: db}
}

// Create creates a new host record; an empty ID gets generated
func (r *HostRepository) Create(ctx context.Context, host domain.Host) (*domain.Host, error) {
	if host.ID == "" {
		host.ID = uuid.NewString()
	}
	if host.CreatedAt.IsZero() {
		host.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
insert into hosts (id, name, email, created_at) values (?, ?, ?, ?)`,
		host.ID, host.Name, host.Email, host.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// GetByID retrieves a host by its ID
func (r *HostRepository) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	var host domain.Host
	err := r.db.QueryRowContext(ctx,
		"select id, name, email, created_at from hosts where id = ?", id).
		Scan(&host.ID, &host.Name, &host.Email, &host.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &host, nil
}

// List retrieves all hosts
func (r *HostRepository) List(ctx context.Context) ([]*domain.Host, error) {
	rows, err := r.db.QueryContext(ctx, "select id, name, email, created_at from hosts order by rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Host
	for rows.Next() {
		var host domain.Host
		if err := rows.Scan(&host.ID, &host.Name, &host.Email, &host.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &host)
	}
	return result, rows.Err()
}

// Update replaces the stored host with the given one
func (r *HostRepository) Update(ctx context.Context, host domain.Host) (*domain.Host, error) {
	res, err := r.db.ExecContext(ctx,
		"update hosts set name = ?, email = ? where id = ?", host.Name, host.Email, host.ID)
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
	return r.GetByID(ctx, host.ID)
}

// Delete removes a host by ID
func (r *HostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "delete from hosts where id = ?", id)
	return err
}

// Verify that HostRepository implements domain.HostRepository
var _ domain.HostRepository = (*HostRepository)(nil)
