package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"poseloop/internal/domain"
)

// SessionRepository implements domain.SessionRepository over SQLite
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, host_id, pose_length_seconds, pose_count, match_terms, started_at, completed_at"

// Create creates a new session record; an empty ID gets generated
func (r *SessionRepository) Create(ctx context.Context, record domain.SessionRecord) (*domain.SessionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now().UTC()
	}
	terms, err := encodeStringList(record.MatchTerms)
	if err != nil {
		return nil, fmt.Errorf("while encoding match terms: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
insert into sessions (id, host_id, pose_length_seconds, pose_count, match_terms, started_at)
values (?, ?, ?, ?, ?, ?)`,
		record.ID, record.HostID, record.PoseLengthSeconds, record.PoseCount, terms, record.StartedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByID retrieves a session record by its ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, "select "+sessionColumns+" from sessions where id = ?", id)
	record, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// List retrieves all session records, most recent first
func (r *SessionRepository) List(ctx context.Context) ([]*domain.SessionRecord, error) {
	return r.list(ctx, "select "+sessionColumns+" from sessions order by started_at desc, rowid desc")
}

// ListByHost retrieves session records for a host, most recent first
func (r *SessionRepository) ListByHost(ctx context.Context, hostID string) ([]*domain.SessionRecord, error) {
	return r.list(ctx,
		"select "+sessionColumns+" from sessions where host_id = ? order by started_at desc, rowid desc", hostID)
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Complete marks a session record as finished at the given time
func (r *SessionRepository) Complete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, "update sessions set completed_at = ? where id = ?", at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// Delete removes a session record by ID
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "delete from sessions where id = ?", id)
	return err
}

func scanSession(row rowScanner) (*domain.SessionRecord, error) {
	var record domain.SessionRecord
	var terms string
	var completed sql.NullTime
	err := row.Scan(&record.ID, &record.HostID, &record.PoseLengthSeconds, &record.PoseCount,
		&terms, &record.StartedAt, &completed)
	if err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		record.CompletedAt = &t
	}
	record.MatchTerms, err = decodeStringList(terms)
	if err != nil {
		return nil, fmt.Errorf("while decoding match terms for session %s: %w", record.ID, err)
	}
	return &record, nil
}

// Verify that SessionRepository implements domain.SessionRepository
var _ domain.SessionRepository = (*SessionRepository)(nil)
