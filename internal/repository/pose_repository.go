package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"poseloop/internal/domain"
)

// PoseRepository implements domain.PoseRepository over SQLite
type PoseRepository struct {
	db *sql.DB
}

// NewPoseRepository creates a new PoseRepository
func NewPoseRepository(db *sql.DB) *PoseRepository {
	return &PoseRepository{db: db}
}

const poseColumns = "id, image_ref, keywords, difficulty, difficulty_reason, created_at"

// Create creates a new pose record; an empty ID gets generated
func (r *PoseRepository) Create(ctx context.Context, pose domain.Pose) (*domain.Pose, error) {
	if pose.ID == "" {
		pose.ID = uuid.NewString()
	}
	if pose.CreatedAt.IsZero() {
		pose.CreatedAt = time.Now().UTC()
	}
	if !pose.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", pose.Difficulty)
	}
	keywords, err := encodeStringList(pose.Keywords)
	if err != nil {
		return nil, fmt.Errorf("while encoding keywords: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
insert into poses (id, image_ref, keywords, difficulty, difficulty_reason, created_at)
values (?, ?, ?, ?, ?, ?)`,
		pose.ID, pose.ImageRef, keywords, string(pose.Difficulty), pose.DifficultyReason, pose.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pose, nil
}

// GetByID retrieves a pose by its ID
func (r *PoseRepository) GetByID(ctx context.Context, id string) (*domain.Pose, error) {
	row := r.db.QueryRowContext(ctx, "select "+poseColumns+" from poses where id = ?", id)
	pose, err := scanPose(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return pose, nil
}

// List retrieves all poses in insertion order
func (r *PoseRepository) List(ctx context.Context) ([]*domain.Pose, error) {
	rows, err := r.db.QueryContext(ctx, "select "+poseColumns+" from poses order by rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Pose
	for rows.Next() {
		pose, err := scanPose(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, pose)
	}
	return result, rows.Err()
}

// ListByIDs retrieves the poses with the given IDs, in the order given.
// Unknown IDs are skipped.
func (r *PoseRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Pose, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"select "+poseColumns+" from poses where id in ("+placeholders+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*domain.Pose, len(ids))
	for rows.Next() {
		pose, err := scanPose(rows)
		if err != nil {
			return nil, err
		}
		byID[pose.ID] = pose
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]*domain.Pose, 0, len(ids))
	for _, id := range ids {
		if pose, ok := byID[id]; ok {
			result = append(result, pose)
		}
	}
	return result, nil
}

// Update replaces the stored pose with the given one
func (r *PoseRepository) Update(ctx context.Context, pose domain.Pose) (*domain.Pose, error) {
	if !pose.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", pose.Difficulty)
	}
	keywords, err := encodeStringList(pose.Keywords)
	if err != nil {
		return nil, fmt.Errorf("while encoding keywords: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
update poses set image_ref = ?, keywords = ?, difficulty = ?, difficulty_reason = ?
where id = ?`,
		pose.ImageRef, keywords, string(pose.Difficulty), pose.DifficultyReason, pose.ID)
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
	return r.GetByID(ctx, pose.ID)
}

// Count returns the total number of poses
func (r *PoseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "select count(*) from poses").Scan(&count)
	return count, err
}

// Delete removes a pose by ID
func (r *PoseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "delete from poses where id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPose(row rowScanner) (*domain.Pose, error) {
	var pose domain.Pose
	var keywords, difficulty string
	err := row.Scan(&pose.ID, &pose.ImageRef, &keywords, &difficulty, &pose.DifficultyReason, &pose.CreatedAt)
	if err != nil {
		return nil, err
	}
	pose.Difficulty = domain.Difficulty(difficulty)
	pose.Keywords, err = decodeStringList(keywords)
	if err != nil {
		return nil, fmt.Errorf("while decoding keywords for pose %s: %w", pose.ID, err)
	}
	return &pose, nil
}

// Verify that PoseRepository implements domain.PoseRepository
var _ domain.PoseRepository = (*PoseRepository)(nil)
