package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"poseloop/internal/domain"
)

// PlaylistRepository implements domain.PlaylistRepository over SQLite
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create creates a new playlist; an empty ID gets generated
func (r *PlaylistRepository) Create(ctx context.Context, playlist domain.Playlist) (*domain.Playlist, error) {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now().UTC()
	}
	poseIDs, err := encodeStringList(playlist.PoseIDs)
	if err != nil {
		return nil, fmt.Errorf("while encoding pose ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
insert into playlists (id, name, pose_ids, created_at) values (?, ?, ?, ?)`,
		playlist.ID, playlist.Name, poseIDs, playlist.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetByID retrieves a playlist by its ID
func (r *PlaylistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	row := r.db.QueryRowContext(ctx,
		"select id, name, pose_ids, created_at from playlists where id = ?", id)
	playlist, err := scanPlaylist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return playlist, nil
}

// List retrieves all playlists
func (r *PlaylistRepository) List(ctx context.Context) ([]*domain.Playlist, error) {
	rows, err := r.db.QueryContext(ctx,
		"select id, name, pose_ids, created_at from playlists order by rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, playlist)
	}
	return result, rows.Err()
}

// Update replaces the stored playlist with the given one
func (r *PlaylistRepository) Update(ctx context.Context, playlist domain.Playlist) (*domain.Playlist, error) {
	poseIDs, err := encodeStringList(playlist.PoseIDs)
	if err != nil {
		return nil, fmt.Errorf("while encoding pose ids: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		"update playlists set name = ?, pose_ids = ? where id = ?",
		playlist.Name, poseIDs, playlist.ID)
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
	return r.GetByID(ctx, playlist.ID)
}

// Delete removes a playlist by ID
func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "delete from playlists where id = ?", id)
	return err
}

func scanPlaylist(row rowScanner) (*domain.Playlist, error) {
	var playlist domain.Playlist
	var poseIDs string
	err := row.Scan(&playlist.ID, &playlist.Name, &poseIDs, &playlist.CreatedAt)
	if err != nil {
		return nil, err
	}
	playlist.PoseIDs, err = decodeStringList(poseIDs)
	if err != nil {
		return nil, fmt.Errorf("while decoding pose ids for playlist %s: %w", playlist.ID, err)
	}
	return &playlist, nil
}

// Verify that PlaylistRepository implements domain.PlaylistRepository
var _ domain.PlaylistRepository = (*PlaylistRepository)(nil)
