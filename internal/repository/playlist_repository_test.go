package repository

import (
	"context"
	"testing"

	"poseloop/internal/domain"
)

func TestPlaylistRepository_RoundTrip(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Playlist{
		Name:    "Warmups",
		PoseIDs: []string{"p1", "p2", "p3"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Expected generated ID")
	}

	t.Run("preserves pose order", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("Expected playlist, got nil")
		}
		want := []string{"p1", "p2", "p3"}
		for i, id := range want {
			if got.PoseIDs[i] != id {
				t.Errorf("PoseIDs[%d] = %v, want %v", i, got.PoseIDs[i], id)
			}
		}
	})

	t.Run("updates membership", func(t *testing.T) {
		created.PoseIDs = []string{"p3", "p1"}
		updated, err := repo.Update(ctx, *created)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if len(updated.PoseIDs) != 2 || updated.PoseIDs[0] != "p3" {
			t.Errorf("PoseIDs = %v, want [p3 p1]", updated.PoseIDs)
		}
	})

	t.Run("deletes playlist", func(t *testing.T) {
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got != nil {
			t.Error("Expected playlist to be deleted")
		}
	})
}

func TestHostRepository_RoundTrip(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewHostRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Host{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("retrieves host", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got == nil || got.Name != "Alice" {
			t.Errorf("got = %v, want Alice", got)
		}
	})

	t.Run("updates host", func(t *testing.T) {
		created.Name = "Alice B."
		updated, err := repo.Update(ctx, *created)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated == nil || updated.Name != "Alice B." {
			t.Errorf("got = %v, want Alice B.", updated)
		}
	})

	t.Run("lists hosts", func(t *testing.T) {
		hosts, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(hosts) != 1 {
			t.Errorf("len = %v, want 1", len(hosts))
		}
	})

	t.Run("deletes host", func(t *testing.T) {
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got != nil {
			t.Error("Expected host to be deleted")
		}
	})
}
