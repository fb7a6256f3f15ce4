package repository

import (
	"context"
	"testing"
	"time"

	"poseloop/internal/domain"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	ctx := context.Background()

	t.Run("creates session record", func(t *testing.T) {
		record, err := repo.Create(ctx, domain.SessionRecord{
			HostID:            "host-1",
			PoseLengthSeconds: 60,
			PoseCount:         10,
			MatchTerms:        []string{"standing", "gesture"},
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if record.ID == "" {
			t.Error("Expected generated ID")
		}
		if record.StartedAt.IsZero() {
			t.Error("StartedAt should not be zero")
		}
		if record.CompletedAt != nil {
			t.Error("CompletedAt should be nil on creation")
		}

		got, err := repo.GetByID(ctx, record.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("Expected record, got nil")
		}
		if got.PoseLengthSeconds != 60 || got.PoseCount != 10 {
			t.Errorf("Config = %d/%d, want 60/10", got.PoseLengthSeconds, got.PoseCount)
		}
		if len(got.MatchTerms) != 2 {
			t.Errorf("MatchTerms = %v, want 2 entries", got.MatchTerms)
		}
	})

	t.Run("returns nil for non-existent record", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "ghost")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got != nil {
			t.Error("Expected nil for non-existent record")
		}
	})
}

func TestSessionRepository_Complete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	ctx := context.Background()

	record, err := repo.Create(ctx, domain.SessionRecord{PoseLengthSeconds: 30, PoseCount: 5})
	if err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}

	t.Run("marks session as completed", func(t *testing.T) {
		at := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)
		if err := repo.Complete(ctx, record.ID, at); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		got, err := repo.GetByID(ctx, record.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.CompletedAt == nil {
			t.Fatal("CompletedAt should be set")
		}
		if !got.CompletedAt.Equal(at) {
			t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, at)
		}
	})

	t.Run("errors for non-existent record", func(t *testing.T) {
		if err := repo.Complete(ctx, "ghost", time.Now()); err == nil {
			t.Error("Expected error for non-existent record")
		}
	})
}

func TestSessionRepository_ListByHost(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		hostID := "alice"
		if i == 1 {
			hostID = "bob"
		}
		_, err := repo.Create(ctx, domain.SessionRecord{
			HostID:            hostID,
			PoseLengthSeconds: 30,
			PoseCount:         5,
			StartedAt:         base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Failed to create test record: %v", err)
		}
	}

	t.Run("filters by host most recent first", func(t *testing.T) {
		records, err := repo.ListByHost(ctx, "alice")
		if err != nil {
			t.Fatalf("ListByHost() error = %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("len = %v, want 2", len(records))
		}
		if !records[0].StartedAt.After(records[1].StartedAt) {
			t.Error("Expected most recent session first")
		}
	})

	t.Run("lists all sessions", func(t *testing.T) {
		records, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(records) != 3 {
			t.Errorf("len = %v, want 3", len(records))
		}
	})
}

func TestSessionRepository_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewSessionRepository(db)
	ctx := context.Background()

	record, err := repo.Create(ctx, domain.SessionRecord{PoseLengthSeconds: 30, PoseCount: 5})
	if err != nil {
		t.Fatalf("Failed to create test record: %v", err)
	}

	if err := repo.Delete(ctx, record.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("Expected record to be deleted")
	}
}
