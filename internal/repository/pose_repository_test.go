package repository

import (
	"context"
	"testing"

	"poseloop/internal/domain"
)

func TestPoseRepository_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	t.Run("creates pose successfully", func(t *testing.T) {
		pose, err := repo.Create(ctx, domain.Pose{
			ImageRef:         "abc123.png",
			Keywords:         []string{"standing", "dynamic"},
			Difficulty:       domain.DifficultyMedium,
			DifficultyReason: "twisting torso",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if pose.ID == "" {
			t.Error("Expected generated ID")
		}
		if pose.ImageRef != "abc123.png" {
			t.Errorf("ImageRef = %v, want %v", pose.ImageRef, "abc123.png")
		}
		if len(pose.Keywords) != 2 {
			t.Errorf("Keywords = %v, want 2 entries", pose.Keywords)
		}
		if pose.CreatedAt.IsZero() {
			t.Error("CreatedAt should not be zero")
		}
	})

	t.Run("creates pose without keywords or difficulty", func(t *testing.T) {
		pose, err := repo.Create(ctx, domain.Pose{ImageRef: "bare.png"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		got, err := repo.GetByID(ctx, pose.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if len(got.Keywords) != 0 {
			t.Errorf("Keywords = %v, want empty", got.Keywords)
		}
		if got.Difficulty != "" {
			t.Errorf("Difficulty = %v, want empty", got.Difficulty)
		}
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.Pose{ImageRef: "x.png", Difficulty: "impossible"})
		if err == nil {
			t.Error("Expected error for unknown difficulty")
		}
	})

	t.Run("fails on duplicate id", func(t *testing.T) {
		created, err := repo.Create(ctx, domain.Pose{ImageRef: "dup.png"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		_, err = repo.Create(ctx, domain.Pose{ID: created.ID, ImageRef: "dup2.png"})
		if err == nil {
			t.Error("Expected error for duplicate id")
		}
	})
}

func TestPoseRepository_GetByID(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Pose{
		ImageRef: "test.png",
		Keywords: []string{"sitting"},
	})
	if err != nil {
		t.Fatalf("Failed to create test pose: %v", err)
	}

	t.Run("retrieves existing pose", func(t *testing.T) {
		pose, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}

		if pose == nil {
			t.Fatal("Expected pose, got nil")
		}
		if pose.ID != created.ID {
			t.Errorf("ID = %v, want %v", pose.ID, created.ID)
		}
		if len(pose.Keywords) != 1 || pose.Keywords[0] != "sitting" {
			t.Errorf("Keywords = %v, want [sitting]", pose.Keywords)
		}
	})

	t.Run("returns nil for non-existent pose", func(t *testing.T) {
		pose, err := repo.GetByID(ctx, "no-such-id")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if pose != nil {
			t.Error("Expected nil for non-existent pose")
		}
	})
}

func TestPoseRepository_List(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	refs := []string{"a.png", "b.png", "c.png"}
	for _, ref := range refs {
		if _, err := repo.Create(ctx, domain.Pose{ImageRef: ref}); err != nil {
			t.Fatalf("Failed to create test pose: %v", err)
		}
	}

	t.Run("lists poses in insertion order", func(t *testing.T) {
		poses, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		if len(poses) != 3 {
			t.Fatalf("len = %v, want 3", len(poses))
		}
		for i, ref := range refs {
			if poses[i].ImageRef != ref {
				t.Errorf("poses[%d].ImageRef = %v, want %v", i, poses[i].ImageRef, ref)
			}
		}
	})

	t.Run("count matches", func(t *testing.T) {
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 3 {
			t.Errorf("Count = %v, want 3", count)
		}
	})
}

func TestPoseRepository_ListByIDs(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	var created []*domain.Pose
	for _, ref := range []string{"a.png", "b.png", "c.png"} {
		pose, err := repo.Create(ctx, domain.Pose{ImageRef: ref})
		if err != nil {
			t.Fatalf("Failed to create test pose: %v", err)
		}
		created = append(created, pose)
	}

	t.Run("returns poses in the requested order", func(t *testing.T) {
		poses, err := repo.ListByIDs(ctx, []string{created[2].ID, created[0].ID})
		if err != nil {
			t.Fatalf("ListByIDs() error = %v", err)
		}

		if len(poses) != 2 {
			t.Fatalf("len = %v, want 2", len(poses))
		}
		if poses[0].ID != created[2].ID || poses[1].ID != created[0].ID {
			t.Error("Order should follow the requested IDs")
		}
	})

	t.Run("skips unknown ids", func(t *testing.T) {
		poses, err := repo.ListByIDs(ctx, []string{created[1].ID, "ghost"})
		if err != nil {
			t.Fatalf("ListByIDs() error = %v", err)
		}
		if len(poses) != 1 {
			t.Errorf("len = %v, want 1", len(poses))
		}
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		poses, err := repo.ListByIDs(ctx, nil)
		if err != nil {
			t.Fatalf("ListByIDs() error = %v", err)
		}
		if len(poses) != 0 {
			t.Errorf("len = %v, want 0", len(poses))
		}
	})
}

func TestPoseRepository_Update(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Pose{ImageRef: "before.png"})
	if err != nil {
		t.Fatalf("Failed to create test pose: %v", err)
	}

	t.Run("updates existing pose", func(t *testing.T) {
		created.ImageRef = "after.png"
		created.Keywords = []string{"reclining"}
		created.Difficulty = domain.DifficultyHard

		updated, err := repo.Update(ctx, *created)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if updated == nil {
			t.Fatal("Expected pose, got nil")
		}
		if updated.ImageRef != "after.png" {
			t.Errorf("ImageRef = %v, want after.png", updated.ImageRef)
		}
		if updated.Difficulty != domain.DifficultyHard {
			t.Errorf("Difficulty = %v, want hard", updated.Difficulty)
		}
	})

	t.Run("returns nil for non-existent pose", func(t *testing.T) {
		updated, err := repo.Update(ctx, domain.Pose{ID: "ghost", ImageRef: "x.png"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated != nil {
			t.Error("Expected nil for non-existent pose")
		}
	})
}

func TestPoseRepository_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := NewPoseRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Pose{ImageRef: "gone.png"})
	if err != nil {
		t.Fatalf("Failed to create test pose: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	pose, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if pose != nil {
		t.Error("Expected pose to be deleted")
	}
}
