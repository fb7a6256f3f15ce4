package practice

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if cfg.Listen != ":8080" {
			t.Errorf("expected default listen :8080, got %q", cfg.Listen)
		}
		if cfg.DatabasePath != "poseloop.db" {
			t.Errorf("expected default database path, got %q", cfg.DatabasePath)
		}
		if cfg.Meta.Title != "poseloop" {
			t.Errorf("expected default title, got %q", cfg.Meta.Title)
		}
	})

	t.Run("from yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "listen: \":9000\"\ndatabase: /tmp/test.db\nmeta:\n  title: Figure Practice\n  description: daily drawing\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if cfg.Listen != ":9000" {
			t.Errorf("expected listen :9000, got %q", cfg.Listen)
		}
		if cfg.DatabasePath != "/tmp/test.db" {
			t.Errorf("expected database path from file, got %q", cfg.DatabasePath)
		}
		if cfg.Meta.Title != "Figure Practice" {
			t.Errorf("expected title from file, got %q", cfg.Meta.Title)
		}
		if cfg.ImagesDir != "images" {
			t.Errorf("expected images dir to keep its default, got %q", cfg.ImagesDir)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("listen: \":9000\"\n"), 0o644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		t.Setenv("POSELOOP_LISTEN", ":7777")
		t.Setenv("POSELOOP_DATABASE", "override.db")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if cfg.Listen != ":7777" {
			t.Errorf("expected env to override listen, got %q", cfg.Listen)
		}
		if cfg.DatabasePath != "override.db" {
			t.Errorf("expected env to override database path, got %q", cfg.DatabasePath)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}
