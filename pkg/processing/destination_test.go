package processing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrepareDestination(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		if err := PrepareDestination(dir, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory, got %v", err)
		}
	})

	t.Run("keeps existing content", func(t *testing.T) {
		dir := t.TempDir()
		keep := filepath.Join(dir, "keep.txt")
		if err := os.WriteFile(keep, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := PrepareDestination(dir, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(keep); err != nil {
			t.Error("existing file should be kept")
		}
	})

	t.Run("overwrite cleans directory", func(t *testing.T) {
		dir := t.TempDir()
		stale := filepath.Join(dir, "stale.txt")
		if err := os.WriteFile(stale, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := PrepareDestination(dir, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(stale); !os.IsNotExist(err) {
			t.Error("stale file should be removed")
		}
		if _, err := os.Stat(dir); err != nil {
			t.Error("directory should be recreated")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if err := PrepareDestination("", false); err == nil {
			t.Fatal("expected error for empty destination")
		}
	})
}
