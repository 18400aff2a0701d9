package favorites

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "favorites.db")
	if err := os.WriteFile(dbPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(dbPath, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(dbPath, []byte("xy"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher never fired")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "favorites.db")
	if err := os.WriteFile(dbPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(dbPath, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}

	select {
	case <-changed:
		t.Fatalf("watcher fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
