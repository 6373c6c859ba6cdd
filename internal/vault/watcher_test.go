package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcherRequiresDiskRoot(t *testing.T) {
	if _, err := NewWatcher(NewIndex(newTestFS())); !errors.Is(err, ErrWatchUnsupported) {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestWatcherReindexesCreatedNotes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Daily-1.md"), []byte("one"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	idx, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := idx.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	changed := make(chan string, 16)
	w, err := NewWatcher(idx, WithChangeHandler(func(_ context.Context, rel string) {
		changed <- rel
	}))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	go func() {
		_ = w.Run(ctx)
	}()

	if err := os.WriteFile(filepath.Join(dir, "Daily-2.md"), []byte("two"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for {
		select {
		case rel := <-changed:
			if rel != "Daily-2.md" {
				continue
			}
			if _, ok, _ := idx.ResolveLink(ctx, "Daily-2", ""); !ok {
				t.Fatalf("expected Daily-2 to be indexed after event")
			}
			return
		case <-ctx.Done():
			t.Fatal("timed out waiting for watcher event")
		}
	}
}

func TestHiddenPath(t *testing.T) {
	if !hiddenPath(".obsidian/workspace.json") || !hiddenPath("notes/.trash/a.md") {
		t.Fatalf("expected dot segments to be hidden")
	}
	if hiddenPath("notes/a.md") {
		t.Fatalf("expected regular path to be visible")
	}
}
