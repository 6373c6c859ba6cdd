package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// ChangeFunc is invoked after the index has absorbed a filesystem event.
type ChangeFunc func(ctx context.Context, rel string)

// Watcher keeps an on-disk Index current by listening for filesystem events.
type Watcher struct {
	index    *Index
	watcher  *fsnotify.Watcher
	logger   interfaces.Logger
	onChange ChangeFunc
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithChangeHandler registers a callback run after each absorbed event.
func WithChangeHandler(fn ChangeFunc) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithWatcherLogger attaches a logger used for structured diagnostics.
func WithWatcherLogger(logger interfaces.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher registers every non-hidden directory under the index root.
func NewWatcher(index *Index, opts ...WatcherOption) (*Watcher, error) {
	if index == nil || index.Root() == "" {
		return nil, ErrWatchUnsupported
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("vault: create watcher: %w", err)
	}

	w := &Watcher{
		index:   index,
		watcher: fsw,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addDirs(index.Root()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("vault: add directories to watcher: %w", err)
	}
	return w, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("vault.watcher.error", "error", err)
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	rel, err := filepath.Rel(w.index.Root(), event.Name)
	if err != nil {
		w.logger.Warn("vault.watcher.relative_path_failed", "path", event.Name, "error", err)
		return
	}
	rel = filepath.ToSlash(rel)
	if !w.index.includeHidden && hiddenPath(rel) {
		return
	}

	logger := logging.WithFields(w.logger, map[string]any{
		"path":  rel,
		"event": event.Op.String(),
	})

	switch {
	case event.Has(fsnotify.Create):
		if err := w.addDirs(event.Name); err != nil {
			logger.Warn("vault.watcher.add_failed", "error", err)
		}
		err = w.index.Load(ctx)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.index.evict(rel)
		err = w.index.Load(ctx)
	case event.Has(fsnotify.Write):
		err = w.index.Refresh(ctx, rel)
	default:
		return
	}
	if err != nil {
		logger.Error("vault.watcher.reindex_failed", "error", err)
		return
	}

	logger.Debug("vault.watcher.reindexed")
	if w.onChange != nil {
		w.onChange(ctx, rel)
	}
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && !w.index.includeHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func hiddenPath(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
