package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

const (
	defaultCacheCapacity = 1000
	defaultCacheShards   = 10
	defaultCacheTTL      = time.Minute
	cacheEvictionPercent = 10
)

// Index is an in-memory view of a vault directory. Descriptors are built by
// Load and kept in walk order, which is the index's native order.
type Index struct {
	fsys          fs.FS
	root          string
	includeHidden bool
	logger        interfaces.Logger
	cache         *sturdyc.Client[string]

	mu     sync.RWMutex
	files  []interfaces.FileDescriptor
	loaded bool
}

// Option configures an Index.
type Option func(*Index)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Index) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithHidden includes dot-prefixed files and directories in the index.
func WithHidden(include bool) Option {
	return func(i *Index) {
		i.includeHidden = include
	}
}

// WithReadCache enables cached reads. Non-positive values fall back to defaults.
func WithReadCache(capacity int, ttl time.Duration) Option {
	return func(i *Index) {
		if capacity <= 0 {
			capacity = defaultCacheCapacity
		}
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		i.cache = sturdyc.New[string](capacity, defaultCacheShards, ttl, cacheEvictionPercent)
	}
}

// NewIndex constructs an index over fsys. Reads bypass the cache unless
// WithReadCache is supplied.
func NewIndex(fsys fs.FS, opts ...Option) *Index {
	idx := &Index{
		fsys:   fsys,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Open builds an index rooted at a directory on disk.
func Open(root string, opts ...Option) (*Index, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrRootRequired
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	idx := NewIndex(os.DirFS(root), opts...)
	idx.root = filepath.Clean(root)
	return idx, nil
}

// Root returns the on-disk root, empty for indexes built over an arbitrary fs.FS.
func (i *Index) Root() string {
	return i.root
}

// Load walks the filesystem and replaces the descriptor list.
func (i *Index) Load(ctx context.Context) error {
	var files []interfaces.FileDescriptor

	err := fs.WalkDir(i.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != "." && !i.includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("vault: stat %s: %w", p, err)
		}
		files = append(files, i.describe(p, info))
		return nil
	})
	if err != nil {
		return fmt.Errorf("vault: load: %w", err)
	}

	i.mu.Lock()
	i.files = files
	i.loaded = true
	i.mu.Unlock()

	i.logger.Debug("vault.index.loaded", "files", len(files))
	return nil
}

// Files returns a copy of the descriptors in native order, loading the index
// on first use.
func (i *Index) Files(ctx context.Context) ([]interfaces.FileDescriptor, error) {
	if err := i.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]interfaces.FileDescriptor(nil), i.files...), nil
}

// Read returns the current file content, bypassing the cache.
func (i *Index) Read(ctx context.Context, file interfaces.FileDescriptor) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(i.fsys, file.Path)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", file.Path, err)
	}
	return string(data), nil
}

// CachedRead returns the file content through the read cache. Entries are
// keyed by path and modification time so a refreshed descriptor misses.
func (i *Index) CachedRead(ctx context.Context, file interfaces.FileDescriptor) (string, error) {
	if i.cache == nil {
		return i.Read(ctx, file)
	}
	return i.cache.GetOrFetch(ctx, cacheKey(file), func(ctx context.Context) (string, error) {
		return i.Read(ctx, file)
	})
}

// Refresh re-stats a single path after a write, updating its descriptor and
// evicting its cached content. Unknown or deleted paths trigger a full reload.
func (i *Index) Refresh(ctx context.Context, rel string) error {
	rel = path.Clean(filepath.ToSlash(rel))

	info, err := fs.Stat(i.fsys, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.evict(rel)
			return i.Load(ctx)
		}
		return fmt.Errorf("vault: stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return i.Load(ctx)
	}

	updated := i.describe(rel, info)

	i.mu.Lock()
	found := false
	for idx, f := range i.files {
		if f.Path == rel {
			i.evictLocked(f)
			i.files[idx] = updated
			found = true
			break
		}
	}
	i.mu.Unlock()

	if !found {
		return i.Load(ctx)
	}
	return nil
}

func (i *Index) evict(rel string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, f := range i.files {
		if f.Path == rel {
			i.evictLocked(f)
		}
	}
}

func (i *Index) evictLocked(file interfaces.FileDescriptor) {
	if i.cache != nil {
		i.cache.Delete(cacheKey(file))
	}
}

func (i *Index) ensureLoaded(ctx context.Context) error {
	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if loaded {
		return nil
	}
	return i.Load(ctx)
}

func (i *Index) describe(p string, info fs.FileInfo) interfaces.FileDescriptor {
	name := path.Base(p)
	ext := path.Ext(name)
	created, modified := fileTimes(i.diskPath(p), info)
	return interfaces.FileDescriptor{
		Path:      p,
		Name:      name,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.TrimPrefix(ext, "."),
		Created:   created,
		Modified:  modified,
		Size:      info.Size(),
	}
}

// diskPath maps an index path onto the on-disk root, empty when the index is
// not backed by a directory.
func (i *Index) diskPath(p string) string {
	if i.root == "" {
		return ""
	}
	return filepath.Join(i.root, filepath.FromSlash(p))
}

func cacheKey(file interfaces.FileDescriptor) string {
	return fmt.Sprintf("vault:%s:%d", file.Path, file.Modified.UnixNano())
}

var _ interfaces.ContentIndex = (*Index)(nil)
