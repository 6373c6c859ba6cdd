package interfaces

import (
	"context"
	"time"
)

// MarkdownExtension is the extension, without the dot, of documents that can
// be embedded.
const MarkdownExtension = "md"

// FileDescriptor describes a single entry of the content index. Descriptors
// are owned by the index; consumers treat them as read-only values.
type FileDescriptor struct {
	// Path is the slash separated path relative to the vault root.
	Path string
	// Name is the base name including extension (e.g. "Daily-1.md").
	Name string
	// Basename is Name without its extension.
	Basename string
	// Extension is the extension without the leading dot, case preserved.
	Extension string
	Created   time.Time
	Modified  time.Time
	Size      int64
}

// IsMarkdown reports whether the descriptor points at a markdown document.
func (f FileDescriptor) IsMarkdown() bool {
	return f.Extension == MarkdownExtension
}

// ContentIndex is the read-only view of the vault consumed by the embed
// processor. Implementations must be safe for concurrent use.
type ContentIndex interface {
	// ResolveLink returns the first file matching link using link-path
	// semantics. sourcePath scopes tie-breaking; an empty value means the
	// whole vault. ok is false when nothing matches.
	ResolveLink(ctx context.Context, link, sourcePath string) (file FileDescriptor, ok bool, err error)
	// Files enumerates every known file in the index's native order.
	Files(ctx context.Context) ([]FileDescriptor, error)
	// CachedRead returns the file content, possibly from a cache whose
	// staleness is bounded by the index's own policy.
	CachedRead(ctx context.Context, file FileDescriptor) (string, error)
}
