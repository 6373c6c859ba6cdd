package interfaces

import (
	"context"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
)

// MarkdownRenderer turns markdown text into a visual tree attached to
// container. sourcePath is the note that owns the rendered text and is used to
// resolve relative links.
type MarkdownRenderer interface {
	RenderMarkdown(ctx context.Context, markdown string, container *dom.Element, sourcePath string) error
}

// ParseOptions customises markdown rendering, keeping option names readable
// for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
