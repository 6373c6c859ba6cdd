package interfaces

import (
	"context"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
)

// BlockContext carries the rendering context of one fenced code block.
type BlockContext struct {
	// SectionText is the full text of the block's section, fences included.
	SectionText string
	// SourcePath is the vault relative path of the note being rendered.
	SourcePath string
}

// CodeBlockProcessor renders the raw source of a fenced code block into el.
// User-facing failures are rendered into el; the returned error is reserved
// for conditions the host must know about (cancellation, broken index).
type CodeBlockProcessor interface {
	Process(ctx context.Context, source string, el *dom.Element, bctx BlockContext) error
}

// CodeBlockProcessorFunc adapts a function into a CodeBlockProcessor.
type CodeBlockProcessorFunc func(ctx context.Context, source string, el *dom.Element, bctx BlockContext) error

// Process satisfies CodeBlockProcessor.
func (f CodeBlockProcessorFunc) Process(ctx context.Context, source string, el *dom.Element, bctx BlockContext) error {
	return f(ctx, source, el, bctx)
}
