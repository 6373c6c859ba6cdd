package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// Source attaches markdown to the container verbatim as a text node. Hosts
// that emit markdown or terminal output use it to collect the resolved text.
type Source struct{}

// NewSource returns the passthrough renderer.
func NewSource() Source {
	return Source{}
}

// RenderMarkdown satisfies interfaces.MarkdownRenderer.
func (Source) RenderMarkdown(ctx context.Context, markdown string, container *dom.Element, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if container == nil {
		return fmt.Errorf("render: nil container")
	}
	container.AppendText(markdown)
	return nil
}

var _ interfaces.MarkdownRenderer = Source{}
