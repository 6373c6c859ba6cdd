package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// HTML renders markdown with goldmark and attaches the resulting fragment to
// the target container. The renderer is stateless so a single instance can
// serve concurrent blocks.
type HTML struct {
	options interfaces.ParseOptions
}

// NewHTML constructs a goldmark backed renderer.
func NewHTML(opts interfaces.ParseOptions) *HTML {
	return &HTML{options: opts}
}

// RenderMarkdown satisfies interfaces.MarkdownRenderer.
func (r *HTML) RenderMarkdown(ctx context.Context, markdown string, container *dom.Element, sourcePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if container == nil {
		return fmt.Errorf("render: nil container")
	}

	out, err := r.Convert([]byte(markdown), sourcePath)
	if err != nil {
		return err
	}
	return container.AppendHTML(string(out))
}

// Convert renders markdown to HTML with relative links rebased on the
// directory of sourcePath.
func (r *HTML) Convert(markdown []byte, sourcePath string) ([]byte, error) {
	engine := NewEngine(r.options, sourcePath)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("render: markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

// NewEngine builds a goldmark.Markdown for the supplied options. Extra
// renderer options let hosts register node renderers of their own.
func NewEngine(opts interfaces.ParseOptions, sourcePath string, extra ...renderer.Option) goldmark.Markdown {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(util.Prioritized(newLinkRebaser(sourcePath), 500)),
	}

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	rendererOptions = append(rendererOptions, extra...)

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

var _ interfaces.MarkdownRenderer = (*HTML)(nil)
