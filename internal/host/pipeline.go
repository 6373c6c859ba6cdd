package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/internal/render"
	"github.com/goliatone/go-dynamic-embed/pkg/dom"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

const (
	defaultConcurrency   = 4
	defaultWidth         = 80
	defaultTerminalStyle = "auto"
)

// Pipeline renders notes, handing every registered fenced block to its
// processor and splicing the results back into the document.
type Pipeline struct {
	index       interfaces.ContentIndex
	registry    *Registry
	format      Format
	options     interfaces.ParseOptions
	width       int
	style       string
	concurrency int
	logger      interfaces.Logger
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFormat selects the output format.
func WithFormat(format Format) PipelineOption {
	return func(p *Pipeline) {
		if format != "" {
			p.format = format
		}
	}
}

// WithParseOptions configures the goldmark engine used for html output.
func WithParseOptions(opts interfaces.ParseOptions) PipelineOption {
	return func(p *Pipeline) {
		p.options = opts
	}
}

// WithWidth sets the word wrap width of terminal output.
func WithWidth(width int) PipelineOption {
	return func(p *Pipeline) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithTerminalStyle selects a glamour standard style. "auto" detects the
// terminal background.
func WithTerminalStyle(style string) PipelineOption {
	return func(p *Pipeline) {
		if style = strings.TrimSpace(style); style != "" {
			p.style = style
		}
	}
}

// WithConcurrency bounds the number of blocks processed at once.
func WithConcurrency(limit int) PipelineOption {
	return func(p *Pipeline) {
		if limit > 0 {
			p.concurrency = limit
		}
	}
}

// NewPipeline constructs a pipeline reading notes from index.
func NewPipeline(index interfaces.ContentIndex, registry *Registry, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		index:       index,
		registry:    registry,
		format:      FormatHTML,
		width:       defaultWidth,
		style:       defaultTerminalStyle,
		concurrency: defaultConcurrency,
		logger:      logging.NoOp(),
	}
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format reports the output format of the pipeline.
func (p *Pipeline) Format() Format {
	return p.format
}

// Registry exposes the processor registry.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Result is the outcome of rendering one note.
type Result struct {
	Path        string
	Format      Format
	Output      string
	FrontMatter map[string]any
	Blocks      []*BlockResult
	// Failures counts blocks that displayed an error instead of content.
	Failures int
}

// RenderNote resolves notePath through the index and renders it.
func (p *Pipeline) RenderNote(ctx context.Context, notePath string) (*Result, error) {
	if p.index == nil {
		return nil, fmt.Errorf("host: pipeline has no content index")
	}
	file, ok, err := p.index.ResolveLink(ctx, notePath, "")
	if err != nil {
		return nil, err
	}
	if !ok || !file.IsMarkdown() {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, notePath)
	}
	content, err := p.index.CachedRead(ctx, file)
	if err != nil {
		return nil, err
	}
	return p.Render(ctx, file.Path, content)
}

// Render processes content as if it were the note at sourcePath.
func (p *Pipeline) Render(ctx context.Context, sourcePath, content string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx = logging.ContextWithFields(ctx, map[string]any{
		"render_batch": uuid.NewString(),
		"note_format":  string(p.format),
	})
	logger := logging.WithNoteContext(logging.FromContext(ctx, p.logger), sourcePath, "")

	matter := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(content), &matter)
	if err != nil {
		logging.WithFields(logger, map[string]any{"error": err}).Warn("embed.host.frontmatter_invalid")
		body, matter = []byte(content), map[string]any{}
	}
	header := ""
	if strings.HasSuffix(content, string(body)) {
		header = content[:len(content)-len(body)]
	}

	engine := render.NewEngine(p.options, sourcePath,
		renderer.WithNodeRenderers(util.Prioritized(processedBlockRenderer{}, 100)),
	)
	doc := engine.Parser().Parse(text.NewReader(body))
	blocks := collectBlocks(doc, body, p.registry)

	if err := p.process(ctx, sourcePath, blocks); err != nil {
		return nil, err
	}

	result := &Result{
		Path:        sourcePath,
		Format:      p.format,
		FrontMatter: matter,
		Blocks:      blocks,
	}
	for _, block := range blocks {
		if block.Err != nil || displaysError(block.Element) {
			result.Failures++
		}
	}

	switch p.format {
	case FormatHTML:
		replaceBlocks(blocks)
		var buf bytes.Buffer
		if err := engine.Renderer().Render(&buf, body, doc); err != nil {
			return nil, fmt.Errorf("host: render html: %w", err)
		}
		result.Output = buf.String()
	case FormatMarkdown:
		result.Output = header + spliceMarkdown(body, blocks)
	case FormatTerminal:
		out, err := p.terminal(spliceMarkdown(body, blocks))
		if err != nil {
			return nil, err
		}
		result.Output = out
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, p.format)
	}

	logging.WithFields(logger, map[string]any{
		"format":      string(p.format),
		"blocks":      len(blocks),
		"failures":    result.Failures,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("embed.host.note_rendered")
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, sourcePath string, blocks []*BlockResult) error {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.concurrency)

	for _, block := range blocks {
		processor, ok := p.registry.Get(block.Keyword)
		if !ok {
			continue
		}
		block.Element = dom.NewElement("div", "block-language-"+block.Keyword)
		group.Go(func() error {
			err := processor.Process(gctx, block.Source, block.Element, interfaces.BlockContext{
				SectionText: block.SectionText,
				SourcePath:  sourcePath,
			})
			block.Err = err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	return group.Wait()
}

func (p *Pipeline) terminal(markdown string) (string, error) {
	styleOption := glamour.WithAutoStyle()
	if p.style != defaultTerminalStyle {
		styleOption = glamour.WithStandardStyle(p.style)
	}
	term, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(p.width))
	if err != nil {
		return "", fmt.Errorf("host: terminal renderer: %w", err)
	}
	out, err := term.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("host: render terminal: %w", err)
	}
	return out, nil
}

// spliceMarkdown replaces every processed block in body with the text its
// processor produced. Preformatted children become blockquotes.
func spliceMarkdown(body []byte, blocks []*BlockResult) string {
	var b strings.Builder
	offset := 0
	for _, block := range blocks {
		if block.Start < offset {
			continue
		}
		b.Write(body[offset:block.Start])
		b.WriteString(prefixLines(blockMarkdown(block.Element), block.Prefix))
		offset = block.End
	}
	b.Write(body[offset:])
	return b.String()
}

func blockMarkdown(el *dom.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range el.Children() {
		content := child.Text()
		if child.Tag() == "pre" {
			content = quote(content)
		}
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func quote(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

// prefixLines keeps expanded content inside the container the block sat in.
func prefixLines(content, prefix string) string {
	if prefix == "" || content == "" {
		return content
	}
	blank := strings.TrimRight(prefix, " \t")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = blank
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func displaysError(el *dom.Element) bool {
	if el == nil {
		return false
	}
	for _, child := range el.Children() {
		for _, class := range child.Classes() {
			if strings.HasSuffix(class, "-error") {
				return true
			}
		}
	}
	return false
}
