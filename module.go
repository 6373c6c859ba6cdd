// Package dynembed renders vault notes whose dynamic-embed code blocks pull
// in other notes, either one file by link or every note sharing a name
// prefix.
package dynembed

import (
	"context"

	"github.com/goliatone/go-dynamic-embed/internal/di"
	"github.com/goliatone/go-dynamic-embed/internal/directive"
	"github.com/goliatone/go-dynamic-embed/internal/embed"
	"github.com/goliatone/go-dynamic-embed/internal/host"
	"github.com/goliatone/go-dynamic-embed/internal/vault"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// Keyword is the fenced code block language handled by the processor.
const Keyword = directive.Keyword

type (
	// Format selects html, markdown or terminal output.
	Format = host.Format
	// Result is the outcome of rendering one note.
	Result = host.Result
	// BlockResult describes one processed block of a rendered note.
	BlockResult = host.BlockResult
	// Failure is a user-visible resolution failure.
	Failure = embed.Failure
	// FailureKind enumerates the failure taxonomy.
	FailureKind = embed.FailureKind
	// ChangeFunc is invoked after the vault absorbed a filesystem event.
	ChangeFunc = vault.ChangeFunc
	// Option customises module wiring.
	Option = di.Option
)

const (
	FormatHTML     = host.FormatHTML
	FormatMarkdown = host.FormatMarkdown
	FormatTerminal = host.FormatTerminal
)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithIndex replaces the filesystem vault with a custom content index.
func WithIndex(index interfaces.ContentIndex) Option {
	return di.WithIndex(index)
}

// WithRenderer replaces the markdown renderer used by every output format.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return di.WithRenderer(renderer)
}

// WithMetrics attaches a metrics recorder to the processor.
func WithMetrics(metrics interfaces.EmbedMetrics) Option {
	return di.WithMetrics(metrics)
}

// Module is the top level façade over the embed runtime.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Processor returns the dynamic-embed code block processor for the default
// output format. Hosts register it under Keyword.
func (m *Module) Processor() interfaces.CodeBlockProcessor {
	return m.container.Processor(m.container.DefaultFormat())
}

// RenderNote renders notePath in the configured output format.
func (m *Module) RenderNote(ctx context.Context, notePath string) (*Result, error) {
	return m.container.RenderNote(ctx, "", notePath)
}

// RenderNoteAs renders notePath in format.
func (m *Module) RenderNoteAs(ctx context.Context, format Format, notePath string) (*Result, error) {
	return m.container.RenderNote(ctx, format, notePath)
}

// Watch keeps the vault index current until ctx is cancelled, calling
// onChange after each absorbed event.
func (m *Module) Watch(ctx context.Context, onChange ChangeFunc) error {
	watcher, err := m.container.NewWatcher(onChange)
	if err != nil {
		return err
	}
	defer watcher.Close()
	return watcher.Run(ctx)
}

// ParseFormat normalises a format name. An empty name selects html.
func ParseFormat(value string) (Format, error) {
	return host.ParseFormat(value)
}
