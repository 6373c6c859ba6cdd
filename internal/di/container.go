package di

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-dynamic-embed/internal/directive"
	"github.com/goliatone/go-dynamic-embed/internal/embed"
	"github.com/goliatone/go-dynamic-embed/internal/host"
	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/internal/logging/gologger"
	"github.com/goliatone/go-dynamic-embed/internal/render"
	"github.com/goliatone/go-dynamic-embed/internal/runtimeconfig"
	"github.com/goliatone/go-dynamic-embed/internal/vault"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// Container wires the content index, renderers, processors and pipelines
// described by a runtime configuration.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	index          interfaces.ContentIndex
	vault          *vault.Index
	renderer       interfaces.MarkdownRenderer
	metrics        interfaces.EmbedMetrics

	mu        sync.Mutex
	pipelines map[host.Format]*host.Pipeline
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithIndex replaces the filesystem vault with a custom content index.
func WithIndex(index interfaces.ContentIndex) Option {
	return func(c *Container) {
		c.index = index
	}
}

// WithVault supplies a prebuilt vault index, e.g. one backed by fstest.MapFS.
func WithVault(index *vault.Index) Option {
	return func(c *Container) {
		c.vault = index
		c.index = index
	}
}

// WithRenderer replaces the markdown renderer used by every output format.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithMetrics attaches a metrics recorder to every processor.
func WithMetrics(metrics interfaces.EmbedMetrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// NewContainer validates cfg and wires the module dependencies.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		cfg:       cfg,
		pipelines: map[host.Format]*host.Pipeline{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureIndex(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.cfg.LoggingEnabled() {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.cfg.Logging.Level,
		Format:    c.cfg.Logging.Format,
		AddSource: c.cfg.Logging.AddSource,
		Focus:     c.cfg.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureIndex() error {
	if c.index != nil {
		return nil
	}

	opts := []vault.Option{
		vault.WithLogger(logging.VaultLogger(c.loggerProvider)),
		vault.WithHidden(c.cfg.Vault.IncludeHidden),
	}
	if c.cfg.Cache.Enabled {
		opts = append(opts, vault.WithReadCache(c.cfg.Cache.Capacity, c.cfg.Cache.TTL))
	}

	index, err := vault.Open(c.cfg.Vault.Root, opts...)
	if err != nil {
		return err
	}
	c.vault = index
	c.index = index
	return nil
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// LoggerProvider exposes the configured logger provider. It may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Index exposes the content index.
func (c *Container) Index() interfaces.ContentIndex {
	return c.index
}

// Vault exposes the filesystem vault. It is nil when WithIndex replaced it.
func (c *Container) Vault() *vault.Index {
	return c.vault
}

// DefaultFormat returns the configured output format.
func (c *Container) DefaultFormat() host.Format {
	format, err := host.ParseFormat(c.cfg.Output.Format)
	if err != nil {
		return host.FormatHTML
	}
	return format
}

// Renderer returns the markdown renderer used for format.
func (c *Container) Renderer(format host.Format) interfaces.MarkdownRenderer {
	if c.renderer != nil {
		return c.renderer
	}
	if format.RendersHTML() {
		return render.NewHTML(c.parseOptions())
	}
	return render.NewSource()
}

// Processor builds the dynamic-embed processor for format.
func (c *Container) Processor(format host.Format) *embed.Processor {
	return embed.NewProcessor(c.index, c.Renderer(format),
		embed.WithLogger(logging.ProcessorLogger(c.loggerProvider)),
		embed.WithMetrics(c.metrics),
	)
}

// Pipeline returns the pipeline for format, building it on first use. An
// empty format selects the configured default.
func (c *Container) Pipeline(format host.Format) (*host.Pipeline, error) {
	if format == "" {
		format = c.DefaultFormat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pipeline, ok := c.pipelines[format]; ok {
		return pipeline, nil
	}

	registry := host.NewRegistry()
	if err := registry.Register(directive.Keyword, c.Processor(format)); err != nil {
		return nil, fmt.Errorf("di: register processor: %w", err)
	}

	pipeline := host.NewPipeline(c.index, registry,
		host.WithFormat(format),
		host.WithParseOptions(c.parseOptions()),
		host.WithWidth(c.cfg.Output.Width),
		host.WithTerminalStyle(c.cfg.Output.Style),
		host.WithConcurrency(c.cfg.Host.Concurrency),
		host.WithLogger(logging.HostLogger(c.loggerProvider)),
	)
	c.pipelines[format] = pipeline
	return pipeline, nil
}

// RenderNote renders notePath with the pipeline for format.
func (c *Container) RenderNote(ctx context.Context, format host.Format, notePath string) (*host.Result, error) {
	pipeline, err := c.Pipeline(format)
	if err != nil {
		return nil, err
	}
	return pipeline.RenderNote(ctx, notePath)
}

// NewWatcher builds a vault watcher that reports changes to onChange.
func (c *Container) NewWatcher(onChange vault.ChangeFunc) (*vault.Watcher, error) {
	if c.vault == nil {
		return nil, vault.ErrWatchUnsupported
	}
	return vault.NewWatcher(c.vault,
		vault.WithChangeHandler(onChange),
		vault.WithWatcherLogger(logging.VaultLogger(c.loggerProvider)),
	)
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: c.cfg.Markdown.Extensions,
		HardWraps:  c.cfg.Markdown.HardWraps,
		SafeMode:   c.cfg.Markdown.SafeMode,
	}
}
