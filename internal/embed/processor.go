package embed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynamic-embed/internal/directive"
	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/dom"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// ErrProcessorNotInitialised is returned when the processor lacks an index or renderer.
var ErrProcessorNotInitialised = errors.New("embed: processor not initialised")

// Processor is the dynamic-embed code block callback. It keeps no state
// between calls and can serve concurrent blocks.
type Processor struct {
	index    interfaces.ContentIndex
	renderer interfaces.MarkdownRenderer
	logger   interfaces.Logger
	metrics  interfaces.EmbedMetrics
	now      func() time.Time
}

// ProcessorOption customises processor behaviour.
type ProcessorOption func(*Processor)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(metrics interfaces.EmbedMetrics) ProcessorOption {
	return func(p *Processor) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

// WithClock overrides the clock used to time renders.
func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProcessor constructs a processor reading from index and rendering through renderer.
func NewProcessor(index interfaces.ContentIndex, renderer interfaces.MarkdownRenderer, opts ...ProcessorOption) *Processor {
	p := &Processor{
		index:    index,
		renderer: renderer,
		logger:   logging.NoOp(),
		metrics:  NoOpMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process satisfies interfaces.CodeBlockProcessor. Resolution failures are
// displayed inside el and never returned; only a cancelled context is
// reported back to the host.
func (p *Processor) Process(ctx context.Context, source string, el *dom.Element, bctx interfaces.BlockContext) error {
	if ctx == nil {
		ctx = context.Background()
	}

	d := directive.Parse(source)
	kind := d.Kind().String()
	logger := logging.WithNoteContext(p.baseLogger(ctx), bctx.SourcePath, kind)
	logger = logging.WithFields(logger, map[string]any{
		"operation": "embed.process",
		"render_id": uuid.NewString(),
	})
	start := p.now()

	markdown, err := p.resolve(ctx, d, source, bctx)
	if err == nil {
		if p.renderer == nil {
			err = ErrProcessorNotInitialised
		} else {
			container := NewContainer(el)
			if err = p.renderer.RenderMarkdown(ctx, markdown, container, bctx.SourcePath); err != nil {
				container.Remove()
			}
		}
	}
	elapsed := p.now().Sub(start)
	p.metrics.ObserveRenderDuration(kind, elapsed)

	if err != nil {
		if failure, ok := AsFailure(err); ok {
			DisplayError(el, failure.Message)
			p.metrics.IncrementFailure(string(failure.Kind))
			logging.WithFields(logger, map[string]any{
				"failure_kind": string(failure.Kind),
				"duration_ms":  elapsed.Milliseconds(),
			}).Debug("embed.processor.failure_displayed")
			return nil
		}
		DisplayError(el, err.Error())
		logging.WithFields(logger, map[string]any{
			"error":       err,
			"duration_ms": elapsed.Milliseconds(),
		}).Error("embed.processor.render_failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return nil
	}

	logging.WithFields(logger, map[string]any{
		"duration_ms": elapsed.Milliseconds(),
		"bytes":       len(markdown),
	}).Debug("embed.processor.render_succeeded")
	return nil
}

// Resolve parses source and returns the markdown that would be rendered.
// User-facing failures are returned as *Failure.
func (p *Processor) Resolve(ctx context.Context, source string, bctx interfaces.BlockContext) (string, error) {
	return p.resolve(ctx, directive.Parse(source), source, bctx)
}

func (p *Processor) resolve(ctx context.Context, parsed directive.Directive, source string, bctx interfaces.BlockContext) (string, error) {
	if p.index == nil {
		return "", ErrProcessorNotInitialised
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch d := parsed.(type) {
	case directive.SingleFile:
		return ResolveSingle(ctx, p.index, d.Name)
	case directive.PrefixSet:
		section := bctx.SectionText
		if section == "" {
			section = source
		}
		return CollectPrefix(ctx, p.index, d.Prefix, section)
	default:
		return "", invalidDirective()
	}
}

func (p *Processor) baseLogger(ctx context.Context) interfaces.Logger {
	return logging.FromContext(ctx, p.logger)
}

var _ interfaces.CodeBlockProcessor = (*Processor)(nil)
