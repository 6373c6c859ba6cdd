package embedcmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-dynamic-embed/internal/commands"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	handlerOpts []commands.HandlerOption[RenderNoteCommand]
	runnerOpts  []runner.Option
}

// WithHandlerOptions forwards options to the RenderNoteHandler constructor.
func WithHandlerOptions(opts ...commands.HandlerOption[RenderNoteCommand]) Option {
	return func(cfg *options) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// WithRunnerOptions forwards options to the dispatcher subscription.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(cfg *options) {
		cfg.runnerOpts = append(cfg.runnerOpts, opts...)
	}
}

// Subscription is returned by Subscribe so callers can detach the handler.
type Subscription interface {
	Unsubscribe()
}

// Subscribe builds the render handler and subscribes it to the go-command
// dispatcher so RenderNoteCommand values can be sent with dispatcher.Dispatch.
func Subscribe(renderer NoteRenderer, provider interfaces.LoggerProvider, cfg HandlerConfig, opts ...Option) (*RenderNoteHandler, Subscription, error) {
	if renderer == nil {
		return nil, nil, errors.New("embed command registration: renderer is nil")
	}

	settings := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	handler := NewRenderNoteHandler(renderer, commands.CommandLogger(provider, "embed"), cfg, settings.handlerOpts...)
	sub := dispatcher.SubscribeCommand(handler, settings.runnerOpts...)
	return handler, sub, nil
}
