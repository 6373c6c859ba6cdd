package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// DefaultCommandTimeout bounds one note render, vault reads included.
const DefaultCommandTimeout = time.Minute

// commandContext derives the context a command executes under. A nil ctx
// counts as background; a non-positive timeout leaves it unbounded.
func commandContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger falls back to the no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
