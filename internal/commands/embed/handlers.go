package embedcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-dynamic-embed/internal/commands"
	"github.com/goliatone/go-dynamic-embed/internal/host"
	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

const renderNoteOperation = "embed.render_note"

// ErrNoRenderer is returned when the handler has no note renderer.
var ErrNoRenderer = errors.New("embed command: note renderer is nil")

var _ command.Commander[RenderNoteCommand] = (*RenderNoteHandler)(nil)

// NoteRenderer renders a vault note in the requested format. An empty format
// selects the configured default.
type NoteRenderer interface {
	RenderNote(ctx context.Context, format host.Format, notePath string) (*host.Result, error)
}

// FailuresError reports blocks that displayed an error in strict mode.
type FailuresError struct {
	Note     string
	Failures int
}

func (e *FailuresError) Error() string {
	return fmt.Sprintf("embed command: %s rendered with %d failed block(s)", e.Note, e.Failures)
}

// Category implements commands.Categorized.
func (e *FailuresError) Category() goerrors.Category {
	return goerrors.CategoryValidation
}

// ResultFunc observes every rendered result.
type ResultFunc func(RenderNoteCommand, *host.Result)

// RenderNoteHandler renders notes through the shared command handler.
type RenderNoteHandler struct {
	inner *commands.Handler[RenderNoteCommand]
}

// HandlerConfig wires optional collaborators of the render handler.
type HandlerConfig struct {
	// Writer receives output when a command has no Output path.
	Writer io.Writer
	// OnResult is invoked after a successful render.
	OnResult ResultFunc
}

// NewRenderNoteHandler creates a handler bound to renderer.
func NewRenderNoteHandler(renderer NoteRenderer, logger interfaces.Logger, cfg HandlerConfig, opts ...commands.HandlerOption[RenderNoteCommand]) *RenderNoteHandler {
	baseLogger := commands.EnsureLogger(logger)
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	exec := func(ctx context.Context, msg RenderNoteCommand) error {
		if renderer == nil {
			return ErrNoRenderer
		}

		var format host.Format
		if strings.TrimSpace(msg.Format) != "" {
			parsed, err := host.ParseFormat(msg.Format)
			if err != nil {
				return err
			}
			format = parsed
		}

		result, err := renderer.RenderNote(ctx, format, msg.Note)
		if err != nil {
			return err
		}
		if err := writeOutput(msg.Output, writer, result.Output); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"path":     result.Path,
			"format":   result.Format.String(),
			"blocks":   len(result.Blocks),
			"failures": result.Failures,
		}).Info("embed.command.render_note.completed")

		if cfg.OnResult != nil {
			cfg.OnResult(msg, result)
		}
		if msg.Strict && result.Failures > 0 {
			return &FailuresError{Note: result.Path, Failures: result.Failures}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderNoteCommand]{
		commands.WithLogger[RenderNoteCommand](baseLogger),
		commands.WithOperation[RenderNoteCommand](renderNoteOperation),
		commands.WithMessageFields(func(msg RenderNoteCommand) map[string]any {
			fields := map[string]any{
				"note": msg.Note,
			}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderNoteCommand]()),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderNoteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderNoteCommand].
func (h *RenderNoteHandler) Execute(ctx context.Context, msg RenderNoteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func writeOutput(path string, writer io.Writer, output string) error {
	if strings.TrimSpace(path) == "" {
		_, err := io.WriteString(writer, output)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("embed command: create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("embed command: write output: %w", err)
	}
	return nil
}
