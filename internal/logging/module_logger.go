package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

const (
	rootModule      = "embed"
	processorModule = "embed.processor"
	vaultModule     = "embed.vault"
	hostModule      = "embed.host"
)

const (
	fieldNotePath      = "note_path"
	fieldDirectiveKind = "directive_kind"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ProcessorLogger returns the logger namespace reserved for the embed processor.
func ProcessorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, processorModule)
}

// VaultLogger returns the logger namespace reserved for the vault index and watcher.
func VaultLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, vaultModule)
}

// HostLogger returns the logger namespace reserved for the rendering host.
func HostLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, hostModule)
}

// WithNoteContext enriches logger with the note path and directive kind.
// Empty values are ignored.
func WithNoteContext(logger interfaces.Logger, path, kind string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldNotePath] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldDirectiveKind] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
