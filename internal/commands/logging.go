package commands

import (
	"strings"

	"github.com/goliatone/go-dynamic-embed/internal/logging"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

const commandModuleRoot = "embed.commands"

// CommandLogger returns a module-scoped logger for command handlers.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
