package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	dynembed "github.com/goliatone/go-dynamic-embed"
	"github.com/goliatone/go-dynamic-embed/internal/commands"
	embedcmd "github.com/goliatone/go-dynamic-embed/internal/commands/embed"
	"github.com/goliatone/go-dynamic-embed/internal/host"
)

var moduleBuilder = dynembed.New

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("dynamic-embed: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dynamic-embed", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		vaultRoot = fs.String("vault", ".", "Path to the vault root")
		note      = fs.String("note", "", "Note to render, as a link or vault relative path")
		format    = fs.String("format", "html", "Output format: html, markdown or terminal")
		out       = fs.String("out", "", "Write output to this file instead of stdout")
		width     = fs.Int("width", 80, "Word wrap width for terminal output")
		style     = fs.String("style", "auto", "Glamour style for terminal output")
		watch     = fs.Bool("watch", false, "Re-render whenever the vault changes")
		strict    = fs.Bool("strict", false, "Exit with an error when any embed displays an error")
		hidden    = fs.Bool("hidden", false, "Index dot-prefixed files and folders")
		noCache   = fs.Bool("no-cache", false, "Disable cached reads")
		logLevel  = fs.String("log-level", "", "Enable go-logger output at this level")
		logFormat = fs.String("log-format", "console", "go-logger format: console, json or pretty")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*note) == "" {
		return fmt.Errorf("-note is required")
	}

	cfg := dynembed.DefaultConfig()
	cfg.Vault.Root = *vaultRoot
	cfg.Vault.IncludeHidden = *hidden
	cfg.Vault.Watch = *watch
	cfg.Cache.Enabled = !*noCache
	cfg.Output.Format = *format
	cfg.Output.Width = *width
	cfg.Output.Style = *style
	if *logLevel != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Level = *logLevel
		cfg.Logging.Format = *logFormat
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	container := module.Container()

	handler := embedcmd.NewRenderNoteHandler(container,
		commands.CommandLogger(container.LoggerProvider(), "cli"),
		embedcmd.HandlerConfig{
			Writer: stdout,
			OnResult: func(msg embedcmd.RenderNoteCommand, result *host.Result) {
				if msg.Output != "" {
					fmt.Fprintf(stderr, "rendered %s (%d blocks, %d failed) to %s\n", result.Path, len(result.Blocks), result.Failures, msg.Output)
				}
			},
		},
	)

	msg := embedcmd.RenderNoteCommand{
		Note:   *note,
		Format: *format,
		Output: *out,
		Strict: *strict,
	}
	if err := handler.Execute(ctx, msg); err != nil {
		return err
	}
	if !cfg.Vault.Watch {
		return nil
	}

	fmt.Fprintf(stderr, "watching %s for changes\n", cfg.Vault.Root)
	err = module.Watch(ctx, func(ctx context.Context, rel string) {
		if err := handler.Execute(ctx, msg); err != nil {
			fmt.Fprintf(stderr, "render after %s changed: %v\n", rel, err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
