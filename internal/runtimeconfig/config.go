package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrVaultRootRequired indicates the vault root was left empty.
var ErrVaultRootRequired = errors.New("embed config: vault root is required")

// ErrCacheCapacityInvalid guards against non-positive cache sizes when the cache is enabled.
var ErrCacheCapacityInvalid = errors.New("embed config: cache capacity must be positive when cache is enabled")

// ErrCacheTTLInvalid guards against non-positive cache lifetimes when the cache is enabled.
var ErrCacheTTLInvalid = errors.New("embed config: cache ttl must be positive when cache is enabled")
var ErrOutputFormatInvalid = errors.New("embed config: output format is invalid")
var ErrOutputWidthInvalid = errors.New("embed config: output width must be zero or positive")
var ErrConcurrencyInvalid = errors.New("embed config: block concurrency must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("embed config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("embed config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("embed config: logging format is invalid")

// Config aggregates the settings of the embed module. Fields use simple types
// so host applications can populate them from flags or files.
type Config struct {
	Vault    VaultConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Output   OutputConfig
	Host     HostConfig
	Logging  LoggingConfig
}

// VaultConfig locates the notes served by the content index.
type VaultConfig struct {
	Root          string
	IncludeHidden bool
	Watch         bool
}

// CacheConfig captures cached read behaviour.
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	Capacity int
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// OutputConfig selects how rendered notes are emitted.
type OutputConfig struct {
	Format string
	Width  int
	// Style is a glamour standard style name, "auto" detects the terminal.
	Style string
}

// HostConfig tunes the reference host.
type HostConfig struct {
	Concurrency int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns defaults suitable for rendering a vault in the
// current directory.
func DefaultConfig() Config {
	return Config{
		Vault: VaultConfig{
			Root: ".",
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTL:      time.Minute,
			Capacity: 1000,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		Output: OutputConfig{
			Format: "html",
			Width:  80,
			Style:  "auto",
		},
		Host: HostConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Vault.Root) == "" {
		return ErrVaultRootRequired
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.Capacity <= 0 {
			return ErrCacheCapacityInvalid
		}
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}
	if format := normalize(cfg.Output.Format); format != "" && !isSupportedOutput(format) {
		return fmt.Errorf("%w: %s", ErrOutputFormatInvalid, format)
	}
	if cfg.Output.Width < 0 {
		return ErrOutputWidthInvalid
	}
	if cfg.Host.Concurrency < 0 {
		return ErrConcurrencyInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// LoggingEnabled reports whether a real logging provider is configured.
func (cfg Config) LoggingEnabled() bool {
	return normalize(cfg.Logging.Provider) == "gologger"
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedOutput(format string) bool {
	switch format {
	case "html", "markdown", "md", "terminal", "term":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
