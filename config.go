package dynembed

import "github.com/goliatone/go-dynamic-embed/internal/runtimeconfig"

var (
	ErrVaultRootRequired      = runtimeconfig.ErrVaultRootRequired
	ErrCacheCapacityInvalid   = runtimeconfig.ErrCacheCapacityInvalid
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrOutputFormatInvalid    = runtimeconfig.ErrOutputFormatInvalid
	ErrOutputWidthInvalid     = runtimeconfig.ErrOutputWidthInvalid
	ErrConcurrencyInvalid     = runtimeconfig.ErrConcurrencyInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	VaultConfig    = runtimeconfig.VaultConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	OutputConfig   = runtimeconfig.OutputConfig
	HostConfig     = runtimeconfig.HostConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
