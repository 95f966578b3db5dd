package storefront

import "github.com/goliatone/go-storefront/internal/runtimeconfig"

var (
	ErrDefaultLanguageRequired    = runtimeconfig.ErrDefaultLanguageRequired
	ErrDefaultLanguageUnsupported = runtimeconfig.ErrDefaultLanguageUnsupported
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrCacheRequiresSQLStorage    = runtimeconfig.ErrCacheRequiresSQLStorage
	ErrTranslatorProviderUnknown  = runtimeconfig.ErrTranslatorProviderUnknown
	ErrTranslatorTimeoutInvalid   = runtimeconfig.ErrTranslatorTimeoutInvalid
	ErrMigrationIntervalInvalid   = runtimeconfig.ErrMigrationIntervalInvalid
	ErrMigrationBurstInvalid      = runtimeconfig.ErrMigrationBurstInvalid
	ErrCollectionFieldsRequired   = runtimeconfig.ErrCollectionFieldsRequired
	ErrCronExpressionRequired     = runtimeconfig.ErrCronExpressionRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	LanguagesConfig  = runtimeconfig.LanguagesConfig
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	TranslatorConfig = runtimeconfig.TranslatorConfig
	MigrationConfig  = runtimeconfig.MigrationConfig
	FixturesConfig   = runtimeconfig.FixturesConfig
	CommandsConfig   = runtimeconfig.CommandsConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the storefront defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
