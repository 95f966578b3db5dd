package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrDefaultLanguageRequired    = errors.New("storefront config: default language is required")
	ErrDefaultLanguageUnsupported = errors.New("storefront config: default language must be listed in supported languages")
	ErrStorageDriverUnknown       = errors.New("storefront config: storage driver is invalid")
	ErrStorageDSNRequired         = errors.New("storefront config: storage dsn is required for sql drivers")
	ErrCacheRequiresSQLStorage    = errors.New("storefront config: cache requires a sql storage driver")
	ErrTranslatorProviderUnknown  = errors.New("storefront config: translator provider is invalid")
	ErrTranslatorTimeoutInvalid   = errors.New("storefront config: translator timeout must be zero or positive")
	ErrMigrationIntervalInvalid   = errors.New("storefront config: migration call interval must be zero or positive")
	ErrMigrationBurstInvalid      = errors.New("storefront config: migration burst must be zero or positive")
	ErrCollectionFieldsRequired   = errors.New("storefront config: collection preset needs at least one field")
	ErrCronExpressionRequired     = errors.New("storefront config: migration cron expression is required when cron registration is enabled")
	ErrLoggingProviderRequired    = errors.New("storefront config: logging provider is required")
	ErrLoggingProviderUnknown     = errors.New("storefront config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("storefront config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("storefront config: logging format is invalid")
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	TranslatorMyMemory = "mymemory"
	TranslatorIdentity = "identity"
)

// Config aggregates the runtime settings of the storefront pipeline.
type Config struct {
	Languages  LanguagesConfig  `yaml:"languages"`
	Storage    StorageConfig    `yaml:"storage"`
	Cache      CacheConfig      `yaml:"cache"`
	Translator TranslatorConfig `yaml:"translator"`
	Migration  MigrationConfig  `yaml:"migration"`
	Fixtures   FixturesConfig   `yaml:"fixtures"`
	Commands   CommandsConfig   `yaml:"commands"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LanguagesConfig lists the languages the storefront serves. Default is the
// language content is authored in.
type LanguagesConfig struct {
	Default   string   `yaml:"default"`
	Supported []string `yaml:"supported"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CacheConfig toggles the read cache around the SQL repositories.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type TranslatorConfig struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Email    string        `yaml:"email"`
}

// MigrationConfig controls the translation migration engine. Collections maps
// a collection name to the fields migrated by default.
type MigrationConfig struct {
	CallInterval time.Duration       `yaml:"call_interval"`
	Burst        int                 `yaml:"burst"`
	Collections  map[string][]string `yaml:"collections"`
}

type FixturesConfig struct {
	Dir string `yaml:"dir"`
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	AutoRegisterCron bool   `yaml:"auto_register_cron"`
	MigrationCron    string `yaml:"migration_cron"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Languages: LanguagesConfig{
			Default:   "es",
			Supported: []string{"es", "en", "fr", "it"},
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Translator: TranslatorConfig{
			Provider: TranslatorMyMemory,
			BaseURL:  "https://api.mymemory.translated.net",
			Timeout:  10 * time.Second,
		},
		Migration: MigrationConfig{
			CallInterval: 500 * time.Millisecond,
			Burst:        1,
			Collections: map[string][]string{
				"products":          {"description", "seoTitle", "seoDescription"},
				"galleryImages":     {"title", "description", "project", "location"},
				"galleryCategories": {"name", "description"},
			},
		},
		Fixtures: FixturesConfig{
			Dir: "fixtures",
		},
		Commands: CommandsConfig{
			MigrationCron: "@daily",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads a YAML file over DefaultConfig and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("storefront config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over DefaultConfig. Unknown keys are rejected. A preset
// listed in the document replaces the default preset of the same collection.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("storefront config: decode: %w", err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	cfg.Languages.Default = strings.ToLower(strings.TrimSpace(cfg.Languages.Default))
	supported := make([]string, 0, len(cfg.Languages.Supported))
	for _, code := range cfg.Languages.Supported {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" && !slices.Contains(supported, code) {
			supported = append(supported, code)
		}
	}
	cfg.Languages.Supported = supported
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Translator.Provider = strings.ToLower(strings.TrimSpace(cfg.Translator.Provider))
}

// TargetLanguages returns the supported languages other than the default.
func (cfg Config) TargetLanguages() []string {
	out := make([]string, 0, len(cfg.Languages.Supported))
	for _, code := range cfg.Languages.Supported {
		if code != cfg.Languages.Default {
			out = append(out, code)
		}
	}
	return out
}

// CollectionFields returns the preset fields for collection.
func (cfg Config) CollectionFields(collection string) ([]string, bool) {
	fields, ok := cfg.Migration.Collections[collection]
	if !ok {
		return nil, false
	}
	return slices.Clone(fields), true
}

// CollectionNames returns the preset collection names, sorted.
func (cfg Config) CollectionNames() []string {
	names := make([]string, 0, len(cfg.Migration.Collections))
	for name := range cfg.Migration.Collections {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate performs consistency checks and returns the first sentinel hit.
func (cfg Config) Validate() error {
	defaultLanguage := strings.TrimSpace(cfg.Languages.Default)
	if defaultLanguage == "" {
		return ErrDefaultLanguageRequired
	}
	if !slices.Contains(cfg.Languages.Supported, defaultLanguage) {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageUnsupported, defaultLanguage)
	}

	switch driver := strings.TrimSpace(cfg.Storage.Driver); driver {
	case StorageMemory:
		if cfg.Cache.Enabled {
			return ErrCacheRequiresSQLStorage
		}
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, driver)
	}

	switch provider := strings.TrimSpace(cfg.Translator.Provider); provider {
	case TranslatorMyMemory, TranslatorIdentity:
	default:
		return fmt.Errorf("%w: %q", ErrTranslatorProviderUnknown, provider)
	}
	if cfg.Translator.Timeout < 0 {
		return ErrTranslatorTimeoutInvalid
	}

	if cfg.Migration.CallInterval < 0 {
		return ErrMigrationIntervalInvalid
	}
	if cfg.Migration.Burst < 0 {
		return ErrMigrationBurstInvalid
	}
	for _, name := range cfg.CollectionNames() {
		if len(cfg.Migration.Collections[name]) == 0 {
			return fmt.Errorf("%w: %s", ErrCollectionFieldsRequired, name)
		}
	}
	if cfg.Commands.AutoRegisterCron && strings.TrimSpace(cfg.Commands.MigrationCron) == "" {
		return ErrCronExpressionRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
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

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
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
