package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Options captures the CLI overrides applied over the configuration file.
type Options struct {
	ConfigPath  string
	Storage     string
	DSN         string
	Translator  string
	LogLevel    string
	FixturesDir string
	// SkipSeed disables seeding the memory store from FixturesDir.
	SkipSeed       bool
	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// LoadConfig reads the configuration file, when given, and applies overrides.
func LoadConfig(opts Options) (runtimeconfig.Config, error) {
	cfg := runtimeconfig.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := runtimeconfig.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if v := strings.ToLower(strings.TrimSpace(opts.Storage)); v != "" {
		cfg.Storage.Driver = v
	}
	if v := strings.TrimSpace(opts.DSN); v != "" {
		cfg.Storage.DSN = v
	}
	if v := strings.ToLower(strings.TrimSpace(opts.Translator)); v != "" {
		cfg.Translator.Provider = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(opts.FixturesDir); v != "" {
		cfg.Fixtures.Dir = v
	}
	if cfg.Storage.Driver == runtimeconfig.StorageMemory {
		cfg.Cache.Enabled = false
	}
	return cfg, cfg.Validate()
}

// BuildModule constructs and initialises a storefront module. With the memory
// driver the fixtures directory is seeded so commands have content to work on.
func BuildModule(ctx context.Context, opts Options) (*storefront.Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	diOpts := append([]di.Option{}, opts.DIOptions...)
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := storefront.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise storefront module: %w", err)
	}
	if err := module.Initialize(ctx); err != nil {
		_ = module.Close()
		return nil, err
	}

	if cfg.Storage.Driver == runtimeconfig.StorageMemory && !opts.SkipSeed {
		if err := seedIfPresent(ctx, module, cfg.Fixtures.Dir); err != nil {
			_ = module.Close()
			return nil, err
		}
	}
	return module, nil
}

func seedIfPresent(ctx context.Context, module *storefront.Module, dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("fixtures path %s is not a directory", dir)
	}
	_, err = module.Seed(ctx, os.DirFS(dir), ".")
	return err
}

// SplitList parses a comma separated list into trimmed, non-empty values.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FindEntity resolves ref as an entity id or, failing that, as a slug.
func FindEntity(ctx context.Context, store content.Store, collection, ref string) (*content.Entity, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return store.Get(ctx, collection, id)
	}
	normalized, err := slug.Normalize(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid slug %q: %w", ref, err)
	}
	return store.GetBySlug(ctx, collection, normalized)
}
