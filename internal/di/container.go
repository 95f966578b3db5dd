package di

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-resty/resty/v2"
	command "github.com/goliatone/go-command"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-storefront/internal/commands"
	migrationcmd "github.com/goliatone/go-storefront/internal/commands/migration"
	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/fixtures"
	"github.com/goliatone/go-storefront/internal/locale"
	"github.com/goliatone/go-storefront/internal/localization"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/migration"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/goliatone/go-storefront/internal/translator"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Container wires the storefront pipeline from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store      content.Store
	localeRepo locale.Repository
	selector   *locale.Selector

	restyClient *resty.Client
	provider    interfaces.TranslationProvider
	limiter     migration.Limiter
	eventSink   migration.EventSink
	engine      *migration.Engine

	commandRegistry   commands.CommandRegistry
	cronRegistrar     commands.CronRegistrar
	statsObserver     migrationcmd.StatsObserver
	migrationCommands *migrationcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithContentStore replaces the configured content store.
func WithContentStore(store content.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithLocaleRepository replaces the configured locale settings repository.
func WithLocaleRepository(repo locale.Repository) Option {
	return func(c *Container) {
		c.localeRepo = repo
	}
}

// WithTranslationProvider replaces the configured translation provider.
func WithTranslationProvider(provider interfaces.TranslationProvider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithRestyClient sets the HTTP client used by the mymemory provider.
func WithRestyClient(client *resty.Client) Option {
	return func(c *Container) {
		c.restyClient = client
	}
}

// WithLimiter replaces the interval limiter built from the migration config.
func WithLimiter(limiter migration.Limiter) Option {
	return func(c *Container) {
		c.limiter = limiter
	}
}

// WithEventSink adds sink next to the default log sink.
func WithEventSink(sink migration.EventSink) Option {
	return func(c *Container) {
		c.eventSink = sink
	}
}

// WithCommandRegistry registers the migration handlers with reg.
func WithCommandRegistry(reg commands.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithCronRegistrar schedules the migrate-all job when
// Commands.AutoRegisterCron is set.
func WithCronRegistrar(reg commands.CronRegistrar) Option {
	return func(c *Container) {
		c.cronRegistrar = reg
	}
}

// WithStatsObserver receives the stats of runs executed through commands.
func WithStatsObserver(fn migrationcmd.StatsObserver) Option {
	return func(c *Container) {
		c.statsObserver = fn
	}
}

// NewContainer validates cfg and wires every component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureTranslator()
	c.configureEngine()
	c.configureLocale()
	if err := c.configureCommands(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.Config.Storage.Driver,
		"translator", c.Config.Translator.Provider,
		"cache", c.cacheService != nil,
	)
	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("cache.configure.failed", "error", err)
		} else {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		if c.store == nil {
			c.store = content.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.localeRepo == nil {
			c.localeRepo = locale.NewBunRepository(c.bunDB)
		}
		return
	}
	if c.store == nil {
		c.store = content.NewMemoryStore()
	}
	if c.localeRepo == nil {
		c.localeRepo = locale.NewMemoryRepository()
	}
}

func (c *Container) configureTranslator() {
	if c.provider != nil {
		return
	}
	switch c.Config.Translator.Provider {
	case runtimeconfig.TranslatorIdentity:
		c.provider = translator.Identity()
	default:
		opts := []translator.Option{
			translator.WithLogger(logging.TranslatorLogger(c.loggerProvider)),
		}
		if c.restyClient != nil {
			opts = append(opts, translator.WithRestyClient(c.restyClient))
		}
		c.provider = translator.NewMyMemory(translator.Config{
			BaseURL:        c.Config.Translator.BaseURL,
			SourceLanguage: c.Config.Languages.Default,
			Timeout:        c.Config.Translator.Timeout,
			Email:          c.Config.Translator.Email,
		}, opts...)
	}
}

func (c *Container) configureEngine() {
	if c.limiter == nil {
		c.limiter = migration.NewIntervalLimiter(c.Config.Migration.CallInterval, c.Config.Migration.Burst)
	}

	engineLogger := logging.MigrationLogger(c.loggerProvider)
	sink := migration.MultiSink(migration.NewLogSink(engineLogger), c.eventSink)

	c.engine = migration.NewEngine(c.store, c.provider,
		migration.WithLimiter(c.limiter),
		migration.WithSourceLanguage(c.Config.Languages.Default),
		migration.WithLogger(engineLogger),
		migration.WithEventSink(sink),
	)
}

func (c *Container) configureLocale() {
	catalog := localization.CatalogFromCodes(c.Config.Languages.Default, c.Config.Languages.Supported)
	c.selector = locale.NewSelector(catalog,
		locale.WithRepository(c.localeRepo),
		locale.WithLogger(logging.LocaleLogger(c.loggerProvider)),
	)
}

func (c *Container) configureCommands() error {
	defaults := migrationcmd.Defaults{
		Presets:   c.Config.Migration.Collections,
		Languages: c.Config.TargetLanguages(),
	}
	opts := []migrationcmd.Option{}
	if c.statsObserver != nil {
		opts = append(opts, migrationcmd.WithStatsObserver(c.statsObserver))
	}

	set, err := migrationcmd.RegisterMigrationCommands(c.commandRegistry, c.engine, defaults, c.loggerProvider, opts...)
	if err != nil {
		return fmt.Errorf("register migration commands: %w", err)
	}
	c.migrationCommands = set

	if !c.Config.Commands.AutoRegisterCron || c.cronRegistrar == nil {
		return nil
	}
	cronCfg := command.HandlerConfig{Expression: c.Config.Commands.MigrationCron}
	if err := migrationcmd.RegisterMigrationCron(c.cronRegistrar, set.All, cronCfg, migrationcmd.MigrateAllCommand{}); err != nil {
		return fmt.Errorf("register migration cron: %w", err)
	}
	c.logger.Info("commands.cron.registered", "expression", cronCfg.Expression)
	return nil
}

// Initialize creates the SQL schema when a database is configured and loads
// the persisted language.
func (c *Container) Initialize(ctx context.Context) error {
	if c.bunDB != nil {
		if err := content.CreateSchema(ctx, c.bunDB); err != nil {
			return fmt.Errorf("create content schema: %w", err)
		}
		if err := locale.CreateSchema(ctx, c.bunDB); err != nil {
			return fmt.Errorf("create locale schema: %w", err)
		}
	}
	if _, err := c.selector.Load(ctx); err != nil {
		return fmt.Errorf("load locale settings: %w", err)
	}
	return nil
}

// Close releases the database the container opened itself.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

// LoggerProvider returns the logger provider in use.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB returns the SQL handle, nil for the memory driver.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// ContentStore returns the configured content store.
func (c *Container) ContentStore() content.Store {
	return c.store
}

// TranslationProvider returns the configured translation provider.
func (c *Container) TranslationProvider() interfaces.TranslationProvider {
	return c.provider
}

// Engine returns the translation migration engine.
func (c *Container) Engine() *migration.Engine {
	return c.engine
}

// LocaleSelector returns the active-language selector.
func (c *Container) LocaleSelector() *locale.Selector {
	return c.selector
}

// MigrationCommands returns the migration command handlers.
func (c *Container) MigrationCommands() *migrationcmd.HandlerSet {
	return c.migrationCommands
}

// FixturesLoader returns a loader reading documents from fsys.
func (c *Container) FixturesLoader(fsys fs.FS) *fixtures.Loader {
	return fixtures.NewLoader(fsys, fixtures.WithLoaderLogger(logging.FixturesLogger(c.loggerProvider)))
}

// InvalidateCache drops cached content reads when the store supports it.
func (c *Container) InvalidateCache(ctx context.Context) error {
	if inv, ok := c.store.(interface{ InvalidateCache(context.Context) error }); ok {
		return inv.InvalidateCache(ctx)
	}
	return nil
}
