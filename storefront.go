package storefront

import (
	"context"
	"io/fs"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/fixtures"
	"github.com/goliatone/go-storefront/internal/locale"
	"github.com/goliatone/go-storefront/internal/localization"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/migration"
	"github.com/goliatone/go-storefront/internal/pricing"
)

type (
	// Entity is a stored content item with localizable fields.
	Entity = content.Entity
	// Field is one localizable field of an Entity.
	Field = content.Field
	// TranslatedText maps a language code to text.
	TranslatedText = content.TranslatedText
	// Store is the content store contract used by the pipeline.
	Store = content.Store

	Locale   = localization.Locale
	Catalog  = localization.Catalog
	Language = localization.Language

	MigrationRequest = migration.Request
	RunStats         = migration.RunStats
	EntityOutcome    = migration.EntityOutcome

	PricingProfile = pricing.Profile
	UserContext    = pricing.UserContext
	PriceResult    = pricing.Result
	Tier           = pricing.Tier

	SeedResult = fixtures.SeedResult
)

// Module is the top level storefront runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Initialize prepares storage and restores the persisted language.
func (m *Module) Initialize(ctx context.Context) error {
	return m.container.Initialize(ctx)
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	return m.container.Close()
}

// Store returns the content store.
func (m *Module) Store() Store {
	return m.container.ContentStore()
}

// Locale returns a copy of the active locale.
func (m *Module) Locale() Locale {
	return m.container.LocaleSelector().Current()
}

// Locales returns the selector that owns the active language.
func (m *Module) Locales() *locale.Selector {
	return m.container.LocaleSelector()
}

// SetLanguage switches and persists the active language.
func (m *Module) SetLanguage(ctx context.Context, code string) (Locale, error) {
	return m.container.LocaleSelector().SetLanguage(ctx, code)
}

// Resolve picks the display text of translations for the active locale.
func (m *Module) Resolve(translations TranslatedText, fallback string) string {
	return m.Locale().Resolve(translations, fallback)
}

// ResolveField resolves field for the active locale, falling back to its
// plain value.
func (m *Module) ResolveField(field Field) string {
	return m.Locale().ResolveField(field)
}

// Price resolves the effective price of profile for user. A nil user is
// anonymous.
func (m *Module) Price(profile PricingProfile, user *UserContext) PriceResult {
	return pricing.Resolve(profile, user)
}

// Engine returns the translation migration engine.
func (m *Module) Engine() *migration.Engine {
	return m.container.Engine()
}

// MigrateCollection fills missing translations of collection using the
// configured field preset and target languages.
func (m *Module) MigrateCollection(ctx context.Context, collection string, force bool) (*RunStats, error) {
	return m.Engine().MigrateCollection(ctx, m.request(collection, force))
}

// MigrateEntity migrates a single entity of collection.
func (m *Module) MigrateEntity(ctx context.Context, collection string, id uuid.UUID, force bool) (*RunStats, error) {
	return m.Engine().MigrateEntity(ctx, m.request(collection, force), id)
}

// Retranslate re-translates every entity of collection.
func (m *Module) Retranslate(ctx context.Context, collection string) (*RunStats, error) {
	return m.Engine().Retranslate(ctx, m.request(collection, true))
}

// Seed loads fixture documents under root in fsys and creates the missing ones.
func (m *Module) Seed(ctx context.Context, fsys fs.FS, root string) (SeedResult, error) {
	docs, err := m.container.FixturesLoader(fsys).LoadAll(ctx, root)
	if err != nil {
		return SeedResult{}, err
	}
	logger := logging.FixturesLogger(m.container.LoggerProvider())
	result, err := fixtures.Seed(ctx, m.Store(), docs, logger)
	if err != nil {
		return result, err
	}
	return result, m.container.InvalidateCache(ctx)
}

func (m *Module) request(collection string, force bool) MigrationRequest {
	cfg := m.container.Config
	fields, _ := cfg.CollectionFields(collection)
	return MigrationRequest{
		Collection: collection,
		Fields:     fields,
		Languages:  cfg.TargetLanguages(),
		Force:      force,
	}
}
