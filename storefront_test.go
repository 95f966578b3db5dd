package storefront_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/internal/di"
	"github.com/goliatone/go-storefront/internal/migration"
	"github.com/goliatone/go-storefront/internal/pricing"
	"github.com/goliatone/go-storefront/internal/translator"
)

func newModule(t *testing.T) *storefront.Module {
	t.Helper()
	cfg := storefront.DefaultConfig()
	cfg.Translator.Provider = "identity"

	provider := translator.Func(func(_ context.Context, text, lang string) string {
		return "[" + lang + "] " + text
	})
	module, err := storefront.New(cfg,
		di.WithTranslationProvider(provider),
		di.WithLimiter(migration.Unlimited()),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	if err := module.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return module
}

func TestModuleSeedMigrateResolve(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	seeded, err := module.Seed(ctx, os.DirFS("internal/fixtures/testdata"), "catalog")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeded.Created != 5 {
		t.Fatalf("expected 5 documents created, got %+v", seeded)
	}

	stats, err := module.MigrateCollection(ctx, "products", false)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if stats.Success != 2 || stats.Skipped != 1 || stats.Failed != 0 {
		t.Fatalf("expected {2,0,1}, got success=%d failed=%d skipped=%d", stats.Success, stats.Failed, stats.Skipped)
	}

	again, err := module.MigrateCollection(ctx, "products", false)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if again.Success != 0 || again.Skipped != 3 {
		t.Fatalf("expected second run to skip everything, got %+v", again)
	}

	sofa, err := module.Store().GetBySlug(ctx, "products", "linen-sofa")
	if err != nil {
		t.Fatalf("get sofa: %v", err)
	}
	if got := module.ResolveField(sofa.Fields["seoTitle"]); got != "Sofá de lino" {
		t.Fatalf("expected source text for default locale, got %q", got)
	}

	if _, err := module.SetLanguage(ctx, "FR"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if got := module.ResolveField(sofa.Fields["seoTitle"]); got != "[fr] Sofá de lino" {
		t.Fatalf("expected french text, got %q", got)
	}
	if got := module.Resolve(nil, "Gallery media"); got != "Gallery media" {
		t.Fatalf("expected fallback for nil translations, got %q", got)
	}
}

func TestModulePriceFromSeededMetadata(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)
	if _, err := module.Seed(ctx, os.DirFS("internal/fixtures/testdata"), "catalog"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	table, err := module.Store().GetBySlug(ctx, "products", "oak-table")
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	profile, ok, err := pricing.ProfileFromMetadata(table.Metadata)
	if err != nil || !ok {
		t.Fatalf("expected pricing profile, ok=%v err=%v", ok, err)
	}

	result := module.Price(profile, &storefront.UserContext{UserID: "u-1", Tier: pricing.TierPremium})
	if result.Price != 850 || result.TierLabel != "Premium" {
		t.Fatalf("unexpected premium price %+v", result)
	}
	if result.DiscountAmount == nil || *result.DiscountAmount != 150 {
		t.Fatalf("expected discount 150, got %v", result.DiscountAmount)
	}
	if anon := module.Price(profile, nil); anon.Price != 1000 {
		t.Fatalf("expected base price for anonymous user, got %v", anon.Price)
	}
}

func TestModuleMigrateEntityNotFound(t *testing.T) {
	module := newModule(t)

	_, err := module.MigrateEntity(context.Background(), "products", uuid.New(), false)
	if !errors.Is(err, migration.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := storefront.DefaultConfig()
	cfg.Languages.Default = "de"
	if _, err := storefront.New(cfg); !errors.Is(err, storefront.ErrDefaultLanguageUnsupported) {
		t.Fatalf("expected ErrDefaultLanguageUnsupported, got %v", err)
	}
}
