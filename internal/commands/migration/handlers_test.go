package migrationcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/migration"
	"github.com/goliatone/go-storefront/internal/translator"
)

type stubMigrator struct {
	requests []migration.Request
	ids      []uuid.UUID
	calls    []string
	errs     map[string]error
}

func (s *stubMigrator) MigrateCollection(_ context.Context, req migration.Request) (*migration.RunStats, error) {
	s.calls = append(s.calls, "collection")
	s.requests = append(s.requests, req)
	return &migration.RunStats{Collection: req.Collection, Total: 1, Success: 1}, s.errs[req.Collection]
}

func (s *stubMigrator) Retranslate(_ context.Context, req migration.Request) (*migration.RunStats, error) {
	s.calls = append(s.calls, "retranslate")
	s.requests = append(s.requests, req)
	return &migration.RunStats{Collection: req.Collection}, nil
}

func (s *stubMigrator) MigrateEntity(_ context.Context, req migration.Request, id uuid.UUID) (*migration.RunStats, error) {
	s.calls = append(s.calls, "entity")
	s.requests = append(s.requests, req)
	s.ids = append(s.ids, id)
	return &migration.RunStats{Collection: req.Collection}, nil
}

func testDefaults() Defaults {
	return Defaults{
		Presets: map[string][]string{
			"products":          {"description", "seoTitle"},
			"galleryCategories": {"name"},
		},
		Languages: []string{"en", "fr"},
	}
}

func TestMigrateCollectionHandlerAppliesDefaults(t *testing.T) {
	migrator := &stubMigrator{}
	var observed []*migration.RunStats
	handler := NewMigrateCollectionHandler(migrator, testDefaults(), nil, func(_ context.Context, stats *migration.RunStats) {
		observed = append(observed, stats)
	})

	if err := handler.Execute(context.Background(), MigrateCollectionCommand{Collection: " products "}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(migrator.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(migrator.requests))
	}
	req := migrator.requests[0]
	if req.Collection != "products" || req.Force {
		t.Fatalf("unexpected request %+v", req)
	}
	if len(req.Fields) != 2 || req.Fields[0] != "description" {
		t.Fatalf("expected preset fields, got %v", req.Fields)
	}
	if len(req.Languages) != 2 || req.Languages[0] != "en" {
		t.Fatalf("expected default languages, got %v", req.Languages)
	}
	if len(observed) != 1 || observed[0].Success != 1 {
		t.Fatalf("expected stats observed once, got %+v", observed)
	}
}

func TestMigrateCollectionHandlerKeepsExplicitSelection(t *testing.T) {
	migrator := &stubMigrator{}
	handler := NewMigrateCollectionHandler(migrator, testDefaults(), nil, nil)

	msg := MigrateCollectionCommand{Collection: "products", Fields: []string{"seoTitle"}, Languages: []string{"it"}, Force: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	req := migrator.requests[0]
	if len(req.Fields) != 1 || req.Fields[0] != "seoTitle" || len(req.Languages) != 1 || req.Languages[0] != "it" || !req.Force {
		t.Fatalf("expected explicit selection to win, got %+v", req)
	}
}

func TestMigrationHandlersRejectInvalidMessages(t *testing.T) {
	migrator := &stubMigrator{}
	defaults := testDefaults()

	cases := []struct {
		name string
		run  func() error
	}{
		{"collection blank", func() error {
			return NewMigrateCollectionHandler(migrator, defaults, nil, nil).Execute(context.Background(), MigrateCollectionCommand{Collection: "  "})
		}},
		{"retranslate blank", func() error {
			return NewRetranslateHandler(migrator, defaults, nil, nil).Execute(context.Background(), RetranslateCommand{})
		}},
		{"entity without id", func() error {
			return NewMigrateEntityHandler(migrator, defaults, nil, nil).Execute(context.Background(), MigrateEntityCommand{Collection: "products"})
		}},
		{"all with blank collection", func() error {
			return NewMigrateAllHandler(migrator, defaults, nil, nil).Execute(context.Background(), MigrateAllCommand{Collections: []string{"products", " "}})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(migrator.calls) != 0 {
		t.Fatalf("expected no migrator calls, got %v", migrator.calls)
	}
}

func TestRetranslateHandlerForces(t *testing.T) {
	migrator := &stubMigrator{}
	handler := NewRetranslateHandler(migrator, testDefaults(), nil, nil)

	if err := handler.Execute(context.Background(), RetranslateCommand{Collection: "galleryCategories"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if migrator.calls[0] != "retranslate" || !migrator.requests[0].Force {
		t.Fatalf("expected forced retranslate, got %v %+v", migrator.calls, migrator.requests[0])
	}
}

func TestMigrateEntityHandlerPassesID(t *testing.T) {
	migrator := &stubMigrator{}
	handler := NewMigrateEntityHandler(migrator, testDefaults(), nil, nil)
	id := uuid.New()

	if err := handler.Execute(context.Background(), MigrateEntityCommand{Collection: "products", EntityID: id}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(migrator.ids) != 1 || migrator.ids[0] != id {
		t.Fatalf("expected id %s, got %v", id, migrator.ids)
	}
}

func TestMigrateAllHandlerContinuesPastFailures(t *testing.T) {
	boom := errors.New("list failed")
	migrator := &stubMigrator{errs: map[string]error{"galleryCategories": boom}}
	var observed []string
	handler := NewMigrateAllHandler(migrator, testDefaults(), nil, func(_ context.Context, stats *migration.RunStats) {
		observed = append(observed, stats.Collection)
	})

	err := handler.Execute(context.Background(), MigrateAllCommand{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined collection error, got %v", err)
	}
	if len(migrator.requests) != 2 {
		t.Fatalf("expected both collections migrated, got %d", len(migrator.requests))
	}
	if migrator.requests[0].Collection != "galleryCategories" || migrator.requests[1].Collection != "products" {
		t.Fatalf("expected sorted preset order, got %+v", migrator.requests)
	}
	if len(observed) != 2 {
		t.Fatalf("expected stats for both collections, got %v", observed)
	}
}

func TestMigrateEntityHandlerWithEngineReportsNotFound(t *testing.T) {
	store := content.NewMemoryStore()
	engine := migration.NewEngine(store, translator.Identity(), migration.WithLimiter(migration.Unlimited()))
	handler := NewMigrateEntityHandler(engine, testDefaults(), nil, nil)

	err := handler.Execute(context.Background(), MigrateEntityCommand{Collection: "products", EntityID: uuid.New()})
	if !errors.Is(err, migration.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category to survive the command layer, got %v", err)
	}
}

func TestMigrateCollectionHandlerWithEngine(t *testing.T) {
	ctx := context.Background()
	store := content.NewMemoryStore()
	created, err := store.Create(ctx, &content.Entity{
		Collection: "products",
		Slug:       "oak-table",
		Fields: map[string]content.Field{
			"description": {Name: "description", Value: "Mesa de roble"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	provider := translator.Func(func(_ context.Context, text, lang string) string {
		return "[" + lang + "] " + text
	})
	engine := migration.NewEngine(store, provider, migration.WithLimiter(migration.Unlimited()))
	handler := NewMigrateCollectionHandler(engine, testDefaults(), nil, nil)

	if err := handler.Execute(ctx, MigrateCollectionCommand{Collection: "products"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got, err := store.Get(ctx, "products", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if text := got.Fields["description"].Translations["fr"]; text != "[fr] Mesa de roble" {
		t.Fatalf("expected french translation, got %q", text)
	}
}
