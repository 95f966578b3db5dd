package fixtures

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/identity"
)

func TestLoadAllReadsMarkdownAndYAML(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/catalog"))

	docs, err := loader.LoadAll(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	wantSlugs := []string{"bathrooms", "kitchen-render", "oak-table", "linen-sofa", "wall-lamp"}
	if len(docs) != len(wantSlugs) {
		t.Fatalf("expected %d documents, got %d", len(wantSlugs), len(docs))
	}
	bySlug := map[string]Document{}
	for i, doc := range docs {
		if doc.Slug != wantSlugs[i] {
			t.Fatalf("document %d: expected slug %q, got %q", i, wantSlugs[i], doc.Slug)
		}
		bySlug[doc.Slug] = doc
	}

	oak := bySlug["oak-table"]
	if oak.Collection != content.CollectionProducts {
		t.Fatalf("expected products collection, got %q", oak.Collection)
	}
	if got := oak.Fields["description"].Value; got != "Mesa de comedor de roble macizo con acabado natural." {
		t.Fatalf("expected markdown body as description, got %q", got)
	}
	if got := oak.Fields["seoTitle"].Value; got != "Mesa de roble macizo" {
		t.Fatalf("unexpected seoTitle %q", got)
	}
	if _, ok := oak.Metadata["pricing"].(map[string]any); !ok {
		t.Fatalf("expected pricing metadata, got %#v", oak.Metadata)
	}

	render := bySlug["kitchen-render"]
	if got := render.Fields["title"].Value; got != "Cocina abierta con isla central" {
		t.Fatalf("expected body routed to title, got %q", got)
	}
	location := render.Fields["location"]
	if location.Value != "Madrid" || location.Translations["en"] != "Madrid" {
		t.Fatalf("unexpected location field %+v", location)
	}
	if _, ok := render.Fields["description"]; ok {
		t.Fatalf("body_field must redirect the body away from description")
	}

	lamp := bySlug["wall-lamp"]
	if lamp.Collection != content.CollectionProducts {
		t.Fatalf("expected entities to inherit collection, got %q", lamp.Collection)
	}
	if got := lamp.Fields["description"].Translations["en"]; got != "Brass wall sconce" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/invalid"))

	for _, name := range []string{"missing-fields.yaml", "bad-field.md"} {
		t.Run(name, func(t *testing.T) {
			_, err := loader.Load(name)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || len(verr.Issues) == 0 {
				t.Fatalf("expected schema issues, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.yaml": {Data: []byte("collection: [unterminated")},
		"notes.txt":   {Data: []byte("hello")},
	}
	loader := NewLoader(fsys)

	if _, err := loader.Load("broken.yaml"); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for malformed yaml, got %v", err)
	}
	if _, err := loader.Load("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	docs, err := NewLoader(os.DirFS("testdata/catalog")).LoadAll(ctx, ".")
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	store := content.NewMemoryStore()
	first, err := Seed(ctx, store, docs, nil)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if first.Created != len(docs) || first.Existing != 0 {
		t.Fatalf("unexpected first seed result %+v", first)
	}

	second, err := Seed(ctx, store, docs, nil)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if second.Created != 0 || second.Existing != len(docs) {
		t.Fatalf("unexpected second seed result %+v", second)
	}

	sofa, err := store.GetBySlug(ctx, content.CollectionProducts, "linen-sofa")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if sofa.ID != identity.EntityUUID(content.CollectionProducts, "linen-sofa") {
		t.Fatalf("expected deterministic id, got %s", sofa.ID)
	}
	if sofa.Fields["seoTitle"].Value != "Sofá de lino" {
		t.Fatalf("unexpected stored field %+v", sofa.Fields["seoTitle"])
	}
}
