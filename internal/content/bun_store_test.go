package content

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/pkg/testsupport"
)

func TestBunStoreCreateRollsBackOnFieldFailure(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := CreateSchema(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	store := NewBunStore(db)

	id := uuid.New()
	blocking := &FieldRecord{
		ID:       fieldID(id, "description"),
		EntityID: uuid.New(),
		Name:     "description",
	}
	if _, err := db.NewInsert().Model(blocking).Exec(ctx); err != nil {
		t.Fatalf("insert blocking field: %v", err)
	}

	entity := &Entity{
		ID:         id,
		Collection: CollectionProducts,
		Slug:       "mesa-roble",
		Fields: map[string]Field{
			"description": {Name: "description", Value: "Mesa de roble"},
		},
	}
	if _, err := store.Create(ctx, entity); err == nil {
		t.Fatal("expected create to fail on the conflicting field row")
	}
	if _, err := store.GetBySlug(ctx, CollectionProducts, "mesa-roble"); !IsNotFound(err) {
		t.Fatalf("expected no entity row after rollback, got %v", err)
	}

	if _, err := db.NewDelete().Model(blocking).WherePK().Exec(ctx); err != nil {
		t.Fatalf("delete blocking field: %v", err)
	}
	created, err := store.Create(ctx, entity)
	if err != nil {
		t.Fatalf("retry create: %v", err)
	}
	if f, ok := created.Field("description"); !ok || f.Value != "Mesa de roble" {
		t.Fatalf("expected description field after retry, got %+v", created.Fields)
	}
}
