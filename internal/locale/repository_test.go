package locale

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-storefront/pkg/testsupport"
)

func TestRepositories_CRUDEvents(t *testing.T) {
	factories := map[string]func(t *testing.T) Repository{
		"memory": func(*testing.T) Repository { return NewMemoryRepository() },
		"bun": func(t *testing.T) Repository {
			db := testsupport.NewBunDB(t)
			if err := CreateSchema(context.Background(), db); err != nil {
				t.Fatalf("create schema: %v", err)
			}
			return NewBunRepository(db)
		},
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			if _, err := repo.Get(ctx); !errors.Is(err, ErrSettingsNotFound) {
				t.Fatalf("expected ErrSettingsNotFound, got %v", err)
			}

			events, err := repo.Subscribe(ctx)
			if err != nil {
				t.Fatalf("Subscribe() error = %v", err)
			}

			if _, err := repo.Upsert(ctx, Settings{Language: "en"}); err != nil {
				t.Fatalf("Upsert() create error = %v", err)
			}
			assertChange(t, events, ChangeCreated, "en")

			if _, err := repo.Upsert(ctx, Settings{Language: "en"}); err != nil {
				t.Fatalf("Upsert() same value error = %v", err)
			}
			assertNoChange(t, events)

			if _, err := repo.Upsert(ctx, Settings{Language: "fr"}); err != nil {
				t.Fatalf("Upsert() update error = %v", err)
			}
			assertChange(t, events, ChangeUpdated, "fr")

			fetched, err := repo.Get(ctx)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if fetched.Language != "fr" {
				t.Fatalf("Get() returned %+v", fetched)
			}

			if err := repo.Delete(ctx); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			assertChange(t, events, ChangeDeleted, "")

			if err := repo.Delete(ctx); !errors.Is(err, ErrSettingsNotFound) {
				t.Fatalf("expected ErrSettingsNotFound on second delete, got %v", err)
			}
		})
	}
}

func assertChange(t *testing.T, events <-chan ChangeEvent, want ChangeType, language string) {
	t.Helper()
	select {
	case evt := <-events:
		if evt.Type != want {
			t.Fatalf("expected event %s, got %s", want, evt.Type)
		}
		if evt.Settings.Language != language {
			t.Fatalf("expected language %q, got %q", language, evt.Settings.Language)
		}
	default:
		t.Fatalf("expected %s event", want)
	}
}

func assertNoChange(t *testing.T, events <-chan ChangeEvent) {
	t.Helper()
	select {
	case evt := <-events:
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}
