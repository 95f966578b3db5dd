package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const entityNamespace = "storefront_entity"

// BunStore implements Store on top of bun. Single-row reads go through
// go-repository-bun (optionally cached); inserts, collection scans and merge
// updates use bun queries directly inside transactions.
type BunStore struct {
	db       *bun.DB
	entities repository.Repository[*EntityRecord]

	cacheService  cache.CacheService
	cachePrefixes []string
	now           func() time.Time
}

var _ Store = (*BunStore)(nil)

// NewBunStore returns an uncached store.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache wraps the entity repository with go-repository-cache when both
// cacheService and serializer are provided.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStore {
	entities := NewEntityRepository(db)
	store := &BunStore{db: db, now: time.Now}

	if cacheService != nil && serializer != nil {
		entities = repositorycache.New(entities, cacheService, serializer)
		store.cacheService = cacheService
		store.cachePrefixes = []string{cachePrefix(entityNamespace)}
	}
	store.entities = entities
	return store
}

func (s *BunStore) Create(ctx context.Context, entity *Entity) (*Entity, error) {
	if err := validateEntity(entity); err != nil {
		return nil, err
	}
	if _, err := s.GetBySlug(ctx, entity.Collection, entity.Slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !IsNotFound(err) {
		return nil, err
	}

	record := entity.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := s.now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	row, fieldRows := recordFromEntity(&record)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("create entity %s/%s: %w", record.Collection, record.Slug, err)
		}
		for _, f := range fieldRows {
			if _, err := tx.NewInsert().Model(f).Exec(ctx); err != nil {
				return fmt.Errorf("create field %s on %s: %w", f.Name, record.Slug, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return s.Get(ctx, record.Collection, record.ID)
}

func (s *BunStore) List(ctx context.Context, collection string) ([]Entity, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	var rows []*EntityRecord
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Fields", orderFields).
		Where("?TableAlias.collection = ?", collection).
		OrderExpr("?TableAlias.created_at ASC, ?TableAlias.slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	out := make([]Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, entityFromRecord(row, row.Fields))
	}
	return out, nil
}

func (s *BunStore) Get(ctx context.Context, collection string, id uuid.UUID) (*Entity, error) {
	row, err := s.entities.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, collection, id.String())
	}
	if row.Collection != collection {
		return nil, entityNotFound(collection, id.String())
	}

	var fields []*FieldRecord
	err = s.db.NewSelect().
		Model(&fields).
		Where("?TableAlias.entity_id = ?", id).
		OrderExpr("?TableAlias.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fields for %s: %w", id, err)
	}

	e := entityFromRecord(row, fields)
	return &e, nil
}

func (s *BunStore) GetBySlug(ctx context.Context, collection, slug string) (*Entity, error) {
	row := new(EntityRecord)
	err := s.db.NewSelect().
		Model(row).
		Relation("Fields", orderFields).
		Where("?TableAlias.collection = ?", collection).
		Where("?TableAlias.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entityNotFound(collection, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, slug, err)
	}
	e := entityFromRecord(row, row.Fields)
	return &e, nil
}

// Update writes every patched field inside one transaction so an entity is
// either fully updated or left as it was.
func (s *BunStore) Update(ctx context.Context, collection string, id uuid.UUID, patch Patch) error {
	now := s.now().UTC()

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*EntityRecord)(nil)).
			Where("?TableAlias.id = ?", id).
			Where("?TableAlias.collection = ?", collection).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check entity %s: %w", id, err)
		}
		if !exists {
			return entityNotFound(collection, id.String())
		}
		if len(patch) == 0 {
			return nil
		}

		var existing []*FieldRecord
		if err := tx.NewSelect().
			Model(&existing).
			Where("?TableAlias.entity_id = ?", id).
			Scan(ctx); err != nil {
			return fmt.Errorf("load fields for %s: %w", id, err)
		}
		byName := make(map[string]*FieldRecord, len(existing))
		for _, f := range existing {
			byName[f.Name] = f
		}

		for _, name := range patch.FieldNames() {
			translations := patch[name].Clone()
			if f, ok := byName[name]; ok {
				f.Translations = translations
				f.UpdatedAt = now
				if _, err := tx.NewUpdate().
					Model(f).
					Column("translations", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return fmt.Errorf("update field %s: %w", name, err)
				}
				continue
			}
			f := &FieldRecord{
				ID:           fieldID(id, name),
				EntityID:     id,
				Name:         name,
				Translations: translations,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if _, err := tx.NewInsert().Model(f).Exec(ctx); err != nil {
				return fmt.Errorf("insert field %s: %w", name, err)
			}
		}

		_, err = tx.NewUpdate().
			Model((*EntityRecord)(nil)).
			Set("updated_at = ?", now).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return s.InvalidateCache(ctx)
}

// InvalidateCache drops cached entity and field reads. It is a no-op without cache.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	for _, prefix := range s.cachePrefixes {
		if err := s.cacheService.DeleteByPrefix(ctx, prefix); err != nil {
			return fmt.Errorf("invalidate %s: %w", prefix, err)
		}
	}
	return nil
}

// CreateSchema creates the entity and field tables when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{(*EntityRecord)(nil), (*FieldRecord)(nil)}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	_, err := db.NewCreateIndex().
		Model((*EntityRecord)(nil)).
		Index("storefront_entities_collection_slug_idx").
		Column("collection", "slug").
		Unique().
		IfNotExists().
		Exec(ctx)
	return err
}

func orderFields(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.name ASC")
}

func mapRepositoryError(err error, collection, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return entityNotFound(collection, key)
	}
	return fmt.Errorf("entity repository error: %w", err)
}

func cachePrefix(namespace string) string {
	return namespace + cache.KeySeparator
}
