package content

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and the "memory" storage driver.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*Entity
	order    []uuid.UUID
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[uuid.UUID]*Entity),
		now:      time.Now,
	}
}

// Create stores a copy of entity, assigning an ID when missing.
func (m *MemoryStore) Create(_ context.Context, entity *Entity) (*Entity, error) {
	if err := validateEntity(entity); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.entities {
		if existing.Collection == entity.Collection && existing.Slug == entity.Slug {
			return nil, ErrDuplicateSlug
		}
	}

	record := entity.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Fields == nil {
		record.Fields = map[string]Field{}
	}
	now := m.now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if _, exists := m.entities[record.ID]; !exists {
		m.order = append(m.order, record.ID)
	}
	m.entities[record.ID] = &record

	out := record.Clone()
	return &out, nil
}

// List returns the collection in insertion order.
func (m *MemoryStore) List(_ context.Context, collection string) ([]Entity, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entity, 0, len(m.order))
	for _, id := range m.order {
		if e := m.entities[id]; e.Collection == collection {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, collection string, id uuid.UUID) (*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[id]
	if !ok || e.Collection != collection {
		return nil, entityNotFound(collection, id.String())
	}
	out := e.Clone()
	return &out, nil
}

func (m *MemoryStore) GetBySlug(_ context.Context, collection, slug string) (*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if e := m.entities[id]; e.Collection == collection && e.Slug == slug {
			out := e.Clone()
			return &out, nil
		}
	}
	return nil, entityNotFound(collection, slug)
}

// Update merge-writes patch into the stored entity.
func (m *MemoryStore) Update(_ context.Context, collection string, id uuid.UUID, patch Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[id]
	if !ok || e.Collection != collection {
		return entityNotFound(collection, id.String())
	}
	if len(patch) == 0 {
		return nil
	}
	for name, translations := range patch {
		f := e.Fields[name]
		f.Name = name
		f.Translations = translations.Clone()
		e.Fields[name] = f
	}
	e.UpdatedAt = m.now().UTC()
	return nil
}

func validateEntity(entity *Entity) error {
	if entity == nil || strings.TrimSpace(entity.Collection) == "" {
		return ErrCollectionRequired
	}
	if strings.TrimSpace(entity.Slug) == "" {
		return ErrSlugRequired
	}
	return nil
}
