package locale

import (
	"context"
	"sync"
)

// MemoryRepository keeps the language choice in memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	settings    *Settings
	broadcaster *broadcaster[ChangeEvent]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		broadcaster: newBroadcaster[ChangeEvent](),
	}
}

func (r *MemoryRepository) Get(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return Settings{}, ErrSettingsNotFound
	}
	return *r.settings, nil
}

// Upsert stores settings. Writing the same value again emits nothing.
func (r *MemoryRepository) Upsert(_ context.Context, settings Settings) (Settings, error) {
	r.mu.Lock()
	previous := r.settings
	copied := settings
	r.settings = &copied
	r.mu.Unlock()

	switch {
	case previous == nil:
		r.broadcaster.broadcast(ChangeEvent{Type: ChangeCreated, Settings: settings})
	case *previous != settings:
		r.broadcaster.broadcast(ChangeEvent{Type: ChangeUpdated, Settings: settings})
	}
	return settings, nil
}

func (r *MemoryRepository) Delete(context.Context) error {
	r.mu.Lock()
	if r.settings == nil {
		r.mu.Unlock()
		return ErrSettingsNotFound
	}
	r.settings = nil
	r.mu.Unlock()

	r.broadcaster.broadcast(ChangeEvent{Type: ChangeDeleted})
	return nil
}

func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.subscribe(ctx, nil), nil
}
