package locale

import (
	"context"
	"errors"
)

// ErrSettingsNotFound indicates no language has been persisted yet.
var ErrSettingsNotFound = errors.New("locale: settings not found")

// Settings is the persisted language choice.
type Settings struct {
	Language string
}

// Repository persists the chosen language and emits change notifications.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a settings mutation.
type ChangeEvent struct {
	Type     ChangeType
	Settings Settings
}
