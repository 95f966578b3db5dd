package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCollectionRequired = errors.New("content: collection is required")
	ErrSlugRequired       = errors.New("content: slug is required")
	ErrDuplicateSlug      = errors.New("content: slug already exists in collection")
)

// Store is the document API the localization pipeline consumes.
type Store interface {
	// List returns every entity in collection in a stable order.
	List(ctx context.Context, collection string) ([]Entity, error)
	// Get returns *NotFoundError when id does not resolve inside collection.
	Get(ctx context.Context, collection string, id uuid.UUID) (*Entity, error)
	GetBySlug(ctx context.Context, collection, slug string) (*Entity, error)
	Create(ctx context.Context, entity *Entity) (*Entity, error)
	// Update replaces the translation maps of the fields named in patch.
	// Fields outside the patch are never modified.
	Update(ctx context.Context, collection string, id uuid.UUID, patch Patch) error
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func entityNotFound(collection, key string) error {
	return &NotFoundError{Resource: "entity", Key: collection + "/" + key}
}
