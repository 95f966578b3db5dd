package content

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewEntityRepository returns the go-repository-bun repository for entity rows.
func NewEntityRepository(db *bun.DB) repository.Repository[*EntityRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*EntityRecord]{
		NewRecord: func() *EntityRecord { return &EntityRecord{} },
		GetID: func(r *EntityRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *EntityRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *EntityRecord) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}
