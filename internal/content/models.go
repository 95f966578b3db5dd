package content

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntityRecord is the persisted form of an Entity.
type EntityRecord struct {
	bun.BaseModel `bun:"table:storefront_entities,alias:se"`

	ID         uuid.UUID      `bun:",pk,type:uuid"                                  json:"id"`
	Collection string         `bun:"collection,notnull"                             json:"collection"`
	Slug       string         `bun:"slug,notnull"                                   json:"slug"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"                            json:"metadata,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp"  json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp"  json:"updated_at"`

	Fields []*FieldRecord `bun:"rel:has-many,join:id=entity_id" json:"fields,omitempty"`
}

// FieldRecord stores one localizable field of an entity.
type FieldRecord struct {
	bun.BaseModel `bun:"table:storefront_entity_fields,alias:sef"`

	ID           uuid.UUID      `bun:",pk,type:uuid"                                  json:"id"`
	EntityID     uuid.UUID      `bun:"entity_id,notnull,type:uuid"                    json:"entity_id"`
	Name         string         `bun:"name,notnull"                                   json:"name"`
	Value        string         `bun:"value"                                          json:"value"`
	Translations TranslatedText `bun:"translations,type:jsonb"                        json:"translations,omitempty"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp"  json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp"  json:"updated_at"`
}

func recordFromEntity(e *Entity) (*EntityRecord, []*FieldRecord) {
	rec := &EntityRecord{
		ID:         e.ID,
		Collection: e.Collection,
		Slug:       e.Slug,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	fields := make([]*FieldRecord, 0, len(e.Fields))
	for _, name := range sortedFieldNames(e.Fields) {
		f := e.Fields[name]
		fields = append(fields, &FieldRecord{
			ID:           fieldID(e.ID, name),
			EntityID:     e.ID,
			Name:         name,
			Value:        f.Value,
			Translations: f.Translations.Clone(),
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		})
	}
	return rec, fields
}

func entityFromRecord(rec *EntityRecord, fields []*FieldRecord) Entity {
	e := Entity{
		ID:         rec.ID,
		Collection: rec.Collection,
		Slug:       rec.Slug,
		Metadata:   rec.Metadata,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		Fields:     make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		e.Fields[f.Name] = Field{
			Name:         f.Name,
			Value:        f.Value,
			Translations: f.Translations.Clone(),
		}
	}
	return e
}

// fieldID derives a stable row id so re-seeding the same entity is idempotent.
func fieldID(entityID uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(entityID, []byte(name))
}

func sortedFieldNames(fields map[string]Field) []string {
	return slices.Sorted(maps.Keys(fields))
}
