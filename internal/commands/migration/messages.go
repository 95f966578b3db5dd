package migrationcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	migrateCollectionMessageType = "storefront.migration.migrate_collection"
	migrateEntityMessageType     = "storefront.migration.migrate_entity"
	retranslateMessageType       = "storefront.migration.retranslate"
	migrateAllMessageType        = "storefront.migration.migrate_all"
)

// MigrateCollectionCommand fills missing translations for one collection.
// Empty Fields or Languages fall back to the configured preset and targets.
type MigrateCollectionCommand struct {
	Collection string   `json:"collection"`
	Fields     []string `json:"fields,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Force      bool     `json:"force,omitempty"`
}

// Type implements command.Message.
func (MigrateCollectionCommand) Type() string { return migrateCollectionMessageType }

// Validate ensures a collection is named.
func (cmd MigrateCollectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank(
			"storefront.migration.collection_required", "collection is required",
		))),
	)
}

// RetranslateCommand re-translates every entity of a collection, replacing
// existing translations.
type RetranslateCommand struct {
	Collection string   `json:"collection"`
	Fields     []string `json:"fields,omitempty"`
	Languages  []string `json:"languages,omitempty"`
}

// Type implements command.Message.
func (RetranslateCommand) Type() string { return retranslateMessageType }

// Validate ensures a collection is named.
func (cmd RetranslateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank(
			"storefront.migration.collection_required", "collection is required",
		))),
	)
}

// MigrateEntityCommand migrates a single entity by id.
type MigrateEntityCommand struct {
	Collection string    `json:"collection"`
	EntityID   uuid.UUID `json:"entity_id"`
	Fields     []string  `json:"fields,omitempty"`
	Languages  []string  `json:"languages,omitempty"`
	Force      bool      `json:"force,omitempty"`
}

// Type implements command.Message.
func (MigrateEntityCommand) Type() string { return migrateEntityMessageType }

// Validate ensures the collection and entity id are present.
func (cmd MigrateEntityCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collection, validation.Required, validation.By(notBlank(
			"storefront.migration.collection_required", "collection is required",
		))),
		validation.Field(&cmd.EntityID, validation.By(func(value any) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("storefront.migration.entity_id_required", "entity id is required")
			}
			return nil
		})),
	)
}

// MigrateAllCommand migrates every configured collection in turn. It is the
// payload scheduled by the migration cron job. An empty Collections list
// means every preset.
type MigrateAllCommand struct {
	Collections []string `json:"collections,omitempty"`
	Force       bool     `json:"force,omitempty"`
}

// Type implements command.Message.
func (MigrateAllCommand) Type() string { return migrateAllMessageType }

// Validate rejects blank collection names.
func (cmd MigrateAllCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Collections, validation.Each(validation.By(notBlank(
			"storefront.migration.collection_blank", "collection names cannot be blank",
		)))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
