package fixtures

import (
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/identity"
)

// Document is one entity read from a fixture file.
type Document struct {
	Source     string
	Collection string
	Slug       string
	Fields     map[string]content.Field
	Metadata   map[string]any
}

// Entity converts the document into a store entity with a deterministic id.
func (d Document) Entity() content.Entity {
	fields := make(map[string]content.Field, len(d.Fields))
	for name, f := range d.Fields {
		f.Name = name
		f.Translations = f.Translations.Clone()
		fields[name] = f
	}
	return content.Entity{
		ID:         identity.EntityUUID(d.Collection, d.Slug),
		Collection: d.Collection,
		Slug:       d.Slug,
		Fields:     fields,
		Metadata:   maps.Clone(d.Metadata),
	}
}

// documentFromRaw builds a Document from a schema-validated raw map.
func documentFromRaw(source string, raw map[string]any) (Document, error) {
	collection, _ := raw["collection"].(string)
	rawSlug, _ := raw["slug"].(string)

	normalized, err := slug.Normalize(rawSlug)
	if err != nil || normalized == "" {
		return Document{}, fmt.Errorf("%s: slug %q cannot be normalized", source, rawSlug)
	}

	doc := Document{
		Source:     source,
		Collection: strings.TrimSpace(collection),
		Slug:       normalized,
		Fields:     map[string]content.Field{},
	}
	if meta, ok := raw["metadata"].(map[string]any); ok {
		doc.Metadata = maps.Clone(meta)
	}

	fields, _ := raw["fields"].(map[string]any)
	for name, value := range fields {
		field := content.Field{Name: name}
		switch typed := value.(type) {
		case string:
			field.Value = strings.TrimSpace(typed)
		case map[string]any:
			field.Value, _ = typed["value"].(string)
			field.Value = strings.TrimSpace(field.Value)
			if translations, ok := typed["translations"].(map[string]any); ok {
				field.Translations = content.TranslatedText{}
				for code, text := range translations {
					if s, ok := text.(string); ok {
						field.Translations[strings.ToLower(code)] = s
					}
				}
			}
		}
		doc.Fields[name] = field
	}
	return doc, nil
}
