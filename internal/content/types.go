package content

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TranslatedText maps a language code to the text for that language.
// A missing key means "not translated yet". Blank values are treated the
// same way by every lookup helper.
type TranslatedText map[string]string

// Text returns the trimmed entry for code when it is not blank.
func (t TranslatedText) Text(code string) (string, bool) {
	if t == nil {
		return "", false
	}
	value := strings.TrimSpace(t[code])
	if value == "" {
		return "", false
	}
	return value, true
}

// Has reports whether code has a non-blank entry.
func (t TranslatedText) Has(code string) bool {
	_, ok := t.Text(code)
	return ok
}

// Clone returns an independent copy. Cloning nil yields an empty map.
func (t TranslatedText) Clone() TranslatedText {
	out := make(TranslatedText, len(t))
	maps.Copy(out, t)
	return out
}

// Merge returns a copy of t with every non-blank entry of other applied on top.
func (t TranslatedText) Merge(other TranslatedText) TranslatedText {
	out := t.Clone()
	for code, value := range other {
		if strings.TrimSpace(value) != "" {
			out[code] = value
		}
	}
	return out
}

// Languages returns the codes holding non-blank entries, sorted.
func (t TranslatedText) Languages() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		if t.Has(code) {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}

// Field is a localizable field on an entity. Value is the plain text authored
// in the source language and doubles as the fallback for display.
type Field struct {
	Name         string         `json:"name"`
	Value        string         `json:"value"`
	Translations TranslatedText `json:"translations,omitempty"`
}

// Entity is a record owned by the content store. The localization pipeline
// only reads it and writes translation maps back through Store.Update.
type Entity struct {
	ID         uuid.UUID        `json:"id"`
	Collection string           `json:"collection"`
	Slug       string           `json:"slug"`
	Fields     map[string]Field `json:"fields"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Field returns the named field.
func (e Entity) Field(name string) (Field, bool) {
	if e.Fields == nil {
		return Field{}, false
	}
	f, ok := e.Fields[name]
	return f, ok
}

// Clone deep copies the entity including every translation map.
func (e Entity) Clone() Entity {
	out := e
	if e.Fields != nil {
		out.Fields = make(map[string]Field, len(e.Fields))
		for name, f := range e.Fields {
			f.Translations = f.Translations.Clone()
			out.Fields[name] = f
		}
	}
	out.Metadata = maps.Clone(e.Metadata)
	return out
}

// Patch carries replacement translation maps keyed by field name. Fields not
// present in the patch are left untouched by Store.Update.
type Patch map[string]TranslatedText

// FieldNames returns the patched field names in sorted order.
func (p Patch) FieldNames() []string {
	return slices.Sorted(maps.Keys(p))
}
