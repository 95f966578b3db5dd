package localization

import (
	"slices"
	"strings"

	"github.com/goliatone/go-storefront/internal/content"
)

// Locale is the explicit language context handed to every resolve call.
type Locale struct {
	Current   string   `json:"current"`
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}

// NewLocale builds a Locale whose current language is the default one.
func NewLocale(defaultLanguage string, supported []string) Locale {
	return Locale{
		Current:   defaultLanguage,
		Default:   defaultLanguage,
		Supported: slices.Clone(supported),
	}
}

// With returns a copy of l with Current set to code.
func (l Locale) With(code string) Locale {
	out := l
	out.Current = strings.TrimSpace(code)
	out.Supported = slices.Clone(l.Supported)
	return out
}

// Supports reports whether code is the default or one of the supported languages.
func (l Locale) Supports(code string) bool {
	return slices.Contains(l.Chain(), strings.TrimSpace(code))
}

// Chain returns the fallback chain of l.
func (l Locale) Chain() []string {
	return Chain(l.Default, l.Supported)
}

// Resolve resolves translations for l.
func (l Locale) Resolve(translations map[string]string, fallback string) string {
	return Resolve(translations, l.Current, l.Supported, l.Default, fallback)
}

// ResolveField resolves a content field, using its plain value as fallback.
func (l Locale) ResolveField(field content.Field) string {
	return l.Resolve(field.Translations, field.Value)
}

// ResolveEntityField resolves the named field of e, or returns fallback
// when e has no such field.
func (l Locale) ResolveEntityField(e content.Entity, name, fallback string) string {
	field, ok := e.Field(name)
	if !ok {
		return fallback
	}
	if strings.TrimSpace(field.Value) == "" {
		field.Value = fallback
	}
	return l.ResolveField(field)
}

// Equal reports whether two locales hold the same values.
func (l Locale) Equal(other Locale) bool {
	return l.Current == other.Current &&
		l.Default == other.Default &&
		slices.Equal(l.Supported, other.Supported)
}
