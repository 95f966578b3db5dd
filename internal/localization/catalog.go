package localization

import (
	"slices"
	"strings"
)

// Language describes one configured display language.
type Language struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
	Name  string `json:"name" yaml:"name"`
	Flag  string `json:"flag" yaml:"flag"`
}

// Catalog is the ordered set of configured languages. The first entry is the
// default (source) language.
type Catalog struct {
	languages []Language
}

// NewCatalog returns a catalog over languages. Entries with a blank code or a
// repeated code are dropped. Missing labels default to the upper-cased code.
func NewCatalog(languages ...Language) Catalog {
	out := make([]Language, 0, len(languages))
	for _, lang := range languages {
		lang.Code = strings.ToLower(strings.TrimSpace(lang.Code))
		if lang.Code == "" || slices.ContainsFunc(out, func(l Language) bool { return l.Code == lang.Code }) {
			continue
		}
		if lang.Label == "" {
			lang.Label = strings.ToUpper(lang.Code)
		}
		if lang.Name == "" {
			lang.Name = lang.Label
		}
		out = append(out, lang)
	}
	return Catalog{languages: out}
}

// DefaultCatalog returns Spanish (default), English, French and Italian.
func DefaultCatalog() Catalog {
	return NewCatalog(
		Language{Code: "es", Label: "ES", Name: "Español", Flag: "🇪🇸"},
		Language{Code: "en", Label: "EN", Name: "English", Flag: "🇬🇧"},
		Language{Code: "fr", Label: "FR", Name: "Français", Flag: "🇫🇷"},
		Language{Code: "it", Label: "IT", Name: "Italiano", Flag: "🇮🇹"},
	)
}

// CatalogFromCodes builds a catalog from plain codes, filling display data
// from DefaultCatalog where available. defaultLanguage is moved to the front.
func CatalogFromCodes(defaultLanguage string, codes []string) Catalog {
	known := DefaultCatalog()
	ordered := Chain(strings.ToLower(defaultLanguage), lower(codes))
	languages := make([]Language, 0, len(ordered))
	for _, code := range ordered {
		if lang, ok := known.Lookup(code); ok {
			languages = append(languages, lang)
			continue
		}
		languages = append(languages, Language{Code: code})
	}
	return NewCatalog(languages...)
}

// Languages returns a copy of the configured languages.
func (c Catalog) Languages() []Language {
	return slices.Clone(c.languages)
}

// Codes returns language codes in catalog order.
func (c Catalog) Codes() []string {
	codes := make([]string, len(c.languages))
	for i, lang := range c.languages {
		codes[i] = lang.Code
	}
	return codes
}

// Default returns the default language code, or "" for an empty catalog.
func (c Catalog) Default() string {
	if len(c.languages) == 0 {
		return ""
	}
	return c.languages[0].Code
}

// Targets returns every code except the default, i.e. the languages the
// migration engine translates into.
func (c Catalog) Targets() []string {
	codes := c.Codes()
	if len(codes) == 0 {
		return nil
	}
	return codes[1:]
}

// Lookup finds a language by code, ignoring case.
func (c Catalog) Lookup(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, lang := range c.languages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// Locale returns a Locale for the catalog with current set to the default.
func (c Catalog) Locale() Locale {
	return NewLocale(c.Default(), c.Codes())
}

func lower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
