package localization

import "strings"

// Resolve picks the display text for a field.
//
// The entry for current wins when it is not blank. Otherwise the fallback
// chain is scanned (defaultLanguage first, then supported in declared order)
// and the first non-blank entry is returned. Codes outside the chain are
// ignored. fallback is returned when translations is empty or nothing in the
// chain is usable. Returned values are trimmed.
func Resolve(translations map[string]string, current string, supported []string, defaultLanguage, fallback string) string {
	if len(translations) == 0 {
		return fallback
	}
	if value := strings.TrimSpace(translations[current]); value != "" {
		return value
	}
	for _, code := range Chain(defaultLanguage, supported) {
		if value := strings.TrimSpace(translations[code]); value != "" {
			return value
		}
	}
	return fallback
}

// Chain returns the fallback order: defaultLanguage, then every supported code
// in order, without blanks or duplicates.
func Chain(defaultLanguage string, supported []string) []string {
	chain := make([]string, 0, len(supported)+1)
	seen := make(map[string]struct{}, len(supported)+1)
	add := func(code string) {
		code = strings.TrimSpace(code)
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}
	add(defaultLanguage)
	for _, code := range supported {
		add(code)
	}
	return chain
}
