package localization

import "golang.org/x/text/language"

// Negotiate picks the supported language that best matches an Accept-Language
// header value. defaultLanguage is returned when the header is empty, cannot
// be parsed, or matches nothing.
func Negotiate(acceptLanguage string, supported []string, defaultLanguage string) string {
	codes := Chain(defaultLanguage, supported)
	if len(codes) == 0 {
		return defaultLanguage
	}

	tags := make([]language.Tag, 0, len(codes))
	valid := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, code)
	}
	if len(tags) == 0 {
		return defaultLanguage
	}

	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return valid[0]
	}

	_, index, confidence := language.NewMatcher(tags).Match(prefs...)
	if confidence == language.No || index < 0 || index >= len(valid) {
		return valid[0]
	}
	return valid[index]
}
