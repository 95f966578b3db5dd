package interfaces

import "context"

// TranslationProvider translates one string into one target language.
//
// Implementations fail open: when the upstream service cannot produce a
// translation they return the input text unchanged and never report an
// error to the caller.
type TranslationProvider interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}
