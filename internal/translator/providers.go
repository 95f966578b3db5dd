package translator

import (
	"context"

	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Func adapts a plain function into a TranslationProvider.
type Func func(ctx context.Context, text, targetLanguage string) string

func (f Func) Translate(ctx context.Context, text, targetLanguage string) string {
	if f == nil {
		return text
	}
	return f(ctx, text, targetLanguage)
}

// Identity returns every text unchanged. It backs dry runs and the
// "identity" provider setting.
func Identity() interfaces.TranslationProvider {
	return Func(func(_ context.Context, text, _ string) string { return text })
}
