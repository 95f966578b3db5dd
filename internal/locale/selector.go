package locale

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-storefront/internal/localization"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// ErrUnsupportedLanguage is returned when a language is not in the catalog.
var ErrUnsupportedLanguage = errors.New("locale: unsupported language")

const unsupportedLanguageCode = "LOCALE_UNSUPPORTED_LANGUAGE"

// Selector owns the active Locale. Every consumer reads it from Current or
// Subscribe instead of holding global state.
type Selector struct {
	catalog localization.Catalog
	repo    Repository
	logger  interfaces.Logger

	// writeMu orders persist, apply and broadcast so the last value
	// subscribers see is the value Current reports.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current localization.Locale

	updates *broadcaster[localization.Locale]
}

type SelectorOption func(*Selector)

// WithRepository persists the chosen language. Without one the choice lives
// only for the process lifetime.
func WithRepository(repo Repository) SelectorOption {
	return func(s *Selector) {
		s.repo = repo
	}
}

func WithLogger(logger interfaces.Logger) SelectorOption {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSelector starts on the catalog default language.
func NewSelector(catalog localization.Catalog, opts ...SelectorOption) *Selector {
	s := &Selector{
		catalog: catalog,
		logger:  logging.NoOp(),
		current: catalog.Locale(),
		updates: newBroadcaster[localization.Locale](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the languages the selector can switch between.
func (s *Selector) Catalog() localization.Catalog {
	return s.catalog
}

// Current returns a copy of the active locale.
func (s *Selector) Current() localization.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.With(s.current.Current)
}

// Load restores the persisted language. A missing or unsupported value keeps
// the default.
func (s *Selector) Load(ctx context.Context) (localization.Locale, error) {
	if s.repo == nil {
		return s.Current(), nil
	}
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, ErrSettingsNotFound) {
		return s.Current(), nil
	}
	if err != nil {
		return s.Current(), fmt.Errorf("locale: load settings: %w", err)
	}
	lang, ok := s.catalog.Lookup(settings.Language)
	if !ok {
		s.logger.WithContext(ctx).Warn("locale.load.unsupported", "language", settings.Language)
		return s.Current(), nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.apply(lang.Code), nil
}

// SetLanguage switches the active language, persists it when a repository is
// configured and notifies subscribers.
func (s *Selector) SetLanguage(ctx context.Context, code string) (localization.Locale, error) {
	lang, ok := s.catalog.Lookup(code)
	if !ok {
		return s.Current(), goerrors.Wrap(
			fmt.Errorf("%w: %q", ErrUnsupportedLanguage, strings.TrimSpace(code)),
			goerrors.CategoryValidation,
			"language is not supported",
		).WithTextCode(unsupportedLanguageCode)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.repo != nil {
		if _, err := s.repo.Upsert(ctx, Settings{Language: lang.Code}); err != nil {
			return s.Current(), fmt.Errorf("locale: persist language: %w", err)
		}
	}
	locale := s.apply(lang.Code)
	s.logger.WithContext(ctx).Info("locale.language.changed", "language", lang.Code)
	return locale, nil
}

// Subscribe delivers the current locale immediately and again after every
// change. The channel closes when ctx is done.
func (s *Selector) Subscribe(ctx context.Context) <-chan localization.Locale {
	return s.updates.subscribe(ctx, s.Current)
}

// apply must be called with writeMu held.
func (s *Selector) apply(code string) localization.Locale {
	s.mu.Lock()
	s.current = s.current.With(code)
	next := s.current.With(code)
	s.mu.Unlock()

	s.updates.broadcast(next)
	return next
}
