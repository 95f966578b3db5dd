package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/translator"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// DefaultSourceLanguage is the language entity values are authored in.
const DefaultSourceLanguage = "es"

// Engine walks a collection entity by entity, fills the missing translations
// of the requested fields and merge-writes them back to the store.
type Engine struct {
	store    content.Store
	provider interfaces.TranslationProvider
	limiter  Limiter
	source   string
	logger   interfaces.Logger
	sink     EventSink
	now      func() time.Time
	newRunID func() uuid.UUID
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimiter paces provider calls. Defaults to NewIntervalLimiter with the
// default interval.
func WithLimiter(limiter Limiter) Option {
	return func(e *Engine) {
		if limiter != nil {
			e.limiter = limiter
		}
	}
}

// WithSourceLanguage sets the language entity values are authored in.
func WithSourceLanguage(code string) Option {
	return func(e *Engine) {
		if code = strings.ToLower(strings.TrimSpace(code)); code != "" {
			e.source = code
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEventSink receives progress events. Use MultiSink to attach several.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// NewEngine builds an engine over store. A nil provider falls back to the
// identity translator.
func NewEngine(store content.Store, provider interfaces.TranslationProvider, opts ...Option) *Engine {
	if store == nil {
		panic("migration: content store cannot be nil")
	}
	if provider == nil {
		provider = translator.Identity()
	}
	e := &Engine{
		store:    store,
		provider: provider,
		limiter:  NewIntervalLimiter(DefaultCallInterval, DefaultBurst),
		source:   DefaultSourceLanguage,
		logger:   logging.NoOp(),
		now:      time.Now,
		newRunID: uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SourceLanguage returns the configured source language.
func (e *Engine) SourceLanguage() string {
	return e.source
}

// MigrateCollection lists req.Collection and migrates every entity in it.
func (e *Engine) MigrateCollection(ctx context.Context, req Request) (*RunStats, error) {
	req, err := e.prepare(req)
	if err != nil {
		return nil, err
	}
	entities, err := e.store.List(ctx, req.Collection)
	if err != nil {
		return nil, fmt.Errorf("migration: list %s: %w", req.Collection, err)
	}
	return e.run(ctx, req, entities)
}

// Retranslate migrates the whole collection ignoring existing translations.
func (e *Engine) Retranslate(ctx context.Context, req Request) (*RunStats, error) {
	req.Force = true
	return e.MigrateCollection(ctx, req)
}

// MigrateEntities migrates the supplied entities in order. They are treated as
// members of req.Collection.
func (e *Engine) MigrateEntities(ctx context.Context, req Request, entities []content.Entity) (*RunStats, error) {
	req, err := e.prepare(req)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, req, entities)
}

// MigrateEntity migrates a single entity. A missing id yields an error
// matching ErrEntityNotFound.
func (e *Engine) MigrateEntity(ctx context.Context, req Request, id uuid.UUID) (*RunStats, error) {
	req, err := e.prepare(req)
	if err != nil {
		return nil, err
	}
	entity, err := e.store.Get(ctx, req.Collection, id)
	if err != nil {
		if content.IsNotFound(err) {
			return nil, entityNotFound(err)
		}
		return nil, fmt.Errorf("migration: get %s/%s: %w", req.Collection, id, err)
	}
	return e.run(ctx, req, []content.Entity{*entity})
}

func (e *Engine) prepare(req Request) (Request, error) {
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// run returns the partial stats together with ctx.Err() when cancelled
// between entities.
func (e *Engine) run(ctx context.Context, req Request, entities []content.Entity) (*RunStats, error) {
	stats := &RunStats{
		RunID:      e.newRunID(),
		Collection: req.Collection,
		Total:      len(entities),
		StartedAt:  e.now(),
	}
	logger := logging.WithRunContext(e.logger, stats.RunID.String(), req.Collection, "")
	// events and entity work outlive a cancellation that arrives mid-entity
	detached := logging.ContextWithFields(context.WithoutCancel(ctx), map[string]any{
		"run_id":     stats.RunID.String(),
		"collection": req.Collection,
	})

	logger.Info("migration.run.started",
		"entities", stats.Total,
		"fields", req.Fields,
		"languages", req.Languages,
		"force", req.Force,
	)
	e.emit(detached, logger, stats, Event{Type: EventRunStarted})

	for i, entity := range entities {
		if err := ctx.Err(); err != nil {
			stats.Cancelled = true
			stats.FinishedAt = e.now()
			logger.Warn("migration.run.cancelled", "processed", stats.Processed(), "total", stats.Total, "error", err)
			e.emit(detached, logger, stats, Event{Type: EventRunCancelled})
			return stats, err
		}
		outcome := e.migrate(detached, logger, req, stats, i+1, entity)
		stats.record(outcome)
		e.emit(detached, logger, stats, outcomeEvent(outcome, i+1, stats.Total))
	}

	stats.FinishedAt = e.now()
	logger.Info("migration.run.completed",
		"success", stats.Success,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"elapsed", stats.Duration(),
	)
	e.emit(detached, logger, stats, Event{Type: EventRunCompleted})
	return stats, nil
}

func (e *Engine) migrate(ctx context.Context, logger interfaces.Logger, req Request, stats *RunStats, index int, entity content.Entity) EntityOutcome {
	run := newEntityRun(entity.ID, entity.Slug)
	e.emit(ctx, logger, stats, Event{
		Type:     EventEntityStarted,
		EntityID: entity.ID,
		Slug:     entity.Slug,
		Index:    index,
		Total:    stats.Total,
	})

	if !req.Force && alreadyTranslated(entity, req) {
		return e.finish(logger, run, StateSkipped, ReasonAlreadyTranslated, nil)
	}

	fields := translatableFields(entity, req.Fields)
	if len(fields) == 0 {
		return e.finish(logger, run, StateSkipped, ReasonNoSource, nil)
	}
	if err := run.advance(StateTranslating); err != nil {
		logger.Error("migration.entity.transition_failed", "entity_id", entity.ID, "error", err)
		return run.outcome
	}

	patch := make(content.Patch, len(fields))
	for _, field := range fields {
		translations := field.Translations.Clone()
		if !translations.Has(e.source) {
			translations[e.source] = field.Value
		}
		for _, lang := range req.Languages {
			if lang == e.source {
				continue
			}
			if err := e.limiter.Wait(ctx); err != nil {
				return e.finish(logger, run, StateFailed, "", fmt.Errorf("rate limiter: %w", err))
			}
			translations[lang] = e.provider.Translate(ctx, field.Value, lang)
			e.emit(ctx, logger, stats, Event{
				Type:     EventFieldTranslated,
				EntityID: entity.ID,
				Slug:     entity.Slug,
				Field:    field.Name,
				Language: lang,
				Index:    index,
				Total:    stats.Total,
			})
		}
		patch[field.Name] = translations
	}

	if err := e.store.Update(ctx, req.Collection, entity.ID, patch); err != nil {
		return e.finish(logger, run, StateFailed, "", err)
	}
	run.outcome.Fields = patch.FieldNames()
	return e.finish(logger, run, StateSuccess, "", nil)
}

func (e *Engine) finish(logger interfaces.Logger, run *entityRun, next State, reason string, cause error) EntityOutcome {
	if err := run.advance(next); err != nil {
		logger.Error("migration.entity.transition_failed", "entity_id", run.outcome.EntityID, "error", err)
		return run.outcome
	}
	run.outcome.Reason = reason
	if cause != nil {
		run.outcome.Err = cause.Error()
	}
	return run.outcome
}

func (e *Engine) emit(ctx context.Context, logger interfaces.Logger, stats *RunStats, event Event) {
	if e.sink == nil {
		return
	}
	event.RunID = stats.RunID
	event.Collection = stats.Collection
	event.Stats = stats.snapshot()
	if event.Total == 0 {
		event.Total = stats.Total
	}
	event.OccurredAt = e.now()
	if err := e.sink.Record(ctx, event); err != nil {
		logger.Debug("migration.event.record_failed", "event", event.Type, "error", err)
	}
}

func outcomeEvent(outcome EntityOutcome, index, total int) Event {
	event := Event{
		EntityID: outcome.EntityID,
		Slug:     outcome.Slug,
		Index:    index,
		Total:    total,
		Reason:   outcome.Reason,
		Err:      outcome.Err,
	}
	switch outcome.State {
	case StateSkipped:
		event.Type = EventEntitySkipped
	case StateSuccess:
		event.Type = EventEntitySucceeded
	default:
		event.Type = EventEntityFailed
	}
	return event
}

// alreadyTranslated checks only the primary field in the primary language, so
// an entity without primary source text is never skipped.
func alreadyTranslated(entity content.Entity, req Request) bool {
	field, ok := entity.Field(req.primaryField())
	if !ok {
		return false
	}
	return field.Translations.Has(req.primaryLanguage())
}

func translatableFields(entity content.Entity, names []string) []content.Field {
	out := make([]content.Field, 0, len(names))
	for _, name := range names {
		field, ok := entity.Field(name)
		if !ok || strings.TrimSpace(field.Value) == "" {
			continue
		}
		field.Name = name
		out = append(out, field)
	}
	return out
}
