package migration

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// EventType names a progress event emitted by the engine.
type EventType string

const (
	EventRunStarted      EventType = "run.started"
	EventEntityStarted   EventType = "entity.started"
	EventEntitySkipped   EventType = "entity.skipped"
	EventFieldTranslated EventType = "field.translated"
	EventEntitySucceeded EventType = "entity.succeeded"
	EventEntityFailed    EventType = "entity.failed"
	EventRunCompleted    EventType = "run.completed"
	EventRunCancelled    EventType = "run.cancelled"
)

// Event is a progress notification. Entity scoped fields are zero on run events.
type Event struct {
	Type       EventType
	RunID      uuid.UUID
	Collection string
	EntityID   uuid.UUID
	Slug       string
	Field      string
	Language   string
	Index      int // 1-based position of the entity within the run
	Total      int
	Reason     string
	Err        string
	Stats      Snapshot
	OccurredAt time.Time
}

// EventSink receives engine events. Errors are logged and never stop a run.
type EventSink interface {
	Record(ctx context.Context, event Event) error
}

// SinkFunc adapts a function into an EventSink.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Record(ctx context.Context, event Event) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

// MultiSink fans each event out to every sink and joins their errors.
func MultiSink(sinks ...EventSink) EventSink {
	filtered := make([]EventSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return SinkFunc(func(ctx context.Context, event Event) error {
		var errs []error
		for _, s := range filtered {
			if err := s.Record(ctx, event); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// InMemoryRecorder keeps every event in memory. Used by tests and the CLI
// summary.
type InMemoryRecorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

func (r *InMemoryRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

// Events returns a snapshot of the recorded events.
func (r *InMemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *InMemoryRecorder) Types() []EventType {
	events := r.Events()
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

// Fail makes subsequent Record calls return err.
func (r *InMemoryRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *InMemoryRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogSink writes each event to logger using the event type as the message.
type LogSink struct {
	logger interfaces.Logger
}

func NewLogSink(logger interfaces.Logger) *LogSink {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, event Event) error {
	logger := logging.WithRunContext(s.logger, event.RunID.String(), event.Collection, entityKey(event.EntityID)).
		WithContext(ctx)
	msg := "migration." + string(event.Type)

	switch event.Type {
	case EventFieldTranslated:
		logger.Debug(msg, "field", event.Field, "language", event.Language)
	case EventEntityStarted:
		logger.Debug(msg, "slug", event.Slug, "index", event.Index, "total", event.Total)
	case EventEntitySkipped:
		logger.Info(msg, "slug", event.Slug, "reason", event.Reason)
	case EventEntityFailed:
		logger.Warn(msg, "slug", event.Slug, "error", event.Err)
	case EventEntitySucceeded:
		logger.Info(msg, "slug", event.Slug, "index", event.Index, "total", event.Total)
	case EventRunCancelled:
		logger.Warn(msg,
			"success", event.Stats.Success,
			"failed", event.Stats.Failed,
			"skipped", event.Stats.Skipped,
			"total", event.Stats.Total,
		)
	default:
		logger.Info(msg,
			"success", event.Stats.Success,
			"failed", event.Stats.Failed,
			"skipped", event.Stats.Skipped,
			"total", event.Stats.Total,
		)
	}
	return nil
}

func entityKey(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
