package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := logging.ModuleLogger(provider, "storefront.migration")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"run_id": "run-7"})
	logger = logger.WithContext(ctx)

	entityID := uuid.MustParse("0b7d6d0e-5b58-4c9b-9c62-0d8f3e7a2c11")
	logger.Info("migration.entity.succeeded",
		"entity_id", entityID,
		"fields", 3,
		"elapsed", 1500*time.Millisecond,
	)

	got := strings.TrimSpace(buf.String())
	want := "2025-06-02T10:30:00Z INFO migration.entity.succeeded elapsed=1.5s entity_id=0b7d6d0e-5b58-4c9b-9c62-0d8f3e7a2c11 fields=3 logger=storefront.migration module=storefront.migration run_id=run-7"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelWarn
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("storefront.translator")
	logger.Info("dropped.info")
	logger.Warn("translator.call.failed", "error", errors.New("status 503"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `error="status 503"`) {
		t.Fatalf("expected quoted error field, got %s", lines[0])
	}
}

func TestConsoleLogger_PositionalArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("x").Debug("odd", "key", "value", "dangling")

	if !strings.Contains(buf.String(), "arg_2=dangling") {
		t.Fatalf("expected dangling argument to be kept, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}
