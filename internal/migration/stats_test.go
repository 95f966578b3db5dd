package migration

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestEntityRunTransitions(t *testing.T) {
	cases := []struct {
		name  string
		steps []State
		ok    bool
	}{
		{name: "skip", steps: []State{StateSkipped}, ok: true},
		{name: "translate then succeed", steps: []State{StateTranslating, StateSuccess}, ok: true},
		{name: "translate then fail", steps: []State{StateTranslating, StateFailed}, ok: true},
		{name: "succeed without translating", steps: []State{StateSuccess}},
		{name: "leave terminal state", steps: []State{StateSkipped, StateTranslating}},
		{name: "skip while translating", steps: []State{StateTranslating, StateSkipped}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := newEntityRun(uuid.New(), "slug")
			var err error
			for _, step := range tc.steps {
				if err = run.advance(step); err != nil {
					break
				}
			}
			if tc.ok && err != nil {
				t.Fatalf("expected legal path, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if tc.ok && !run.state().Terminal() {
				t.Fatalf("expected terminal state, got %s", run.state())
			}
		})
	}
}

func TestRunStatsRecord(t *testing.T) {
	stats := &RunStats{Total: 3}
	stats.record(EntityOutcome{State: StateSuccess})
	stats.record(EntityOutcome{State: StateSkipped})
	stats.record(EntityOutcome{State: StateFailed})

	if stats.Processed() != 3 || len(stats.Outcomes) != 3 {
		t.Fatalf("unexpected counters %+v", stats)
	}
	snap := stats.snapshot()
	if snap != (Snapshot{Total: 3, Success: 1, Failed: 1, Skipped: 1}) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRequestNormalized(t *testing.T) {
	req := Request{
		Collection: " products ",
		Fields:     []string{"description", " description", ""},
		Languages:  []string{"EN", "en", "fr "},
	}.normalized()

	if req.Collection != "products" {
		t.Fatalf("collection not trimmed: %q", req.Collection)
	}
	if len(req.Fields) != 1 || len(req.Languages) != 2 || req.Languages[1] != "fr" {
		t.Fatalf("unexpected normalization %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
