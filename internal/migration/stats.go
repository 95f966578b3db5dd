package migration

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle position of one entity within a run.
type State string

const (
	StatePending     State = "pending"
	StateTranslating State = "translating"
	StateSkipped     State = "skipped"
	StateSuccess     State = "success"
	StateFailed      State = "failed"
)

// Skip reasons recorded on outcomes.
const (
	ReasonAlreadyTranslated = "already-translated"
	ReasonNoSource          = "no-source"
)

var transitions = map[State][]State{
	StatePending:     {StateSkipped, StateTranslating},
	StateTranslating: {StateSuccess, StateFailed},
}

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateSkipped || s == StateSuccess || s == StateFailed
}

// EntityOutcome is the final record for one entity.
type EntityOutcome struct {
	EntityID uuid.UUID
	Slug     string
	State    State
	Reason   string
	Err      string

	// Fields lists the fields written by the persist step.
	Fields []string
}

// RunStats summarises a run. Success+Failed+Skipped equals len(Outcomes).
type RunStats struct {
	RunID      uuid.UUID
	Collection string
	Total      int
	Success    int
	Failed     int
	Skipped    int
	Outcomes   []EntityOutcome
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
}

// Processed is the number of entities that reached a terminal state.
func (s *RunStats) Processed() int {
	return s.Success + s.Failed + s.Skipped
}

func (s *RunStats) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

func (s *RunStats) snapshot() Snapshot {
	return Snapshot{
		Total:   s.Total,
		Success: s.Success,
		Failed:  s.Failed,
		Skipped: s.Skipped,
	}
}

func (s *RunStats) record(outcome EntityOutcome) {
	switch outcome.State {
	case StateSuccess:
		s.Success++
	case StateFailed:
		s.Failed++
	case StateSkipped:
		s.Skipped++
	}
	s.Outcomes = append(s.Outcomes, outcome)
}

// Snapshot is the counter view carried on events.
type Snapshot struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// entityRun tracks one entity through the state machine.
type entityRun struct {
	outcome EntityOutcome
}

func newEntityRun(id uuid.UUID, slug string) *entityRun {
	return &entityRun{outcome: EntityOutcome{EntityID: id, Slug: slug, State: StatePending}}
}

func (r *entityRun) state() State {
	return r.outcome.State
}

func (r *entityRun) advance(next State) error {
	current := r.outcome.State
	for _, allowed := range transitions[current] {
		if allowed == next {
			r.outcome.State = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, next)
}
