package run

import (
	"context"
	"time"

	"github.com/andrescamacho/cardquest-go/internal/domain/events"
)

// Summary is the persisted view of a run
type Summary struct {
	ID          string
	Scenario    string
	Seed        int64
	Status      string
	Ticks       int
	SimulatedMs float64
	EventCount  int
	StartedAt   *time.Time
	EndedAt     *time.Time
	ExitReason  string
}

// Repository persists run records
type Repository interface {
	Save(ctx context.Context, r *Run) error
	FindByID(ctx context.Context, id string) (*Summary, error)
	List(ctx context.Context, limit int) ([]*Summary, error)
}

// JournalEntry is a persisted event
type JournalEntry struct {
	ID        int
	RunID     string
	EventID   string
	Type      events.Type
	CardID    string
	HeroID    string
	ItemID    string
	Amount    int
	Message   string
	Data      map[string]interface{}
	Timestamp time.Time
}

// Journal appends domain events for later inspection
type Journal interface {
	Append(ctx context.Context, runID string, e events.Event) error
	Tail(ctx context.Context, runID string, limit int, eventType *events.Type, since *time.Time) ([]JournalEntry, error)
}
