package run

import (
	"time"

	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// Run is one execution of the simulation driver
type Run struct {
	id        string
	scenario  string
	seed      int64
	lifecycle *shared.Lifecycle

	ticks       int
	simulatedMs float64
	eventCount  int
}

// NewRun creates a pending run
func NewRun(id, scenario string, seed int64, clock shared.Clock) *Run {
	return &Run{
		id:        id,
		scenario:  scenario,
		seed:      seed,
		lifecycle: shared.NewLifecycle(clock),
	}
}

func (r *Run) ID() string                     { return r.id }
func (r *Run) Scenario() string               { return r.scenario }
func (r *Run) Seed() int64                    { return r.seed }
func (r *Run) Status() shared.LifecycleStatus { return r.lifecycle.Status() }
func (r *Run) Ticks() int                     { return r.ticks }
func (r *Run) SimulatedMs() float64           { return r.simulatedMs }
func (r *Run) EventCount() int                { return r.eventCount }
func (r *Run) CreatedAt() time.Time           { return r.lifecycle.CreatedAt() }
func (r *Run) StartedAt() *time.Time          { return r.lifecycle.StartedAt() }
func (r *Run) EndedAt() *time.Time            { return r.lifecycle.EndedAt() }
func (r *Run) LastError() error               { return r.lifecycle.LastError() }
func (r *Run) Runtime() time.Duration         { return r.lifecycle.Runtime() }
func (r *Run) IsFinished() bool               { return r.lifecycle.IsFinished() }

func (r *Run) Start() error         { return r.lifecycle.Start() }
func (r *Run) Complete() error      { return r.lifecycle.Complete() }
func (r *Run) Fail(err error) error { return r.lifecycle.Fail(err) }
func (r *Run) Stop() error          { return r.lifecycle.Stop() }

// RecordTick accumulates one driver tick
func (r *Run) RecordTick(deltaMs float64) {
	r.ticks++
	r.simulatedMs += deltaMs
}

// RecordEvents accumulates published events
func (r *Run) RecordEvents(n int) {
	r.eventCount += n
}
