package simulation

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/domain/events"
	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

// RunnerConfig bounds a simulation run. Zero MaxTicks and Duration run until
// the context is cancelled.
type RunnerConfig struct {
	Interval       time.Duration
	MaxTicks       int
	Duration       time.Duration
	StatusInterval time.Duration
}

// Runner is the single driver that calls Engine.Tick at a fixed cadence
type Runner struct {
	engine *Engine
	cfg    RunnerConfig
	record *run.Run
	repo   run.Repository
	clock  shared.Clock
	logger logging.Logger
	status *rate.Sometimes

	published atomic.Int64
}

// NewRunner creates a runner; repo may be nil when runs are not persisted
func NewRunner(engine *Engine, cfg RunnerConfig, record *run.Run, repo run.Repository, clock shared.Clock, logger logging.Logger) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = 100 * time.Millisecond
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = 10 * time.Second
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Runner{
		engine: engine,
		cfg:    cfg,
		record: record,
		repo:   repo,
		clock:  clock,
		logger: logger,
		status: &rate.Sometimes{First: 1, Interval: cfg.StatusInterval},
	}
}

// Run ticks the engine until the context ends or a bound is reached. The
// delta passed to each tick is the wall time elapsed since the previous one.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.record.Start(); err != nil {
		return err
	}
	r.save(ctx)
	r.logger.Log(logging.LevelInfo, "simulation started", map[string]interface{}{
		"run_id":   r.record.ID(),
		"scenario": r.record.Scenario(),
		"interval": r.cfg.Interval.String(),
	})

	var deadline <-chan time.Time
	if r.cfg.Duration > 0 {
		timer := time.NewTimer(r.cfg.Duration)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	last := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return r.finish(context.Background(), r.record.Stop, "context cancelled")
		case <-deadline:
			return r.finish(ctx, r.record.Complete, "duration reached")
		case <-ticker.C:
			now := r.clock.Now()
			delta := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now

			r.Step(ctx, delta)
			if r.cfg.MaxTicks > 0 && r.record.Ticks() >= r.cfg.MaxTicks {
				return r.finish(ctx, r.record.Complete, "tick limit reached")
			}
		}
	}
}

// Step advances the engine once and books the tick on the run record
func (r *Runner) Step(ctx context.Context, deltaMs float64) TickReport {
	report := r.engine.Tick(ctx, deltaMs)
	r.record.RecordTick(deltaMs)
	r.record.RecordEvents(int(r.published.Swap(0)))

	r.status.Do(func() {
		snap := r.engine.Snapshot()
		r.logger.Log(logging.LevelInfo, "simulation status", map[string]interface{}{
			"run_id":       r.record.ID(),
			"ticks":        r.record.Ticks(),
			"simulated_ms": r.record.SimulatedMs(),
			"cards":        len(snap.Cards),
			"heroes":       len(snap.Heroes),
			"currency":     snap.Currency,
			"failed":       report.Failed,
		})
	})
	return report
}

// Observe counts a published event toward the run; subscribe it to the bus
func (r *Runner) Observe(e events.Event) {
	r.published.Add(1)
}

// Record returns the run being driven
func (r *Runner) Record() *run.Run {
	return r.record
}

func (r *Runner) finish(ctx context.Context, transition func() error, reason string) error {
	r.record.RecordEvents(int(r.published.Swap(0)))
	if err := transition(); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	r.save(ctx)
	r.logger.Log(logging.LevelInfo, "simulation finished", map[string]interface{}{
		"run_id":       r.record.ID(),
		"reason":       reason,
		"ticks":        r.record.Ticks(),
		"simulated_ms": r.record.SimulatedMs(),
		"events":       r.record.EventCount(),
		"runtime":      r.record.Runtime().String(),
	})
	return nil
}

func (r *Runner) save(ctx context.Context) {
	if r.repo == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.repo.Save(saveCtx, r.record); err != nil {
		r.logger.Log(logging.LevelError, fmt.Sprintf("Failed to persist run: %v", err), map[string]interface{}{
			"run_id": r.record.ID(),
		})
	}
}
