package shared

import (
	"fmt"
	"time"
)

// LifecycleStatus is the coarse state of a long-running process such as a simulation run
type LifecycleStatus string

const (
	LifecyclePending   LifecycleStatus = "pending"
	LifecycleRunning   LifecycleStatus = "running"
	LifecycleCompleted LifecycleStatus = "completed"
	LifecycleFailed    LifecycleStatus = "failed"
	LifecycleStopped   LifecycleStatus = "stopped"
)

// Lifecycle tracks pending -> running -> completed|failed|stopped with timestamps
type Lifecycle struct {
	status    LifecycleStatus
	createdAt time.Time
	startedAt *time.Time
	endedAt   *time.Time
	lastError error
	clock     Clock
}

// NewLifecycle starts in the pending state
func NewLifecycle(clock Clock) *Lifecycle {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Lifecycle{status: LifecyclePending, createdAt: clock.Now(), clock: clock}
}

func (l *Lifecycle) Status() LifecycleStatus { return l.status }
func (l *Lifecycle) CreatedAt() time.Time    { return l.createdAt }
func (l *Lifecycle) StartedAt() *time.Time   { return l.startedAt }
func (l *Lifecycle) EndedAt() *time.Time     { return l.endedAt }
func (l *Lifecycle) LastError() error        { return l.lastError }

// IsFinished reports whether the lifecycle reached a terminal state
func (l *Lifecycle) IsFinished() bool {
	return l.status == LifecycleCompleted || l.status == LifecycleFailed || l.status == LifecycleStopped
}

// Start moves pending to running
func (l *Lifecycle) Start() error {
	if l.status != LifecyclePending {
		return fmt.Errorf("cannot start from %s state", l.status)
	}
	now := l.clock.Now()
	l.status = LifecycleRunning
	l.startedAt = &now
	return nil
}

// Complete moves running to completed
func (l *Lifecycle) Complete() error {
	if l.status != LifecycleRunning {
		return fmt.Errorf("cannot complete from %s state", l.status)
	}
	l.finish(LifecycleCompleted, nil)
	return nil
}

// Fail ends a non-terminal lifecycle with an error
func (l *Lifecycle) Fail(err error) error {
	if l.IsFinished() {
		return fmt.Errorf("cannot fail from %s state", l.status)
	}
	l.finish(LifecycleFailed, err)
	return nil
}

// Stop ends a non-terminal lifecycle at the operator's request
func (l *Lifecycle) Stop() error {
	if l.IsFinished() {
		return fmt.Errorf("cannot stop from %s state", l.status)
	}
	l.finish(LifecycleStopped, nil)
	return nil
}

func (l *Lifecycle) finish(status LifecycleStatus, err error) {
	now := l.clock.Now()
	l.status = status
	l.endedAt = &now
	l.lastError = err
}

// Runtime is the time spent running, up to now for a live lifecycle
func (l *Lifecycle) Runtime() time.Duration {
	if l.startedAt == nil {
		return 0
	}
	end := l.clock.Now()
	if l.endedAt != nil {
		end = *l.endedAt
	}
	return end.Sub(*l.startedAt)
}
