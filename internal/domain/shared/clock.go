package shared

import (
	"sync"
	"time"
)

// Clock is an abstraction for wall time, allowing journal timestamps and run durations to be pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock implements Clock with a controllable time for testing
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock creates a MockClock starting at the given time.
// A zero start time is replaced by a fixed reference date so tests stay reproducible.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &MockClock{current: start}
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the mock clock forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

// Set pins the mock clock to a specific time
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}
