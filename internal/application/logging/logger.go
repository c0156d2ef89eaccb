package logging

import (
	"context"
	"sync"
)

// Log levels understood by every Logger implementation
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Logger provides structured logging for simulation and command handling
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return NoOp()
}

// NoOp returns a logger that discards everything
func NoOp() Logger {
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// Entry is a captured log line
type Entry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// Capture is a Logger that records entries, used by tests
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Capture) Log(level, message string, metadata map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns a copy of everything logged
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Count returns how many entries were logged at level
func (c *Capture) Count(level string) int {
	n := 0
	for _, e := range c.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}
