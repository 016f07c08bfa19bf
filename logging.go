package kbd

import (
	"github.com/rs/zerolog"
)

// Logger is the structured logging capability the engine uses to report
// recoverable conditions: unmapped keys, duplicate presses, and similar. It
// is intentionally narrow so alternative backends are easy to plug in;
// NewZerologLogger adapts github.com/rs/zerolog, the default.
type Logger interface {
	// Warn logs a recoverable condition. fields is a flat sequence of
	// alternating string keys and values, mirroring zerolog's convention
	// for ad-hoc structured fields without requiring a dedicated Event type
	// per call site.
	Warn(msg string, fields ...any)
	// Debug logs a diagnostic-only condition, typically a state machine
	// transition, useful when tracing why a key behaved a certain way.
	Debug(msg string, fields ...any)
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps log as a Logger.
func NewZerologLogger(log zerolog.Logger) Logger {
	return &zerologLogger{log: log}
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.event(z.log.Warn(), fields).Msg(msg)
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.event(z.log.Debug(), fields).Msg(msg)
}

// event applies fields (key, value, key, value, ...) to e, tolerating a
// trailing unpaired key by dropping it rather than panicking: a logging
// call must never be the thing that crashes the engine.
func (z *zerologLogger) event(e *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	return e
}

// noopLogger discards everything. The default when no Logger is configured.
type noopLogger struct{}

// NewNoopLogger returns a Logger that discards all messages.
func NewNoopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Debug(string, ...any) {}
