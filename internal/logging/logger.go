// Package logging provides the structured logging abstraction used by every
// pipeline stage. Stages depend on the Logger interface; the binary wires in a
// logrus-backed implementation and tests use MockLogger.
package logging

// Logger is the structured logger handed to each component at construction.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger

	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
