// Package logging is the structured logger every ledger package writes through.
// Packages take a Logger rather than a concrete logrus value so tests can swap in
// MockLogger and inspect what was recorded.
package logging

// Logger is the leveled, field-based logger passed to parsers, exporters and the
// batch processor. It has no fatal level: callers return errors to main.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err on every entry.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	// WithFields returns a child logger carrying fields on every entry.
	WithFields(fields ...Field) Logger
}

// Field is one key/value attached to an entry. Keys come from the Field* constants.
type Field struct {
	Key   string
	Value interface{}
}
