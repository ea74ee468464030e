package calculation

// Logger is a minimal logging interface for the projection engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// FieldLogger is a Logger that can attach a structured field to every
// subsequent entry. The planner uses it to tag a run with its ID.
type FieldLogger interface {
	Logger
	With(key string, value any) Logger
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// withField tags l with key=value when it supports fields.
func withField(l Logger, key string, value any) Logger {
	if fl, ok := l.(FieldLogger); ok {
		return fl.With(key, value)
	}
	return l
}
