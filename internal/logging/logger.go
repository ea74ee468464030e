package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger.
var Log = logrus.New()

// Init configures the global logger from the application configuration.
func Init(cfg *config.AppConfig) *logrus.Logger {
	Configure(Log, cfg, os.Stderr)
	return Log
}

// Configure applies level, formatter and output to l. Reports may go to
// stdout, so logs default to stderr.
func Configure(l *logrus.Logger, cfg *config.AppConfig, out io.Writer) {
	l.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		l.SetLevel(level)
	}

	env := strings.ToLower(cfg.Environment)
	if env == "production" || env == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.Debugf("Log level set to: %s", l.GetLevel().String())
	l.Debugf("Log format set for environment: %s", cfg.Environment)
}

// EngineLogger adapts a logrus entry to the calculation engine's Logger.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger wraps l for the engine.
func NewEngineLogger(l *logrus.Logger) *EngineLogger {
	return &EngineLogger{Entry: logrus.NewEntry(l)}
}

// With returns a logger carrying key=value on every entry.
func (e *EngineLogger) With(key string, value any) calculation.Logger {
	return &EngineLogger{Entry: e.Entry.WithField(key, value)}
}

var _ calculation.FieldLogger = (*EngineLogger)(nil)
