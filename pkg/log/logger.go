// Package log provides the structured logging setup for the giiscope
// pipeline. It configures Go's standard log/slog with a JSON handler and a
// wrapper that extracts stack traces from cockroachdb/errors values, and
// defines the attribute keys used across the load/clean, feature, training
// and scenario stages.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger installs the default slog logger for the process.
// Logs go to stderr as JSON so that report tables on stdout stay clean.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(wrapWithErrorHandler(handler)))
}

// ToLogLevel maps a config string to a slog level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

// GetLoggerWithName returns the default logger tagged with a component name,
// e.g. "dataset.loader" or "forest.cv".
func GetLoggerWithName(name string) *slog.Logger {
	return slog.Default().With(ComponentKey, name)
}

const (
	ErrAttrKey        = "error"
	ErrCauseAttrKey   = "error_cause"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
