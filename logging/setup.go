package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
	LogLevelTrace LogLevel = "trace"
)

// levelTrace sits below slog's debug level and carries one record per
// executed instruction.
const levelTrace = slog.LevelDebug - 4

var logger *slog.Logger

func Setup(optslevel LogLevel) {
	SetupWriter(optslevel, os.Stderr)
}

// SetupWriter is Setup with an explicit sink, used by tests.
func SetupWriter(optslevel LogLevel, sink io.Writer) {
	if optslevel == LogLevelNone {
		sink = io.Discard
	}

	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slogLevel(optslevel),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == levelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	})
	logger = slog.New(handler)
	if optslevel == LogLevelNone {
		logger = nil
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelTrace:
		return levelTrace
	}
	return slog.LevelDebug
}

// Enabled reports whether a record at level would be written. Callers use it
// to skip building expensive attributes.
func Enabled(level LogLevel) bool {
	if logger == nil || level == LogLevelNone {
		return false
	}
	return logger.Enabled(context.Background(), slogLevel(level))
}
