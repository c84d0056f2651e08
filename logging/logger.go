package logging

import (
	"context"
	"fmt"
)

func Log(level LogLevel, msg string, args ...any) {
	if logger == nil {
		return
	}
	switch level {
	case LogLevelTrace:
		logger.Log(context.Background(), levelTrace, msg, args...)
	case LogLevelDebug:
		logger.Debug(msg, args...)
	case LogLevelInfo:
		logger.Info(msg, args...)
	default:
		panic(fmt.Sprintf("log level %q is not a record level, disable logging with -lnone or --loglevel=none", level))
	}
}

func LogErr(err error, msg string, args ...any) {
	if err == nil || logger == nil {
		return
	}

	logger.Error(msg, append([]any{"error", err.Error()}, args...)...)
}
