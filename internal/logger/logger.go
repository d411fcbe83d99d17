package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with an application-level Fatal.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing structured JSON to stdout at the given level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
