package logger

import (
	"fmt"
	"log/slog"
)

// Logger is a thin chained wrapper around slog that carries the package,
// file, and function context of the call site.
type Logger struct {
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) attrs(args ...any) []any {
	out := make([]any, 0, len(args)+6)
	out = append(out, "package", l.pkg)
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	return append(out, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	slog.Debug(msg, l.attrs(args...)...)
}

func (l Logger) Info(msg string, args ...any) {
	slog.Info(msg, l.attrs(args...)...)
}

func (l Logger) Warn(msg string, args ...any) {
	slog.Warn(msg, l.attrs(args...)...)
}

// Er logs an error without returning it, for paths where the caller
// handles the failure itself.
func (l Logger) Er(msg string, err error, args ...any) {
	slog.Error(msg, l.attrs(append([]any{"error", err}, args...)...)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	slog.Error(msg, l.attrs(args...)...)
}

// Err logs and returns the error wrapped with the message so callers can
// `return log.Err(...)` in one statement.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message alone.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	return l.Error(msg)
}
