// Package logging defines the minimal structured-logging contract used by
// the auth core. Callers inject an implementation; nothing in this module
// writes to a global logger.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs, e.g.
//
//	log.Info(ctx, "login succeeded", "user_id", id)
type Logger interface {
	// Debug logs expected, high-volume conditions such as rejected tokens.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs notable lifecycle events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that need operator attention.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// Nop returns a Logger that discards everything. It is the default when no
// logger is injected.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) Logger                    { return nopLogger{} }
