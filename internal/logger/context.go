// Package logger provides utilities for working with [zerolog.Logger] and
// [context.Context].
//
// Adapted from the teacher's log/slog-based internal/logger, which
// carried a *slog.Logger through a context.Context key and exposed
// Fatal/FatalError helpers that log then os.Exit(1). This package keeps
// that same shape and carries a zerolog.Logger instead, per SPEC_FULL.md's
// ambient logging stack (github.com/rs/zerolog, already a direct
// dependency via pkg/temporal/logger.go in the teacher).
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var ctxLoggerKey = ctxKey{}

// InContext returns a copy of ctx carrying l, retrievable via [FromContext].
func InContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, l)
}

// FromContext returns the logger carried by ctx, or zerolog's default
// logger if none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey).(zerolog.Logger); ok {
		return l
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Fatal logs msg at fatal level using ctx's logger, then exits the process.
func Fatal(ctx context.Context, msg string) {
	FromContext(ctx).Fatal().Msg(msg)
}

// FatalError logs msg and err at fatal level using the default logger,
// then exits the process.
func FatalError(msg string, err error) {
	FatalErrorContext(context.Background(), msg, err)
}

// FatalErrorContext logs msg and err at fatal level using ctx's logger,
// then exits the process.
func FatalErrorContext(ctx context.Context, msg string, err error) {
	FromContext(ctx).Fatal().Err(err).Msg(msg)
}
