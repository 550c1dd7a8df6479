// Package tlog provides the structured logging sink shared by the
// associator and the evaluator.
package tlog

import (
	"context"
	"fmt"
	"log/slog"
)

// LevelTrace sits one step above slog.LevelInfo, the same way zeonica's
// core package defines LevelTrace/LevelWaveform for per-cycle detail that
// is too noisy for LevelInfo but still worth keeping around.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs msg and args at LevelTrace against the default slog logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Tracef is a convenience wrapper for callers that already formatted a
// message and just want a single attribute-free trace line.
func Tracef(format string, args ...any) {
	slog.Log(context.Background(), LevelTrace, fmt.Sprintf(format, args...))
}
