package curveview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called from input callbacks while a frame renders.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for curveview and its sub-packages.
// By default, curveview produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: region of interest and flag changes, per-frame transforms
//   - [slog.LevelInfo]: scene setup, GPU pipeline creation
//   - [slog.LevelWarn]: frame failures that were skipped
//
// Example:
//
//	curveview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by curveview.
// Sub-packages (internal/gpu, loader) call this to share the same
// logger configuration without holding their own copy.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
