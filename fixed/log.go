package fixed

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returns false so callers skip formatting
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	loggerPtr atomic.Pointer[slog.Logger]
	nopLogger = slog.New(nopHandler{})
)

// SetLogger installs the logger used by fixed and every package built on it.
// The library is silent until a logger is set. Passing nil restores silence.
//
// Levels in use:
//   - [slog.LevelDebug]: raw wrap diagnostics (fixeddev builds only)
//   - [slog.LevelWarn]: degraded fallbacks such as an empty remap range,
//     a non-positive timer duration or dropped catch-up ticks
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return nopLogger
}
