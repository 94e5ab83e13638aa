package colorize

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/c0dexio/Colorize/generator"
	"github.com/gogpu/gg"
)

// nopHandler discards every record. Enabled reports false so the
// arguments of a disabled log call are never formatted.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by the package, the line art
// generators and the rasterizer underneath. The library is silent by default; pass nil
// to restore that behavior.
//
// Log levels:
//   - [slog.LevelDebug]: strokes, resizes and cache misses
//   - [slog.LevelInfo]: session lifecycle and exported files
//   - [slog.LevelWarn]: generation fallbacks and background load failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
	generator.SetLogger(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
