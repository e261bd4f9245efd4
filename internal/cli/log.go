// Logging for the flowter CLI.
//
// Every command runs with a charmbracelet logger attached to its context.
// The default level is info; --verbose (-v) switches to debug, which also
// shows the runner's per-stage timings and cache decisions.
//
// Commands retrieve the logger with loggerFromContext, so helpers deep in
// a command never need a logger parameter:
//
//	logger := loggerFromContext(ctx)
//	logger.Debug("rendered", "format", format, "bytes", len(data))

package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level. Timestamps are
// formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45"). Debug output also
// carries the "flowter" prefix so it can be told apart from tool output
// such as rsvg-convert warnings.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	if level <= log.DebugLevel {
		l.SetPrefix(appName)
	}
	return l
}

// progress times an operation. step logs each stage at debug level with
// the time since the previous stage; done logs the total at info level.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

// newProgress creates a progress tracker started now.
func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step logs the completion of one stage.
func (p *progress) step(stage string, keyvals ...any) {
	now := time.Now()
	p.logger.Debug(stage, append([]any{"took", now.Sub(p.last).Round(time.Microsecond)}, keyvals...)...)
	p.last = now
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 documents (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that never passed through a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
