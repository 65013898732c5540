// Package cli implements the mondrian command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Engine and
// render events reach the logger through the observability hooks installed
// by the root command, so library packages never log themselves.
//
// # Commands
//
//   - draw: Compose interactively in the terminal (keyboard and mouse)
//   - render: Replay a command script and write SVG, JSON, PNG or PDF
//   - palette: Print the generated palette with color swatches
//   - cache: Manage the converted artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. The draw command owns the terminal, so it
// only logs when --log-file is given.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// newLogger creates a logger on w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// redirectLogs sends logger output to the file at path, or discards it when
// path is empty. The returned func closes the file and points the logger
// back at stderr.
func redirectLogs(logger *log.Logger, path string) (restore func(), err error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", path)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// progress times a command: step logs each phase at debug level with the
// time since the previous step, done logs the total at info level.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

func (p *progress) step(msg string, keyvals ...any) {
	now := time.Now()
	p.logger.Debug(msg, append(keyvals, "took", now.Sub(p.last).Round(time.Microsecond))...)
	p.last = now
}

// done logs e.g. "Rendered 3 file(s) (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
