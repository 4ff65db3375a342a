// Package cli implements the tagcloud command-line interface.
//
// The CLI reads a document, counts its words, lays them out as a circular
// tag cloud, and writes the cloud in one or more formats. It is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Generate SVG, PNG, JPEG, GIF, BMP, TIFF, or JSON output
//   - layout: Write the computed layout as JSON
//   - words: Show the word frequencies that would feed the layout
//   - serve: Run the HTTP render server
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers do not need a *CLI.
//
// # Configuration
//
// Options can be loaded from a TOML or YAML file with --config. Flags given
// on the command line override values from the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the duration of a CLI step. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any key/value pairs, e.g.
// "wrote cloud.svg duration=12ms bytes=4096".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored in ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
