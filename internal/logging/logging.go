// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
)

// Options selects the handler.
type Options struct {
	Level slog.Level
	// JSON emits one JSON object per record.
	JSON bool
	// Dev emits colored, multi-line records for terminals.
	Dev bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// New returns a logger for opts. Dev wins over JSON.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var h slog.Handler
	switch {
	case opts.Dev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: handlerOpts,
		})
	case opts.JSON:
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(h)
}
