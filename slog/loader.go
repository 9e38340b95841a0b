package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingLoader implements pagescope.Loader.
var _ pagescope.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging.
type LoggingLoader struct {
	next   pagescope.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next pagescope.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the page size and duration.
func (l *LoggingLoader) Load(ctx context.Context, url string) (snap *pagescope.Snapshot, err error) {
	defer func(begin time.Time) {
		var size, elements, resources int
		if snap != nil {
			size = len(snap.HTML)
			elements = len(snap.Elements)
			resources = len(snap.Resources)
		}
		l.logger.Info("load",
			"url", url,
			"bytes", size,
			"elements", elements,
			"resources", resources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}

// Close delegates to the wrapped loader.
func (l *LoggingLoader) Close() error {
	return l.next.Close()
}
