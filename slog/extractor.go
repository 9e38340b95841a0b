package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingExtractor implements pagescope.Extractor.
var _ pagescope.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	action pagescope.ActionID
	next   pagescope.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor for the given action.
func NewLoggingExtractor(action pagescope.ActionID, next pagescope.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{action: action, next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the stat count.
func (e *LoggingExtractor) Extract(doc pagescope.DocumentView, opts pagescope.Options) (res *pagescope.Result, err error) {
	defer func(begin time.Time) {
		var stats int
		if res != nil {
			stats = len(res.Stats)
		}
		e.logger.Info("extract",
			"action", e.action,
			"stats", stats,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(doc, opts)
}

// WrapExtractors returns a copy of extractors with each entry wrapped in a
// LoggingExtractor.
func WrapExtractors(extractors map[pagescope.ActionID]pagescope.Extractor, logger *slog.Logger) map[pagescope.ActionID]pagescope.Extractor {
	wrapped := make(map[pagescope.ActionID]pagescope.Extractor, len(extractors))
	for id, ext := range extractors {
		wrapped[id] = NewLoggingExtractor(id, ext, logger)
	}
	return wrapped
}
