package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagescope"
)

// Ensure LoggingScanService implements pagescope.ScanService.
var _ pagescope.ScanService = (*LoggingScanService)(nil)

// LoggingScanService wraps a ScanService with debug logging.
type LoggingScanService struct {
	next   pagescope.ScanService
	logger *slog.Logger
}

// NewLoggingScanService creates a new LoggingScanService.
func NewLoggingScanService(next pagescope.ScanService, logger *slog.Logger) *LoggingScanService {
	return &LoggingScanService{next: next, logger: logger}
}

func (s *LoggingScanService) CreateScan(ctx context.Context, scan *pagescope.StoredScan) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create scan",
			"id", scan.ScanID,
			"action", scan.ActionID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateScan(ctx, scan)
}

func (s *LoggingScanService) FindScanByID(ctx context.Context, id string) (scan *pagescope.StoredScan, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find scan",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindScanByID(ctx, id)
}

func (s *LoggingScanService) FindScans(ctx context.Context, filter pagescope.ScanFilter) (scans []*pagescope.StoredScan, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find scans",
			"count", len(scans),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindScans(ctx, filter)
}
