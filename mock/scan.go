package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.ScanService = (*ScanService)(nil)

// ScanService is a mock implementation of pagescope.ScanService.
type ScanService struct {
	CreateScanFn   func(ctx context.Context, scan *pagescope.StoredScan) error
	FindScanByIDFn func(ctx context.Context, id string) (*pagescope.StoredScan, error)
	FindScansFn    func(ctx context.Context, filter pagescope.ScanFilter) ([]*pagescope.StoredScan, error)
}

func (s *ScanService) CreateScan(ctx context.Context, scan *pagescope.StoredScan) error {
	return s.CreateScanFn(ctx, scan)
}

func (s *ScanService) FindScanByID(ctx context.Context, id string) (*pagescope.StoredScan, error) {
	return s.FindScanByIDFn(ctx, id)
}

func (s *ScanService) FindScans(ctx context.Context, filter pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
	return s.FindScansFn(ctx, filter)
}
