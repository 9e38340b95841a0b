package mock

import (
	"context"

	"github.com/fwojciec/pagescope"
)

var _ pagescope.Loader = (*Loader)(nil)

// Loader is a mock implementation of pagescope.Loader.
type Loader struct {
	LoadFn  func(ctx context.Context, url string) (*pagescope.Snapshot, error)
	CloseFn func() error
}

func (l *Loader) Load(ctx context.Context, url string) (*pagescope.Snapshot, error) {
	return l.LoadFn(ctx, url)
}

func (l *Loader) Close() error {
	return l.CloseFn()
}
