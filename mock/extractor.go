package mock

import "github.com/fwojciec/pagescope"

var _ pagescope.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagescope.Extractor.
type Extractor struct {
	ExtractFn func(doc pagescope.DocumentView, opts pagescope.Options) (*pagescope.Result, error)
}

func (e *Extractor) Extract(doc pagescope.DocumentView, opts pagescope.Options) (*pagescope.Result, error) {
	return e.ExtractFn(doc, opts)
}
