package mock

import "github.com/fwojciec/pagescope"

var _ pagescope.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of pagescope.DocumentParser.
type DocumentParser struct {
	ParseFn func(snap *pagescope.Snapshot) (pagescope.DocumentView, error)
}

func (p *DocumentParser) Parse(snap *pagescope.Snapshot) (pagescope.DocumentView, error) {
	return p.ParseFn(snap)
}
