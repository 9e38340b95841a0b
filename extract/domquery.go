package extract

import (
	"strconv"
	"strings"

	"github.com/fwojciec/pagescope"
)

// DOM query limits.
const (
	maxDOMMatches   = 250
	maxDOMMatchText = 200
	maxDOMMatchHTML = 280
)

// Ensure DOMQuery implements pagescope.Extractor.
var _ pagescope.Extractor = (*DOMQuery)(nil)

// DOMQuery runs the CSS selector from the options against the page and
// summarizes the first matches.
type DOMQuery struct{}

// NewDOMQuery creates a new DOMQuery extractor.
func NewDOMQuery() *DOMQuery {
	return &DOMQuery{}
}

// Extract implements pagescope.Extractor.
func (x *DOMQuery) Extract(doc pagescope.DocumentView, opts pagescope.Options) (*pagescope.Result, error) {
	selector := strings.TrimSpace(opts.Selector)
	if selector == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "A CSS selector is required.")
	}
	els, err := doc.QueryAll(selector)
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "Invalid CSS selector.")
	}

	matches := make([]*pagescope.DOMMatch, 0, min(len(els), maxDOMMatches))
	for i, el := range els[:min(len(els), maxDOMMatches)] {
		matches = append(matches, &pagescope.DOMMatch{
			Index:   i + 1,
			Tag:     el.Tag(),
			ID:      attr(el, "id"),
			Classes: attr(el, "class"),
			Text:    pagescope.Truncate(pagescope.CollapseSpace(el.TextContent()), maxDOMMatchText),
			HTML:    pagescope.Truncate(pagescope.CollapseSpace(el.OuterHTML()), maxDOMMatchHTML),
		})
	}

	rows := [][]string{{"index", "tag", "id", "classes", "text"}}
	for _, m := range matches {
		rows = append(rows, []string{strconv.Itoa(m.Index), m.Tag, m.ID, m.Classes, m.Text})
	}

	return &pagescope.Result{
		Action: pagescope.ActionDOMQuery,
		Stats: []pagescope.Stat{
			{Label: "Selector", Value: selector},
			pagescope.NewStat("Matches", len(els)),
			pagescope.NewStat("Returned", len(matches)),
		},
		CSVContent: pagescope.ToCSV(rows),
		DOMQuery: &pagescope.DOMQuery{
			Selector:     selector,
			TotalMatches: len(els),
			Matches:      matches,
		},
	}, nil
}
