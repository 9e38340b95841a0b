// Package extract implements the page extractors and the dispatcher that
// runs them. Every extractor is a single synchronous pass over a
// pagescope.DocumentView.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/pagescope"
)

// Default returns a new registry holding every supported extractor keyed by
// action id.
func Default() map[pagescope.ActionID]pagescope.Extractor {
	return map[pagescope.ActionID]pagescope.Extractor{
		pagescope.ActionImages:      NewImages(),
		pagescope.ActionLinks:       NewLinks(),
		pagescope.ActionContacts:    NewContacts(),
		pagescope.ActionSEO:         NewSEO(),
		pagescope.ActionTables:      NewTables(),
		pagescope.ActionReadability: NewReadability(),
		pagescope.ActionPerformance: NewPerformance(),
		pagescope.ActionDOMQuery:    NewDOMQuery(),
		pagescope.ActionPrivacy:     NewPrivacy(),
	}
}

type querier interface {
	QueryAll(selector string) ([]pagescope.Element, error)
}

// query runs a selector known to be valid. A nil root yields no elements.
func query(root querier, selector string) []pagescope.Element {
	if root == nil {
		return nil
	}
	els, err := root.QueryAll(selector)
	if err != nil {
		return nil
	}
	return els
}

// first returns the first element matching selector, or nil.
func first(root querier, selector string) pagescope.Element {
	els := query(root, selector)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// attr returns the named attribute of el, or "" when el is nil or the
// attribute is absent.
func attr(el pagescope.Element, name string) string {
	if el == nil {
		return ""
	}
	v, _ := el.Attr(name)
	return v
}

func hasAttr(el pagescope.Element, name string) bool {
	_, ok := el.Attr(name)
	return ok
}

// sourceSet collects provenance tags for one record.
type sourceSet map[string]struct{}

func (s sourceSet) add(source string) {
	s[source] = struct{}{}
}

func (s sourceSet) sorted() []string {
	out := make([]string, 0, len(s))
	for source := range s {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

func (s sourceSet) has(source string) bool {
	_, ok := s[source]
	return ok
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// pageHostname returns the lower-case hostname of the document URL.
func pageHostname(doc pagescope.DocumentView) string {
	u := doc.URL()
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
