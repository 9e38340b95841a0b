package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/pagescope"
)

// maxLinkText caps the anchor text kept per link.
const maxLinkText = 220

// Ensure Links implements pagescope.Extractor.
var _ pagescope.Extractor = (*Links)(nil)

// Links collects every anchor target on the page, counting repeated
// occurrences. The first anchor for a URL supplies its text, target and rel.
type Links struct{}

// NewLinks creates a new Links extractor.
func NewLinks() *Links {
	return &Links{}
}

// Extract implements pagescope.Extractor.
func (x *Links) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	base := doc.URL()
	host := pageHostname(doc)

	seen := make(map[string]*pagescope.Link)
	links := []*pagescope.Link{}
	for _, a := range query(doc, "a[href]") {
		abs, ok := pagescope.ToAbsoluteURL(attr(a, "href"), base)
		if !ok {
			continue
		}
		if link, ok := seen[abs]; ok {
			link.Occurrences++
			continue
		}
		link := &pagescope.Link{
			URL:         abs,
			Text:        pagescope.Truncate(pagescope.CollapseSpace(a.TextContent()), maxLinkText),
			Target:      attr(a, "target"),
			Nofollow:    strings.Contains(strings.ToLower(attr(a, "rel")), "nofollow"),
			Internal:    pagescope.Hostname(abs) == host,
			Occurrences: 1,
		}
		seen[abs] = link
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].URL < links[j].URL })

	var internal int
	rows := [][]string{{"url", "text", "internal", "nofollow", "target", "occurrences"}}
	for _, link := range links {
		if link.Internal {
			internal++
		}
		rows = append(rows, []string{
			link.URL,
			link.Text,
			formatBool(link.Internal),
			formatBool(link.Nofollow),
			link.Target,
			strconv.Itoa(link.Occurrences),
		})
	}

	return &pagescope.Result{
		Action: pagescope.ActionLinks,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Total Unique Links", len(links)),
			pagescope.NewStat("Internal Links", internal),
			pagescope.NewStat("External Links", len(links)-internal),
		},
		CSVContent: pagescope.ToCSV(rows),
		Links:      links,
	}, nil
}
