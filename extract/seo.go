package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagescope"
)

// Ensure SEO implements pagescope.Extractor.
var _ pagescope.Extractor = (*SEO)(nil)

// SEO reads title, meta, canonical, Open Graph, Twitter and hreflang tags and
// flags common omissions.
type SEO struct{}

// NewSEO creates a new SEO extractor.
func NewSEO() *SEO {
	return &SEO{}
}

// Extract implements pagescope.Extractor.
func (x *SEO) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	base := doc.URL()
	metaName := func(name string) string {
		return attr(first(doc, "meta[name='"+name+"' i]"), "content")
	}
	metaProperty := func(property string) string {
		return attr(first(doc, "meta[property='"+property+"' i]"), "content")
	}
	absolute := func(raw string) string {
		abs, _ := pagescope.ToAbsoluteURL(raw, base)
		return abs
	}

	hreflangs := []pagescope.Hreflang{}
	for _, el := range query(doc, "link[rel='alternate' i][hreflang]") {
		hreflangs = append(hreflangs, pagescope.Hreflang{
			Hreflang: attr(el, "hreflang"),
			Href:     absolute(attr(el, "href")),
		})
	}

	title := doc.Title()
	description := metaName("description")
	snap := pagescope.SEOSnapshot{
		Title:                 title,
		TitleLength:           utf8.RuneCountInString(strings.TrimSpace(title)),
		MetaDescription:       description,
		MetaDescriptionLength: utf8.RuneCountInString(strings.TrimSpace(description)),
		Canonical:             absolute(attr(first(doc, "link[rel='canonical' i]"), "href")),
		Robots:                metaName("robots"),
		H1Count:               len(query(doc, "h1")),
		OGTitle:               metaProperty("og:title"),
		OGDescription:         metaProperty("og:description"),
		OGImage:               metaProperty("og:image"),
		TwitterCard:           metaName("twitter:card"),
		TwitterTitle:          metaName("twitter:title"),
		TwitterDescription:    metaName("twitter:description"),
		TwitterImage:          metaName("twitter:image"),
		Hreflangs:             hreflangs,
	}
	issues := seoIssues(snap)

	rows := [][]string{
		{"metric", "value"},
		{"Title", snap.Title},
		{"Title Length", strconv.Itoa(snap.TitleLength)},
		{"Meta Description", snap.MetaDescription},
		{"Description Length", strconv.Itoa(snap.MetaDescriptionLength)},
		{"Canonical", snap.Canonical},
		{"Robots", snap.Robots},
		{"H1 Count", strconv.Itoa(snap.H1Count)},
		{"OG Title", snap.OGTitle},
		{"OG Description", snap.OGDescription},
		{"OG Image", snap.OGImage},
		{"Twitter Card", snap.TwitterCard},
		{"Twitter Title", snap.TwitterTitle},
		{"Twitter Description", snap.TwitterDescription},
		{"Twitter Image", snap.TwitterImage},
		{"Hreflang Count", strconv.Itoa(len(snap.Hreflangs))},
	}

	return &pagescope.Result{
		Action: pagescope.ActionSEO,
		Stats: []pagescope.Stat{
			pagescope.NewStat("SEO Issues", len(issues)),
			pagescope.NewStat("H1 Count", snap.H1Count),
			pagescope.NewStat("Hreflang Tags", len(snap.Hreflangs)),
		},
		CSVContent: pagescope.ToCSV(rows),
		SEO:        &pagescope.SEO{Snapshot: snap, Issues: issues},
	}, nil
}

// SEO length thresholds.
const (
	maxTitleLength       = 65
	maxDescriptionLength = 160
)

// seoIssues evaluates every check in a fixed order.
func seoIssues(s pagescope.SEOSnapshot) []string {
	issues := []string{}
	if s.Title == "" {
		issues = append(issues, "Missing <title>.")
	}
	if s.TitleLength > maxTitleLength {
		issues = append(issues, "Title is longer than ~65 characters.")
	}
	if s.MetaDescription == "" {
		issues = append(issues, "Missing meta description.")
	}
	if s.MetaDescriptionLength > maxDescriptionLength {
		issues = append(issues, "Meta description is longer than ~160 characters.")
	}
	if s.Canonical == "" {
		issues = append(issues, "Missing canonical URL.")
	}
	if s.H1Count == 0 {
		issues = append(issues, "No H1 found.")
	}
	if s.OGTitle == "" || s.OGDescription == "" || s.OGImage == "" {
		issues = append(issues, "Open Graph tags are incomplete.")
	}
	if s.TwitterCard == "" {
		issues = append(issues, "Missing Twitter card tag.")
	}
	return issues
}
