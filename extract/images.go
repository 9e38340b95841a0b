package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/pagescope"
)

var (
	imageExtRe = regexp.MustCompile(`(?i)\.(avif|apng|bmp|gif|ico|jpe?g|jfif|pjpeg|pjp|png|svg|tiff?|webp)(?:$|[?#])`)

	// cssURLRe matches url(...) tokens with double, single or no quotes.
	cssURLRe = regexp.MustCompile(`(?i)url\((?:"(.*?)"|'(.*?)'|(.*?))\)`)
)

// Ensure Images implements pagescope.Extractor.
var _ pagescope.Extractor = (*Images)(nil)

// Images collects every image URL referenced by the page: anchors linking to
// image files, img sources, srcset candidates and CSS background images.
type Images struct{}

// NewImages creates a new Images extractor.
func NewImages() *Images {
	return &Images{}
}

// Extract implements pagescope.Extractor.
func (x *Images) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	base := doc.URL()
	found := make(map[string]sourceSet)
	add := func(raw, source string) {
		abs, ok := pagescope.ToAbsoluteURL(raw, base)
		if !ok {
			return
		}
		if found[abs] == nil {
			found[abs] = make(sourceSet)
		}
		found[abs].add(source)
	}

	for _, a := range query(doc, "a[href]") {
		if href := attr(a, "href"); href != "" && looksLikeImageURL(href) {
			add(href, pagescope.SourceLinked)
		}
	}

	for _, img := range query(doc, "img[src]") {
		src := img.Rendering().CurrentSrc
		if src == "" {
			src = attr(img, "src")
		}
		add(src, pagescope.SourceVisibleImg)
	}

	for _, el := range query(doc, "img[srcset], source[srcset]") {
		for _, candidate := range pagescope.ParseSrcset(attr(el, "srcset")) {
			add(candidate, pagescope.SourceVisibleSrcset)
		}
	}

	for _, el := range query(doc, "*") {
		bg := el.ComputedStyle("background-image")
		if bg == "" || bg == "none" {
			continue
		}
		for _, u := range cssURLs(bg) {
			add(u, pagescope.SourceCSSBackground)
		}
	}

	images := make([]*pagescope.Image, 0, len(found))
	for u, sources := range found {
		img := &pagescope.Image{
			URL:              u,
			Sources:          sources.sorted(),
			FromLinkedAnchor: sources.has(pagescope.SourceLinked),
		}
		for _, s := range img.Sources {
			if strings.HasPrefix(s, "visible-") {
				img.FromVisibleElement = true
				break
			}
		}
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].URL < images[j].URL })

	var linked, visible int
	rows := [][]string{{"url", "sources", "fromLinkedAnchor", "fromVisibleElement"}}
	for _, img := range images {
		if img.FromLinkedAnchor {
			linked++
		}
		if img.FromVisibleElement {
			visible++
		}
		rows = append(rows, []string{
			img.URL,
			strings.Join(img.Sources, "|"),
			formatBool(img.FromLinkedAnchor),
			formatBool(img.FromVisibleElement),
		})
	}

	return &pagescope.Result{
		Action: pagescope.ActionImages,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Total Unique", len(images)),
			pagescope.NewStat("From Linked Anchors", linked),
			pagescope.NewStat("From Visible Elements", visible),
		},
		CSVContent: pagescope.ToCSV(rows),
		Images:     images,
	}, nil
}

func looksLikeImageURL(href string) bool {
	return imageExtRe.MatchString(href) ||
		strings.HasPrefix(href, "data:image/") ||
		strings.HasPrefix(href, "blob:")
}

// cssURLs returns the trimmed, non-empty arguments of every url() token in a
// CSS value.
func cssURLs(value string) []string {
	var out []string
	for _, m := range cssURLRe.FindAllStringSubmatch(value, -1) {
		var u string
		switch {
		case m[1] != "":
			u = m[1]
		case m[2] != "":
			u = m[2]
		default:
			u = m[3]
		}
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
