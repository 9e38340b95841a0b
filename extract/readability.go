package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagescope"
)

// Readability scoring parameters.
const (
	minCandidateText  = 280
	paragraphBonus    = 180
	minParagraphText  = 35
	maxParagraphCount = 140
)

// Ensure Readability implements pagescope.Extractor.
var _ pagescope.Extractor = (*Readability)(nil)

// Readability picks the container most likely to hold the main article and
// returns its title and paragraphs.
type Readability struct{}

// NewReadability creates a new Readability extractor.
func NewReadability() *Readability {
	return &Readability{}
}

// Extract implements pagescope.Extractor.
func (x *Readability) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	best := bestCandidate(doc)

	title := ""
	if h1 := first(doc, "h1"); h1 != nil {
		title = strings.TrimSpace(h1.TextContent())
	}
	if title == "" {
		title = doc.Title()
	}
	if title == "" {
		title = "Untitled"
	}

	paragraphs := []string{}
	if best != nil {
		for _, p := range query(best, "p") {
			paragraphs = appendParagraph(paragraphs, p.TextContent())
		}
		if len(paragraphs) == 0 {
			for _, line := range strings.Split(best.VisibleText(), "\n") {
				paragraphs = appendParagraph(paragraphs, line)
			}
		}
	}

	var words int
	rows := [][]string{{"paragraph", "text"}}
	for i, p := range paragraphs {
		words += len(strings.Fields(p))
		rows = append(rows, []string{strconv.Itoa(i + 1), p})
	}

	return &pagescope.Result{
		Action: pagescope.ActionReadability,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Paragraphs", len(paragraphs)),
			pagescope.NewStat("Approx Words", words),
		},
		CSVContent:  pagescope.ToCSV(rows),
		Readability: &pagescope.Readability{Title: title, Paragraphs: paragraphs},
	}, nil
}

// bestCandidate scores semantic containers first, then generic sections and
// divs. A candidate replaces the current best only with a strictly higher
// score; the body starts with score zero.
func bestCandidate(doc pagescope.DocumentView) pagescope.Element {
	best := doc.Body()
	bestScore := 0

	candidates := query(doc, "article, main, [role='main']")
	candidates = append(candidates, query(doc, "section, div")...)
	for _, el := range candidates {
		n := utf8.RuneCountInString(strings.TrimSpace(el.VisibleText()))
		if n < minCandidateText {
			continue
		}
		score := n + paragraphBonus*len(query(el, "p"))
		if score > bestScore {
			best = el
			bestScore = score
		}
	}
	return best
}

// appendParagraph adds the whitespace-collapsed text when it is long enough
// and the paragraph limit has not been reached.
func appendParagraph(paragraphs []string, text string) []string {
	if len(paragraphs) >= maxParagraphCount {
		return paragraphs
	}
	text = pagescope.CollapseSpace(text)
	if utf8.RuneCountInString(text) < minParagraphText {
		return paragraphs
	}
	return append(paragraphs, text)
}
