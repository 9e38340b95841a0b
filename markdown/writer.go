// Package markdown renders stored scans as Markdown reports using
// nao1215/markdown.
package markdown

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/pagescope"
	md "github.com/nao1215/markdown"
)

// Cell widths for report tables.
const (
	maxCellLength    = 120
	maxPreviewLength = 280
)

// Writer renders StoredScans as Markdown.
type Writer struct {
	output io.Writer
}

// NewWriter creates a Writer that outputs to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{output: w}
}

// WriteScan renders the scan header, its stats and the action-specific
// section.
func (w *Writer) WriteScan(scan *pagescope.StoredScan) error {
	if scan == nil {
		return pagescope.Errorf(pagescope.EINVALID, "scan required")
	}

	doc := md.NewMarkdown(w.output)
	doc.H1(scan.ActionLabel)
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", cell(scan.PageURL)},
			{"Title", cell(scan.PageTitle)},
			{"Created", scan.CreatedAt.UTC().Format(time.RFC3339)},
			{"Scan ID", "`" + scan.ScanID + "`"},
		},
	})
	doc.PlainText("")

	if scan.Data == nil {
		doc.Note("This scan has no data.")
		return doc.Build()
	}

	writeStats(doc, scan.Data.Stats)

	switch scan.ActionID {
	case pagescope.ActionImages:
		writeImages(doc, scan.Data.Images)
	case pagescope.ActionLinks:
		writeLinks(doc, scan.Data.Links)
	case pagescope.ActionContacts:
		writeContacts(doc, scan.Data.Contacts)
	case pagescope.ActionSEO:
		writeSEO(doc, scan.Data.SEO)
	case pagescope.ActionTables:
		writeTables(doc, scan.Data.Tables)
	case pagescope.ActionReadability:
		writeReadability(doc, scan.Data.Readability)
	case pagescope.ActionPerformance:
		writeHints(doc, scan.Data.Hints)
	case pagescope.ActionDOMQuery:
		writeDOMQuery(doc, scan.Data.DOMQuery)
	case pagescope.ActionPrivacy:
		writeDomains(doc, scan.Data.Domains)
	}

	return doc.Build()
}

func writeStats(doc *md.Markdown, stats []pagescope.Stat) {
	if len(stats) == 0 {
		return
	}
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{cell(s.Label), cell(s.Value)}
	}
	doc.H2("Summary")
	doc.PlainText("")
	doc.Table(md.TableSet{Header: []string{"Metric", "Value"}, Rows: rows})
	doc.PlainText("")
}

func writeImages(doc *md.Markdown, images []*pagescope.Image) {
	doc.H2("Images")
	doc.PlainText("")
	if len(images) == 0 {
		doc.PlainText("No images found.")
		return
	}
	rows := make([][]string, len(images))
	for i, img := range images {
		rows[i] = []string{cell(img.URL), cell(strings.Join(img.Sources, ", "))}
	}
	doc.Table(md.TableSet{Header: []string{"URL", "Sources"}, Rows: rows})
}

func writeLinks(doc *md.Markdown, links []*pagescope.Link) {
	doc.H2("Links")
	doc.PlainText("")
	if len(links) == 0 {
		doc.PlainText("No links found.")
		return
	}
	rows := make([][]string, len(links))
	for i, l := range links {
		scope := "external"
		if l.Internal {
			scope = "internal"
		}
		rows[i] = []string{cell(l.URL), cell(l.Text), scope, strconv.Itoa(l.Occurrences)}
	}
	doc.Table(md.TableSet{Header: []string{"URL", "Text", "Scope", "Count"}, Rows: rows})
}

func writeContacts(doc *md.Markdown, contacts *pagescope.Contacts) {
	if contacts == nil {
		contacts = &pagescope.Contacts{}
	}
	writeContactList(doc, "Emails", contacts.Emails)
	doc.PlainText("")
	writeContactList(doc, "Phones", contacts.Phones)
}

func writeContactList(doc *md.Markdown, heading string, contacts []*pagescope.Contact) {
	doc.H2(heading)
	doc.PlainText("")
	if len(contacts) == 0 {
		doc.PlainText("None found.")
		return
	}
	items := make([]string, len(contacts))
	for i, c := range contacts {
		items[i] = "`" + c.Value + "` (" + strings.Join(c.Sources, ", ") + ")"
	}
	doc.BulletList(items...)
}

func writeSEO(doc *md.Markdown, seo *pagescope.SEO) {
	if seo == nil {
		return
	}
	doc.H2("Issues")
	doc.PlainText("")
	if len(seo.Issues) == 0 {
		doc.Tip("No SEO issues detected.")
	} else {
		doc.BulletList(seo.Issues...)
	}
	doc.PlainText("")

	s := seo.Snapshot
	doc.H2("Metadata")
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Title", cell(s.Title)},
			{"Meta Description", cell(s.MetaDescription)},
			{"Canonical", cell(s.Canonical)},
			{"Robots", cell(s.Robots)},
			{"H1 Count", strconv.Itoa(s.H1Count)},
			{"OG Title", cell(s.OGTitle)},
			{"OG Image", cell(s.OGImage)},
			{"Twitter Card", cell(s.TwitterCard)},
			{"Hreflang Links", strconv.Itoa(len(s.Hreflangs))},
		},
	})
}

func writeTables(doc *md.Markdown, tables []*pagescope.Table) {
	if len(tables) == 0 {
		doc.H2("Tables")
		doc.PlainText("")
		doc.PlainText("No tables found.")
		return
	}
	for _, t := range tables {
		doc.H2(t.Caption)
		doc.PlainText("")
		if len(t.PreviewRows) == 0 {
			doc.PlainText("Empty table.")
			doc.PlainText("")
			continue
		}
		header := make([]string, t.ColCount)
		for i := range header {
			header[i] = cell(at(t.PreviewRows[0], i))
		}
		rows := make([][]string, 0, len(t.PreviewRows)-1)
		for _, r := range t.PreviewRows[1:] {
			row := make([]string, t.ColCount)
			for i := range row {
				row[i] = cell(at(r, i))
			}
			rows = append(rows, row)
		}
		doc.Table(md.TableSet{Header: header, Rows: rows})
		doc.PlainTextf("%d rows, %d columns.", t.RowCount, t.ColCount)
		doc.PlainText("")
	}
}

func writeReadability(doc *md.Markdown, r *pagescope.Readability) {
	if r == nil {
		return
	}
	doc.H2(r.Title)
	doc.PlainText("")
	for _, p := range r.Paragraphs {
		doc.PlainText(p)
		doc.PlainText("")
	}
}

func writeHints(doc *md.Markdown, hints []*pagescope.Hint) {
	doc.H2("Hints")
	doc.PlainText("")
	for _, h := range hints {
		text := h.Label + ": " + h.Detail
		switch h.Severity {
		case pagescope.SeverityHigh:
			doc.Warningf("%s", text)
		case pagescope.SeverityMedium:
			doc.Importantf("%s", text)
		default:
			doc.Note(text)
		}
		doc.PlainText("")
	}
}

func writeDOMQuery(doc *md.Markdown, q *pagescope.DOMQuery) {
	if q == nil {
		return
	}
	doc.H2("Matches")
	doc.PlainText("")
	doc.PlainTextf("Selector: `%s`", q.Selector)
	doc.PlainText("")
	if len(q.Matches) == 0 {
		doc.PlainText("No elements matched.")
		return
	}
	rows := make([][]string, len(q.Matches))
	for i, m := range q.Matches {
		rows[i] = []string{strconv.Itoa(m.Index), m.Tag, cell(m.ID), cell(m.Classes), cell(m.Text)}
	}
	doc.Table(md.TableSet{Header: []string{"#", "Tag", "ID", "Classes", "Text"}, Rows: rows})
	doc.PlainText("")
	for _, m := range q.Matches {
		doc.Details("Match "+strconv.Itoa(m.Index), pagescope.Truncate(m.HTML, maxPreviewLength))
	}
}

func writeDomains(doc *md.Markdown, domains []*pagescope.PrivacyDomain) {
	doc.H2("Third-Party Domains")
	doc.PlainText("")
	if len(domains) == 0 {
		doc.Tip("No third-party domains detected.")
		return
	}
	rows := make([][]string, len(domains))
	for i, d := range domains {
		rows[i] = []string{
			cell(d.Domain),
			string(d.Category),
			strconv.Itoa(d.Resources),
			strconv.Itoa(d.ScriptRefs),
			strconv.Itoa(d.IframeRefs),
		}
	}
	doc.Table(md.TableSet{Header: []string{"Domain", "Category", "Resources", "Scripts", "Iframes"}, Rows: rows})
}

// cell flattens a value into a single table cell.
func cell(s string) string {
	s = pagescope.Truncate(pagescope.CollapseSpace(s), maxCellLength)
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
