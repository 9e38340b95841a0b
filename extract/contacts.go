package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/pagescope"
)

// maxContactText caps how much body text is scanned for contacts.
const maxContactText = 500000

var (
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d().\-\s\x{00A0}]{6,}\d`)
)

// Ensure Contacts implements pagescope.Extractor.
var _ pagescope.Extractor = (*Contacts)(nil)

// Contacts finds email addresses and phone numbers in the visible body text
// and in mailto: and tel: links.
type Contacts struct{}

// NewContacts creates a new Contacts extractor.
func NewContacts() *Contacts {
	return &Contacts{}
}

// Extract implements pagescope.Extractor.
func (x *Contacts) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	emails := make(map[string]sourceSet)
	phones := make(map[string]sourceSet)

	addEmail := func(raw, source string) {
		v := strings.ToLower(strings.TrimSpace(raw))
		if v == "" {
			return
		}
		if emails[v] == nil {
			emails[v] = make(sourceSet)
		}
		emails[v].add(source)
	}
	addPhone := func(raw, source string) {
		v := pagescope.NormalizePhone(raw)
		if v == "" {
			return
		}
		if phones[v] == nil {
			phones[v] = make(sourceSet)
		}
		phones[v].add(source)
	}

	var text string
	if body := doc.Body(); body != nil {
		text = pagescope.Truncate(body.VisibleText(), maxContactText)
	}
	for _, m := range emailRe.FindAllString(text, -1) {
		addEmail(m, pagescope.SourceVisibleText)
	}
	for _, m := range phoneRe.FindAllString(text, -1) {
		addPhone(m, pagescope.SourceVisibleText)
	}

	for _, a := range query(doc, "a[href^='mailto:']") {
		addEmail(linkValue(attr(a, "href"), "mailto:"), pagescope.SourceMailtoLink)
	}
	for _, a := range query(doc, "a[href^='tel:']") {
		addPhone(linkValue(attr(a, "href"), "tel:"), pagescope.SourceTelLink)
	}

	contacts := &pagescope.Contacts{
		Emails: sortedContacts(emails),
		Phones: sortedContacts(phones),
	}

	rows := [][]string{{"type", "value", "sources"}}
	for _, c := range contacts.Emails {
		rows = append(rows, []string{"email", c.Value, strings.Join(c.Sources, "|")})
	}
	for _, c := range contacts.Phones {
		rows = append(rows, []string{"phone", c.Value, strings.Join(c.Sources, "|")})
	}

	return &pagescope.Result{
		Action: pagescope.ActionContacts,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Emails", len(contacts.Emails)),
			pagescope.NewStat("Phone Numbers", len(contacts.Phones)),
			pagescope.NewStat("Total Contacts", len(contacts.Emails)+len(contacts.Phones)),
		},
		CSVContent: pagescope.ToCSV(rows),
		Contacts:   contacts,
	}, nil
}

// linkValue strips scheme from href case-insensitively and drops any query.
func linkValue(href, scheme string) string {
	if len(href) >= len(scheme) && strings.EqualFold(href[:len(scheme)], scheme) {
		href = href[len(scheme):]
	}
	v, _, _ := strings.Cut(href, "?")
	return v
}

func sortedContacts(m map[string]sourceSet) []*pagescope.Contact {
	out := make([]*pagescope.Contact, 0, len(m))
	for v, sources := range m {
		out = append(out, &pagescope.Contact{Value: v, Sources: sources.sorted()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
