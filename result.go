package pagescope

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stat is a labelled summary value shown above a result.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NewStat returns a Stat with an integer value.
func NewStat(label string, value int) Stat {
	return Stat{Label: label, Value: strconv.Itoa(value)}
}

// Result is the output of one extractor. Stats and CSVContent are common to
// every action; exactly one of the remaining fields is set, depending on
// which action produced the result.
//
// Action names the producing action. It is not encoded directly; it decides
// which payload key is always written, so an empty result still carries its
// variant (for example "tables": []).
type Result struct {
	Action ActionID `json:"-"`

	Stats      []Stat `json:"stats"`
	CSVContent string `json:"csvContent"`

	Images      []*Image         `json:"images,omitempty"`
	Links       []*Link          `json:"links,omitempty"`
	Contacts    *Contacts        `json:"contacts,omitempty"`
	SEO         *SEO             `json:"seo,omitempty"`
	Tables      []*Table         `json:"tables,omitempty"`
	Readability *Readability     `json:"readability,omitempty"`
	Hints       []*Hint          `json:"hints,omitempty"`
	DOMQuery    *DOMQuery        `json:"domQuery,omitempty"`
	Domains     []*PrivacyDomain `json:"domains,omitempty"`
}

// payloadField describes one action-specific field of Result.
type payloadField struct {
	key    string
	action ActionID
	set    bool
	value  any
	empty  any
}

func (r *Result) payloads() []payloadField {
	return []payloadField{
		{"images", ActionImages, r.Images != nil, r.Images, []*Image{}},
		{"links", ActionLinks, r.Links != nil, r.Links, []*Link{}},
		{"contacts", ActionContacts, r.Contacts != nil, r.Contacts, &Contacts{Emails: []*Contact{}, Phones: []*Contact{}}},
		{"seo", ActionSEO, r.SEO != nil, r.SEO, &SEO{Issues: []string{}}},
		{"tables", ActionTables, r.Tables != nil, r.Tables, []*Table{}},
		{"readability", ActionReadability, r.Readability != nil, r.Readability, &Readability{Paragraphs: []string{}}},
		{"hints", ActionPerformance, r.Hints != nil, r.Hints, []*Hint{}},
		{"domQuery", ActionDOMQuery, r.DOMQuery != nil, r.DOMQuery, &DOMQuery{Matches: []*DOMMatch{}}},
		{"domains", ActionPrivacy, r.Domains != nil, r.Domains, []*PrivacyDomain{}},
	}
}

// MarshalJSON writes stats, csvContent and every set payload. The payload of
// r.Action is written even when nil or empty.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteString(`{"stats":`)
	if err := enc.Encode(r.Stats); err != nil {
		return nil, err
	}
	buf.WriteString(`,"csvContent":`)
	if err := enc.Encode(r.CSVContent); err != nil {
		return nil, err
	}
	for _, f := range r.payloads() {
		if !f.set && f.action != r.Action {
			continue
		}
		v := f.value
		if !f.set {
			v = f.empty
		}
		buf.WriteString(`,"` + f.key + `":`)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a result and restores Action from the first payload
// key present.
func (r *Result) UnmarshalJSON(data []byte) error {
	type result Result
	var decoded result
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = Result(decoded)
	for _, f := range r.payloads() {
		if _, ok := keys[f.key]; ok {
			r.Action = f.action
			break
		}
	}
	return nil
}

// Provenance tags recorded on images and contacts.
const (
	SourceLinked        = "linked"
	SourceVisibleImg    = "visible-img"
	SourceVisibleSrcset = "visible-srcset"
	SourceCSSBackground = "visible-css-background"
	SourceVisibleText   = "visible-text"
	SourceMailtoLink    = "mailto-link"
	SourceTelLink       = "tel-link"
)

// Image is a unique image URL found on the page.
type Image struct {
	URL                string   `json:"url"`
	Sources            []string `json:"sources"`
	FromLinkedAnchor   bool     `json:"fromLinkedAnchor"`
	FromVisibleElement bool     `json:"fromVisibleElement"`
}

// Link is a unique anchor target found on the page.
type Link struct {
	URL         string `json:"url"`
	Text        string `json:"text"`
	Target      string `json:"target"`
	Nofollow    bool   `json:"nofollow"`
	Internal    bool   `json:"internal"`
	Occurrences int    `json:"occurrences"`
}

// Contact is a normalized email address or phone number.
type Contact struct {
	Value   string   `json:"value"`
	Sources []string `json:"sources"`
}

// Contacts groups the emails and phone numbers found on a page.
type Contacts struct {
	Emails []*Contact `json:"emails"`
	Phones []*Contact `json:"phones"`
}

// Hreflang is an alternate-language link.
type Hreflang struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// SEOSnapshot holds the SEO-relevant head fields of a page.
type SEOSnapshot struct {
	Title                 string     `json:"title"`
	TitleLength           int        `json:"titleLength"`
	MetaDescription       string     `json:"metaDescription"`
	MetaDescriptionLength int        `json:"metaDescriptionLength"`
	Canonical             string     `json:"canonical"`
	Robots                string     `json:"robots"`
	H1Count               int        `json:"h1Count"`
	OGTitle               string     `json:"ogTitle"`
	OGDescription         string     `json:"ogDescription"`
	OGImage               string     `json:"ogImage"`
	TwitterCard           string     `json:"twitterCard"`
	TwitterTitle          string     `json:"twitterTitle"`
	TwitterDescription    string     `json:"twitterDescription"`
	TwitterImage          string     `json:"twitterImage"`
	Hreflangs             []Hreflang `json:"hreflangs"`
}

// SEO is the SEO snapshot plus the issues derived from it.
type SEO struct {
	Snapshot SEOSnapshot `json:"snapshot"`
	Issues   []string    `json:"issues"`
}

// MaxTableColumns caps the number of columns kept per table.
const MaxTableColumns = 24

// Table is a table element converted to a text grid.
type Table struct {
	Index       int        `json:"index"`
	Caption     string     `json:"caption"`
	RowCount    int        `json:"rowCount"`
	ColCount    int        `json:"colCount"`
	Rows        [][]string `json:"rows"`
	PreviewRows [][]string `json:"previewRows"`
	CSV         string     `json:"csv"`
}

// Readability is the main article text of a page.
type Readability struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// Severity ranks a performance hint.
type Severity string

// Severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Hint is a single performance finding.
type Hint struct {
	Severity Severity `json:"severity"`
	Label    string   `json:"label"`
	Detail   string   `json:"detail"`
}

// DOMMatch is one element returned by a DOM query.
type DOMMatch struct {
	Index   int    `json:"index"`
	Tag     string `json:"tag"`
	ID      string `json:"id"`
	Classes string `json:"classes"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// DOMQuery is the outcome of running a CSS selector against a page.
type DOMQuery struct {
	Selector     string      `json:"selector"`
	TotalMatches int         `json:"totalMatches"`
	Matches      []*DOMMatch `json:"matches"`
}

// Category classifies a third-party domain.
type Category string

// Tracker categories.
const (
	CategoryAnalytics  Category = "analytics"
	CategoryTagManager Category = "tag-manager"
	CategorySocial     Category = "social"
	CategoryAds        Category = "ads"
	CategoryCDN        Category = "cdn"
	CategoryOther      Category = "other"
)

// PrivacyDomain aggregates references to one third-party hostname.
type PrivacyDomain struct {
	Domain     string   `json:"domain"`
	Category   Category `json:"category"`
	Resources  int      `json:"resources"`
	ScriptRefs int      `json:"scriptRefs"`
	IframeRefs int      `json:"iframeRefs"`
}

// Total returns the combined reference count.
func (d *PrivacyDomain) Total() int {
	return d.Resources + d.ScriptRefs + d.IframeRefs
}
