package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagescope"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Parser implements pagescope.DocumentParser.
var _ pagescope.DocumentParser = (*Parser)(nil)

// Ensure Document implements pagescope.DocumentView.
var _ pagescope.DocumentView = (*Document)(nil)

// Ensure Element implements pagescope.Element.
var _ pagescope.Element = (*Element)(nil)

// Parser builds goquery-backed documents from snapshots.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements pagescope.DocumentParser.
func (p *Parser) Parse(snap *pagescope.Snapshot) (pagescope.DocumentView, error) {
	return NewDocument(snap)
}

// Document is a DocumentView over parsed snapshot HTML. Rendering data
// recorded by the loader is attached to elements by document-order index.
type Document struct {
	doc       *goquery.Document
	url       *url.URL
	title     string
	bodyText  string
	viewport  float64
	resources []pagescope.ResourceEntry
	states    map[*html.Node]pagescope.ElementState
}

// NewDocument parses the snapshot HTML and matches recorded element states
// to parsed nodes. States whose tag does not match their node are ignored.
func NewDocument(snap *pagescope.Snapshot) (*Document, error) {
	if snap == nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "snapshot required")
	}
	u, err := url.Parse(snap.URL)
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "invalid page URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &Document{
		doc:       doc,
		url:       u,
		title:     snap.Title,
		bodyText:  snap.BodyText,
		viewport:  snap.ViewportHeight,
		resources: snap.Resources,
		states:    make(map[*html.Node]pagescope.ElementState, len(snap.Elements)),
	}
	if d.title == "" {
		d.title = pagescope.CollapseSpace(doc.Find("title").First().Text())
	}

	if len(snap.Elements) > 0 {
		d.matchStates(snap.Elements)
	}

	return d, nil
}

// URL implements pagescope.DocumentView.
func (d *Document) URL() *url.URL {
	u := *d.url
	return &u
}

// Title implements pagescope.DocumentView.
func (d *Document) Title() string {
	return d.title
}

// Body implements pagescope.DocumentView.
func (d *Document) Body() pagescope.Element {
	sel := d.doc.Find("body").First()
	if sel.Length() == 0 {
		return nil
	}
	return d.element(sel)
}

// QueryAll implements pagescope.DocumentView.
func (d *Document) QueryAll(selector string) ([]pagescope.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.elements(d.doc.FindMatcher(m)), nil
}

// ViewportHeight implements pagescope.DocumentView.
func (d *Document) ViewportHeight() float64 {
	return d.viewport
}

// Resources implements pagescope.DocumentView.
func (d *Document) Resources() []pagescope.ResourceEntry {
	return d.resources
}

func (d *Document) element(sel *goquery.Selection) *Element {
	return &Element{doc: d, sel: sel, node: sel.Nodes[0]}
}

func (d *Document) elements(sel *goquery.Selection) []pagescope.Element {
	out := make([]pagescope.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.element(s))
	})
	return out
}

// Element is a single element of a Document.
type Element struct {
	doc  *Document
	sel  *goquery.Selection
	node *html.Node
}

// Tag implements pagescope.Element.
func (e *Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

// Attr implements pagescope.Element.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(strings.ToLower(name))
}

// TextContent implements pagescope.Element.
func (e *Element) TextContent() string {
	return e.sel.Text()
}

// VisibleText implements pagescope.Element. The body element returns the
// text captured by the loader when available.
func (e *Element) VisibleText() string {
	if e.doc.bodyText != "" && e.Tag() == "body" {
		return e.doc.bodyText
	}
	return visibleText(e.node)
}

// OuterHTML implements pagescope.Element.
func (e *Element) OuterHTML() string {
	s, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return ""
	}
	return s
}

// QueryAll implements pagescope.Element.
func (e *Element) QueryAll(selector string) ([]pagescope.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return e.doc.elements(e.sel.FindMatcher(m)), nil
}

// ComputedStyle implements pagescope.Element. Recorded browser values take
// precedence; otherwise the inline style attribute is consulted.
func (e *Element) ComputedStyle(property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	if st, ok := e.doc.states[e.node]; ok && property == "background-image" {
		if st.BackgroundImage == "" {
			return "none"
		}
		return st.BackgroundImage
	}

	style, _ := e.sel.Attr("style")
	decls := parseStyle(style)
	if v, ok := decls[property]; ok {
		return v
	}
	if property == "background-image" {
		if bg := decls["background"]; strings.Contains(strings.ToLower(bg), "url(") {
			return bg
		}
		return "none"
	}
	return ""
}

// Rendering implements pagescope.Element. Without recorded state only the
// loading attribute is known.
func (e *Element) Rendering() pagescope.Rendering {
	if st, ok := e.doc.states[e.node]; ok {
		return st.Rendering
	}
	loading, _ := e.sel.Attr("loading")
	return pagescope.Rendering{Loading: strings.ToLower(strings.TrimSpace(loading))}
}

func compile(selector string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return m, nil
}

// matchStates attaches states to the elements stamped with StateAttr and
// removes the stamps. Unstamped HTML falls back to document-order indexing.
func (d *Document) matchStates(states []pagescope.ElementState) {
	byIndex := make(map[int]pagescope.ElementState, len(states))
	for _, st := range states {
		byIndex[st.Index] = st
	}

	stamped := d.doc.Find("[" + pagescope.StateAttr + "]")
	if stamped.Length() > 0 {
		stamped.Each(func(_ int, s *goquery.Selection) {
			raw, _ := s.Attr(pagescope.StateAttr)
			s.RemoveAttr(pagescope.StateAttr)
			idx, err := strconv.Atoi(raw)
			if err != nil {
				return
			}
			n := s.Get(0)
			if st, ok := byIndex[idx]; ok && strings.EqualFold(n.Data, st.Tag) {
				d.states[n] = st
			}
		})
		return
	}

	nodes := elementNodes(d.doc.Get(0))
	for _, st := range states {
		if st.Index < 0 || st.Index >= len(nodes) {
			continue
		}
		if n := nodes[st.Index]; strings.EqualFold(n.Data, st.Tag) {
			d.states[n] = st
		}
	}
}

// elementNodes lists elements in document order the way querySelectorAll("*")
// sees them: template contents are not part of the document tree.
func elementNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			nodes = append(nodes, c)
			if c.DataAtom == atom.Template {
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return nodes
}
