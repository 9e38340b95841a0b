package goquery

import (
	"strings"

	"github.com/fwojciec/pagescope"
	"golang.org/x/net/html"
)

// skippedTags never contribute rendered text.
var skippedTags = map[string]bool{
	"head":     true,
	"title":    true,
	"meta":     true,
	"link":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"object":   true,
	"svg":      true,
}

// blockTags start and end on their own line.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "caption": true, "dd": true, "details": true, "dialog": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"html": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "table": true,
	"tbody": true, "tfoot": true, "thead": true, "tr": true, "ul": true,
}

// visibleText approximates the innerText of n for documents without
// layout: hidden subtrees are dropped, block elements break lines, table
// cells are separated by tabs and blank lines are removed.
func visibleText(n *html.Node) string {
	var b strings.Builder
	writeVisible(&b, n, false)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		cells := strings.Split(line, "\t")
		for i, cell := range cells {
			cells[i] = pagescope.CollapseSpace(cell)
		}
		line = strings.Trim(strings.Join(cells, "\t"), "\t")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeVisible(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
			return
		}
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			if n.Data != "" {
				b.WriteByte(' ')
			}
			return
		}
		if isSpace(n.Data[0]) {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		if isSpace(n.Data[len(n.Data)-1]) {
			b.WriteByte(' ')
		}
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedTags[tag] || isHidden(n) {
			return
		}
		switch tag {
		case "br":
			b.WriteByte('\n')
			return
		case "pre":
			pre = true
		}
		block := blockTags[tag]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeVisible(b, c, pre)
		}
		switch {
		case block:
			b.WriteByte('\n')
		case tag == "td" || tag == "th":
			b.WriteByte('\t')
		}
		return
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeVisible(b, c, pre)
		}
	}
}

// isHidden reports whether n carries the hidden attribute or an inline
// display:none / visibility:hidden declaration.
func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "style":
			decls := parseStyle(a.Val)
			if decls["display"] == "none" || decls["visibility"] == "hidden" {
				return true
			}
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
