package pagescope

import "net/url"

// DocumentView is a read-only view of a rendered page. It exposes element
// queries, attribute and text access, computed style lookup and the
// performance timeline. Implementations hide whether the data came from a
// live browser or from static HTML.
type DocumentView interface {
	// URL returns the page location used to resolve relative URLs.
	URL() *url.URL

	// Title returns the document title.
	Title() string

	// Body returns the body element, or nil if the document has none.
	Body() Element

	// QueryAll returns every element matching selector in document order.
	// Returns EINVALID if the selector cannot be parsed.
	QueryAll(selector string) ([]Element, error)

	// ViewportHeight returns the window inner height in CSS pixels.
	// Returns 0 when no layout information is available.
	ViewportHeight() float64

	// Resources returns the resource timing entries recorded for the page.
	Resources() []ResourceEntry
}

// Element is a single DOM element within a DocumentView.
type Element interface {
	// Tag returns the lower-case tag name.
	Tag() string

	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)

	// TextContent returns the concatenated text of all descendant text nodes.
	TextContent() string

	// VisibleText returns the rendered text of the element, with line breaks
	// at block boundaries and hidden content omitted.
	VisibleText() string

	// OuterHTML returns the serialized element.
	OuterHTML() string

	// QueryAll returns descendants matching selector in document order.
	// Returns EINVALID if the selector cannot be parsed.
	QueryAll(selector string) ([]Element, error)

	// ComputedStyle returns the value of a CSS property, or "" if unknown.
	ComputedStyle(property string) string

	// Rendering returns layout and image state. Zero when unknown.
	Rendering() Rendering
}

// Rendering holds layout data for an element as observed by a browser.
type Rendering struct {
	CurrentSrc    string  `json:"currentSrc,omitempty"`
	NaturalWidth  float64 `json:"naturalWidth,omitempty"`
	NaturalHeight float64 `json:"naturalHeight,omitempty"`
	ClientWidth   float64 `json:"clientWidth,omitempty"`
	ClientHeight  float64 `json:"clientHeight,omitempty"`
	Top           float64 `json:"top,omitempty"`
	Loading       string  `json:"loading,omitempty"`
}

// ResourceEntry is a single resource timing entry.
type ResourceEntry struct {
	Name         string  `json:"name"`
	TransferSize float64 `json:"transferSize"`
}
