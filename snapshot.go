package pagescope

import "context"

// Snapshot is the captured state of a loaded page. A Snapshot from a static
// fetch carries only URL and HTML; a browser snapshot adds rendered text,
// layout and the resource timeline.
type Snapshot struct {
	URL            string          `json:"url"`
	Title          string          `json:"title,omitempty"`
	HTML           string          `json:"html"`
	BodyText       string          `json:"bodyText,omitempty"`
	ViewportHeight float64         `json:"viewportHeight,omitempty"`
	Resources      []ResourceEntry `json:"resources,omitempty"`
	Elements       []ElementState  `json:"elements,omitempty"`
}

// StateAttr is stamped by the browser loader on every element it records
// state for. Its value is the element's Index, so states survive HTML
// re-parsing that moves or drops elements.
const StateAttr = "data-pagescope-idx"

// ElementState is the rendering state of one element, keyed by its index
// among all elements of the document in document order.
type ElementState struct {
	Index           int    `json:"index"`
	Tag             string `json:"tag"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	Rendering
}

// Loader loads a page and captures its state.
type Loader interface {
	// Load navigates to url and returns the captured page state.
	// The context controls timeout and cancellation.
	Load(ctx context.Context, url string) (*Snapshot, error)

	// Close releases resources held by the loader.
	Close() error
}

// DocumentParser builds a DocumentView from a captured snapshot.
type DocumentParser interface {
	Parse(snap *Snapshot) (DocumentView, error)
}
