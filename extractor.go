package pagescope

// Extractor reads the current state of a document and produces a result.
// Extraction is a single synchronous pass; input validation failures are
// returned as EINVALID errors carrying a user-facing message.
type Extractor interface {
	Extract(doc DocumentView, opts Options) (*Result, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(doc DocumentView, opts Options) (*Result, error)

// Extract calls f(doc, opts).
func (f ExtractorFunc) Extract(doc DocumentView, opts Options) (*Result, error) {
	return f(doc, opts)
}
