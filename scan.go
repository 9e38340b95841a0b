package pagescope

import (
	"context"
	"encoding/json"
	"io"
	"time"
)

// StoredScan is one persisted extraction result. A scan is created once per
// invocation and never updated.
type StoredScan struct {
	ScanID      string    `json:"scanId"`
	CreatedAt   time.Time `json:"createdAt"`
	PageURL     string    `json:"pageUrl"`
	PageTitle   string    `json:"pageTitle"`
	ActionID    ActionID  `json:"actionId"`
	ActionLabel string    `json:"actionLabel"`
	ContentHash string    `json:"contentHash,omitempty"`
	Data        *Result   `json:"data"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *StoredScan) Validate() error {
	if s.ScanID == "" {
		return Errorf(EINVALID, "scan ID required")
	}
	if s.ActionID == "" {
		return Errorf(EINVALID, "scan action ID required")
	}
	if s.PageURL == "" {
		return Errorf(EINVALID, "scan page URL required")
	}
	if s.Data == nil {
		return Errorf(EINVALID, "scan data required")
	}
	return nil
}

// WriteJSON writes the scan as pretty-printed JSON. The payload key of the
// scan's action is always present in data.
func (s *StoredScan) WriteJSON(w io.Writer) error {
	out := *s
	if out.Data != nil && out.Data.Action == "" {
		data := *out.Data
		data.Action = s.ActionID
		out.Data = &data
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(&out)
}

// ScanService persists and retrieves scans.
type ScanService interface {
	// CreateScan stores a new scan.
	// Returns ECONFLICT if a scan with the same ID already exists.
	CreateScan(ctx context.Context, scan *StoredScan) error

	// FindScanByID retrieves a scan by ID.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*StoredScan, error)

	// FindScans retrieves scans matching the filter, newest first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*StoredScan, error)
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	ActionID *ActionID `json:"actionId"`
	PageURL  *string   `json:"pageUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
