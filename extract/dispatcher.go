package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagescope"
	"github.com/google/uuid"
)

// Dispatcher resolves an action to its extractor, runs it against a freshly
// loaded page and stores the result.
type Dispatcher struct {
	Loader     pagescope.Loader
	Parser     pagescope.DocumentParser
	Scans      pagescope.ScanService
	Extractors map[pagescope.ActionID]pagescope.Extractor

	// Now returns the scan creation time.
	Now func() time.Time

	// NewID returns a scan id for the given creation time.
	NewID func(time.Time) string
}

// NewDispatcher creates a Dispatcher with the default extractors, the
// wall clock and NewScanID.
func NewDispatcher(loader pagescope.Loader, parser pagescope.DocumentParser, scans pagescope.ScanService) *Dispatcher {
	return &Dispatcher{
		Loader:     loader,
		Parser:     parser,
		Scans:      scans,
		Extractors: Default(),
		Now:        time.Now,
		NewID:      NewScanID,
	}
}

// Run loads pageURL, runs the extractor for actionID and persists the
// result as a new scan. Nothing is stored when any step fails.
func (d *Dispatcher) Run(ctx context.Context, actionID pagescope.ActionID, pageURL string, opts pagescope.Options) (*pagescope.StoredScan, error) {
	if err := d.Validate(actionID, pageURL); err != nil {
		return nil, err
	}
	action, _ := pagescope.LookupAction(actionID)

	snap, err := d.Loader.Load(ctx, pageURL)
	if err != nil {
		return nil, pagescope.WrapError(err, pagescope.EINTERNAL, "Failed to collect data from the page.")
	}
	if snap == nil {
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "Failed to collect data from the page.")
	}
	if snap.URL == "" {
		snap.URL = pageURL
	}

	doc, err := d.Parser.Parse(snap)
	if err != nil {
		return nil, pagescope.WrapError(err, pagescope.EINTERNAL, "Failed to collect data from the page.")
	}
	result, err := d.Extract(actionID, doc, opts)
	if err != nil {
		return nil, err
	}

	now := d.Now().UTC()
	scan := &pagescope.StoredScan{
		ScanID:      d.NewID(now),
		CreatedAt:   now,
		PageURL:     snap.URL,
		PageTitle:   doc.Title(),
		ActionID:    action.ID,
		ActionLabel: action.Label,
		ContentHash: ContentHash(snap.HTML),
		Data:        result,
	}
	if err := d.Scans.CreateScan(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// Validate checks the action and page URL without loading anything.
// Run performs the same checks first.
func (d *Dispatcher) Validate(actionID pagescope.ActionID, pageURL string) error {
	if _, ok := pagescope.LookupAction(actionID); !ok || d.Extractors[actionID] == nil {
		return pagescope.Errorf(pagescope.EINVALID, "Unsupported action.")
	}
	if strings.TrimSpace(pageURL) == "" {
		return pagescope.Errorf(pagescope.ENOTFOUND, "No active tab was found.")
	}
	if !IsWebPage(pageURL) {
		return pagescope.Errorf(pagescope.EINVALID, "This action currently supports normal web pages only.")
	}
	return nil
}

// Extract runs the extractor for actionID against doc without loading or
// storing anything.
func (d *Dispatcher) Extract(actionID pagescope.ActionID, doc pagescope.DocumentView, opts pagescope.Options) (*pagescope.Result, error) {
	ext := d.Extractors[actionID]
	if ext == nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "Unsupported action.")
	}
	result, err := ext.Extract(doc, opts)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, pagescope.Errorf(pagescope.EINTERNAL, "Failed to collect data from the page.")
	}
	if result.Action == "" {
		result.Action = actionID
	}
	return result, nil
}

// IsWebPage reports whether raw uses the http or https scheme.
func IsWebPage(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// NewScanID returns "<unix millis>-<8 lowercase alphanumerics>".
func NewScanID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// ContentHash returns the hex xxhash of the page HTML.
func ContentHash(html string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(html))
}
