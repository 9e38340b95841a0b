package extract

import (
	"fmt"
	"math"

	"github.com/fwojciec/pagescope"
)

// Performance thresholds.
const (
	oversizedNaturalPixels = 2000000
	oversizedRatio         = 4
	belowFoldFactor        = 1.25
	heavyTransferBytes     = 5000000
	manyThirdPartyHosts    = 8
)

// Ensure Performance implements pagescope.Extractor.
var _ pagescope.Extractor = (*Performance)(nil)

// Performance runs quick heuristic checks against image rendering, head
// scripts and the resource timeline. The result always holds at least one
// hint.
type Performance struct{}

// NewPerformance creates a new Performance extractor.
func NewPerformance() *Performance {
	return &Performance{}
}

// Extract implements pagescope.Extractor.
func (x *Performance) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	var hints []*pagescope.Hint
	images := query(doc, "img")

	var oversized int
	for _, img := range images {
		r := img.Rendering()
		natural := r.NaturalWidth * r.NaturalHeight
		drawn := r.ClientWidth * r.ClientHeight
		if natural > oversizedNaturalPixels && drawn > 0 && natural/drawn > oversizedRatio {
			oversized++
		}
	}
	if oversized > 0 {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityMedium,
			Label:    "Potentially oversized images",
			Detail:   fmt.Sprintf("%d image(s) look much larger than rendered size.", oversized),
		})
	}

	var notLazy int
	fold := doc.ViewportHeight() * belowFoldFactor
	for _, img := range images {
		r := img.Rendering()
		if r.Top > fold && r.Loading != "lazy" {
			notLazy++
		}
	}
	if notLazy > 0 {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityLow,
			Label:    "Missing lazy-loading",
			Detail:   fmt.Sprintf("%d below-the-fold image(s) are not marked loading='lazy'.", notLazy),
		})
	}

	var blocking int
	for _, s := range query(doc, "head script[src]") {
		if !hasAttr(s, "async") && !hasAttr(s, "defer") {
			blocking++
		}
	}
	if blocking > 0 {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityHigh,
			Label:    "Render-blocking scripts",
			Detail:   fmt.Sprintf("%d script(s) in <head> load without async/defer.", blocking),
		})
	}

	resources := doc.Resources()
	var transfer float64
	for _, r := range resources {
		if !math.IsNaN(r.TransferSize) && !math.IsInf(r.TransferSize, 0) {
			transfer += r.TransferSize
		}
	}
	transferMB := fmt.Sprintf("%.2f", transfer/1024/1024)
	if transfer > heavyTransferBytes {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityMedium,
			Label:    "Heavy network payload",
			Detail:   fmt.Sprintf("Approx transfer size is %s MB.", transferMB),
		})
	}

	base := doc.URL()
	host := pageHostname(doc)
	hosts := make(map[string]struct{})
	var thirdParty int
	for _, s := range query(doc, "script[src]") {
		abs, ok := pagescope.ToAbsoluteURL(attr(s, "src"), base)
		if !ok {
			continue
		}
		h := pagescope.Hostname(abs)
		if h == host {
			continue
		}
		thirdParty++
		hosts[h] = struct{}{}
	}
	if len(hosts) >= manyThirdPartyHosts {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityMedium,
			Label:    "Many third-party scripts",
			Detail:   fmt.Sprintf("%d script(s) are loaded from other domains.", thirdParty),
		})
	}

	if len(hints) == 0 {
		hints = append(hints, &pagescope.Hint{
			Severity: pagescope.SeverityLow,
			Label:    "No major issues flagged",
			Detail:   "Quick checks did not detect obvious performance risks.",
		})
	}

	rows := [][]string{{"severity", "label", "detail"}}
	for _, h := range hints {
		rows = append(rows, []string{string(h.Severity), h.Label, h.Detail})
	}

	return &pagescope.Result{
		Action: pagescope.ActionPerformance,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Hints", len(hints)),
			pagescope.NewStat("Resources", len(resources)),
			{Label: "Transfer (MB)", Value: transferMB},
		},
		CSVContent: pagescope.ToCSV(rows),
		Hints:      hints,
	}, nil
}
