package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/pagescope"
)

// categoryKeywords maps hostname substrings to tracker categories. Rules are
// evaluated in order and the first match wins.
var categoryKeywords = []struct {
	category pagescope.Category
	keywords []string
}{
	{pagescope.CategoryAnalytics, []string{"google-analytics", "doubleclick", "segment", "mixpanel", "amplitude", "hotjar", "clarity", "fullstory"}},
	{pagescope.CategoryTagManager, []string{"googletagmanager", "tagmanager", "tealium"}},
	{pagescope.CategorySocial, []string{"facebook", "instagram", "twitter", "tiktok", "linkedin", "pinterest"}},
	{pagescope.CategoryAds, []string{"adservice", "adsystem", "adnxs", "taboola", "outbrain", "criteo", "pubmatic"}},
	{pagescope.CategoryCDN, []string{"cloudfront", "akamai", "fastly", "cdn"}},
}

// Categorize returns the tracker category of a hostname.
func Categorize(host string) pagescope.Category {
	h := strings.ToLower(host)
	for _, rule := range categoryKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(h, kw) {
				return rule.category
			}
		}
	}
	return pagescope.CategoryOther
}

// Ensure Privacy implements pagescope.Extractor.
var _ pagescope.Extractor = (*Privacy)(nil)

// Privacy aggregates third-party hostnames referenced by the resource
// timeline, scripts and iframes.
type Privacy struct{}

// NewPrivacy creates a new Privacy extractor.
func NewPrivacy() *Privacy {
	return &Privacy{}
}

type refKind int

const (
	refResource refKind = iota
	refScript
	refIframe
)

// Extract implements pagescope.Extractor.
func (x *Privacy) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	base := doc.URL()
	pageHost := pageHostname(doc)

	byHost := make(map[string]*pagescope.PrivacyDomain)
	domains := []*pagescope.PrivacyDomain{}
	bump := func(host string, kind refKind) {
		if host == "" || host == pageHost {
			return
		}
		d, ok := byHost[host]
		if !ok {
			d = &pagescope.PrivacyDomain{Domain: host, Category: Categorize(host)}
			byHost[host] = d
			domains = append(domains, d)
		}
		switch kind {
		case refResource:
			d.Resources++
		case refScript:
			d.ScriptRefs++
		case refIframe:
			d.IframeRefs++
		}
	}

	for _, r := range doc.Resources() {
		bump(pagescope.Hostname(r.Name), refResource)
	}
	for _, s := range query(doc, "script[src]") {
		if abs, ok := pagescope.ToAbsoluteURL(attr(s, "src"), base); ok {
			bump(pagescope.Hostname(abs), refScript)
		}
	}
	for _, f := range query(doc, "iframe[src]") {
		if abs, ok := pagescope.ToAbsoluteURL(attr(f, "src"), base); ok {
			bump(pagescope.Hostname(abs), refIframe)
		}
	}

	sort.SliceStable(domains, func(i, j int) bool { return domains[i].Total() > domains[j].Total() })

	var total int
	rows := [][]string{{"domain", "category", "resources", "scriptRefs", "iframeRefs"}}
	for _, d := range domains {
		total += d.Total()
		rows = append(rows, []string{
			d.Domain,
			string(d.Category),
			strconv.Itoa(d.Resources),
			strconv.Itoa(d.ScriptRefs),
			strconv.Itoa(d.IframeRefs),
		})
	}

	return &pagescope.Result{
		Action: pagescope.ActionPrivacy,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Third-Party Domains", len(domains)),
			pagescope.NewStat("Total Third-Party References", total),
		},
		CSVContent: pagescope.ToCSV(rows),
		Domains:    domains,
	}, nil
}
