package pagescope

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// defaultPorts maps a scheme to the port ToAbsoluteURL drops.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// ToAbsoluteURL resolves raw against base and returns the absolute form.
// Returns false if raw is empty, cannot be parsed, does not resolve to an
// absolute URL, or uses the javascript: scheme.
func ToAbsoluteURL(raw string, base *url.URL) (string, bool) {
	if raw == "" {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if !resolved.IsAbs() {
		return "", false
	}
	if strings.EqualFold(resolved.Scheme, "javascript") {
		return "", false
	}
	resolved.Host = strings.ToLower(resolved.Host)
	if port := resolved.Port(); port != "" && port == defaultPorts[resolved.Scheme] {
		resolved.Host = strings.TrimSuffix(resolved.Host, ":"+port)
	}
	if resolved.Host != "" && resolved.Path == "" && resolved.Opaque == "" {
		resolved.Path = "/"
	}
	return resolved.String(), true
}

// Hostname returns the lower-case hostname of an absolute URL, or "" if the
// URL cannot be parsed.
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// ParseSrcset returns the URL of every candidate in a srcset attribute.
func ParseSrcset(value string) []string {
	var urls []string
	for _, entry := range strings.Split(value, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		urls = append(urls, fields[0])
	}
	return urls
}

// Phone number digit count bounds, inclusive.
const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

// NormalizePhone strips every non-digit character from raw, keeping a
// leading "+". Returns "" if the digit count falls outside
// [MinPhoneDigits, MaxPhoneDigits].
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}
	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			digits++
		}
	}
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return ""
	}
	return b.String()
}

// CollapseSpace replaces runs of whitespace with a single space and trims
// the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
