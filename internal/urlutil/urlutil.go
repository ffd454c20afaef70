// Package urlutil unwraps the redirect URL formats used in Google Alert and
// Google Scholar Alert emails to recover the underlying article URL.
//
// Three wrapper shapes are recognized:
//
//	https://www.google.com/url?...&url=<target>&...
//	https://scholar.google.com/scholar_url?url=<target>&...
//	https://scholar.googleusercontent.com/scholar?...&url=<target>&...
package urlutil

import (
	"net/url"
	"strings"
)

// DefaultExcludedDomains are domains that never point at alert articles:
// Google's own pages, social sharing links, and standards boilerplate.
var DefaultExcludedDomains = []string{
	"google", "facebook", "twitter", "linkedin", "youtube", "w3.org",
}

// Resolve returns the canonical destination URL for a raw link captured from
// an alert email. Unrecognized or malformed input comes back unchanged;
// Resolve never fails and is the identity on already-canonical URLs.
func Resolve(raw string) string {
	lower := strings.ToLower(raw)
	if !strings.Contains(lower, "google.com/url") && !strings.Contains(lower, "scholar.google") {
		return raw
	}

	if dest := resolveStrict(raw); dest != "" {
		return dest
	}
	if dest := resolveScan(raw); dest != "" {
		return dest
	}
	return raw
}

// resolveStrict extracts the url= parameter with standards-compliant query
// parsing. ParseQuery performs exactly one level of percent-decoding; the
// value is not decoded again, so a doubly-encoded target stays encoded one
// level deep rather than being corrupted by over-decoding.
func resolveStrict(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	// A partial parse error still yields the pairs that were decodable;
	// the first url= occurrence wins.
	values, _ := url.ParseQuery(u.RawQuery)
	if dest := values.Get("url"); isPlausible(dest) {
		return dest
	}
	return ""
}

// resolveScan is the permissive fallback for wrappers whose query strings
// confuse strict parsing, such as un-encoded tracking parameters. It locates
// url= and takes the run of characters up to the next delimiter.
func resolveScan(raw string) string {
	idx := indexURLParam(raw)
	if idx < 0 {
		return ""
	}

	run := raw[idx:]
	if end := strings.IndexAny(run, "& \t\n\r"); end >= 0 {
		run = run[:end]
	}
	if run == "" {
		return ""
	}

	decoded, err := url.QueryUnescape(run)
	if err != nil {
		decoded = run
	}
	if isPlausible(decoded) {
		return decoded
	}
	return ""
}

// indexURLParam returns the offset just past a "url=" query parameter, or -1.
// Only ?url= and &url= count; parameters like aurl= must not match.
func indexURLParam(s string) int {
	for i := 0; i+4 < len(s); i++ {
		if (s[i] == '?' || s[i] == '&') && strings.HasPrefix(s[i+1:], "url=") {
			return i + 5
		}
	}
	return -1
}

// isPlausible reports whether dest looks like a real destination URL.
func isPlausible(dest string) bool {
	lower := strings.ToLower(dest)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsExcludedDomain reports whether the URL belongs to a domain that should be
// skipped when collecting article links. With no explicit list the default
// exclusions apply.
func IsExcludedDomain(rawURL string, excludeDomains ...string) bool {
	if len(excludeDomains) == 0 {
		excludeDomains = DefaultExcludedDomains
	}

	lower := strings.ToLower(rawURL)
	for _, domain := range excludeDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}
