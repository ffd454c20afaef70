// Package aggregate merges articles from independently generated analysis
// reports into a single date-ordered view, with optional filtering by source
// and relevance and optional per-source splitting.
package aggregate

import (
	"sort"
	"time"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// SourceFilter restricts aggregation to one alert stream.
type SourceFilter string

const (
	FilterAll         SourceFilter = "all"
	FilterGoogleOnly  SourceFilter = "google_only"
	FilterScholarOnly SourceFilter = "scholar_only"
)

// Options controls filtering and ordering of the aggregated list.
type Options struct {
	// IncludeNonRelevant keeps articles the categorizer judged not relevant.
	IncludeNonRelevant bool

	// SourceFilter limits output to a single source. Zero value means all.
	SourceFilter SourceFilter

	// DedupByURL drops repeated URLs, first seen wins. Merge order puts
	// Google Alerts articles ahead of Scholar articles, so a cross-posted
	// article keeps its Google Alerts entry.
	DedupByURL bool
}

// dateLayouts are the formats report dates appear in: plain dates and
// RFC3339 variants from report timestamps, plus the RFC1123-style Date
// header carried over from the alert email.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// parseDate attempts each known layout. The second return is false when the
// date is absent or unparseable; such articles sort after all dated ones.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Aggregate filters and orders articles from one or more reports. Input order
// must be merge order: all articles of the first report, then the second, and
// so on. The input slice is never modified and repeated calls with the same
// input produce the same output.
func Aggregate(articles []models.ListedArticle, opts Options) []models.ListedArticle {
	out := make([]models.ListedArticle, 0, len(articles))

	for _, a := range articles {
		if !opts.IncludeNonRelevant && !a.IsRelevant {
			continue
		}
		switch opts.SourceFilter {
		case FilterGoogleOnly:
			if a.Source != models.SourceGoogleAlerts {
				continue
			}
		case FilterScholarOnly:
			if a.Source != models.SourceScholarAlerts {
				continue
			}
		}
		out = append(out, a)
	}

	if opts.DedupByURL {
		out = dedupByURL(out)
	}

	// Parse each date once up front; the comparator runs O(n log n) times.
	type entry struct {
		article models.ListedArticle
		date    time.Time
		dated   bool
	}
	entries := make([]entry, len(out))
	for i, a := range out {
		entries[i].article = a
		entries[i].date, entries[i].dated = parseDate(a.Date)
	}

	// Stable sort keeps merge order on equal dates, which is what places
	// Google Alerts articles ahead of Scholar articles on a tie.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].dated != entries[j].dated {
			return entries[i].dated
		}
		if !entries[i].dated {
			return false
		}
		return entries[i].date.After(entries[j].date)
	})

	for i, e := range entries {
		out[i] = e.article
	}
	return out
}

// BySource runs the aggregation independently per source and returns a map
// keyed by source tag. Sources that contributed nothing are absent.
func BySource(articles []models.ListedArticle, opts Options) map[models.Source][]models.ListedArticle {
	out := make(map[models.Source][]models.ListedArticle)

	for _, source := range []models.Source{models.SourceGoogleAlerts, models.SourceScholarAlerts} {
		var subset []models.ListedArticle
		for _, a := range articles {
			if a.Source == source {
				subset = append(subset, a)
			}
		}
		// Options apply unchanged, so a source filter empties the other
		// source's partition rather than being bypassed by the split.
		if ordered := Aggregate(subset, opts); len(ordered) > 0 {
			out[source] = ordered
		}
	}

	return out
}

func dedupByURL(articles []models.ListedArticle) []models.ListedArticle {
	seen := make(map[string]bool, len(articles))
	out := articles[:0:0]

	for _, a := range articles {
		if a.URL != "" && seen[a.URL] {
			continue
		}
		if a.URL != "" {
			seen[a.URL] = true
		}
		out = append(out, a)
	}

	return out
}
