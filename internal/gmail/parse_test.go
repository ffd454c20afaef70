package gmail

import (
	"testing"
	"time"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

func mustParse(t *testing.T, day string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	return parsed
}

const googleAlertHTML = `
<html><body>
<table>
<tr><td>
<a href="https://www.google.com/url?url=https://mining-journal.com/ml-exploration&ct=ga&cd=CAIyGg">
<span>AI Transforms Mineral Exploration</span>
</a>
<div>New machine learning models are changing how explorers target deposits.</div>
</td></tr>
<tr><td>
<a href="https://www.google.com/url?url=https://example.com/copper-ml&ct=ga">
Copper Discovery Powered by Machine Learning
</a>
</td></tr>
<tr><td>
<a href="https://www.google.com/alerts/edit?hl=en">Edit this alert</a>
<a href="https://www.facebook.com/sharer/sharer.php?u=x">Share</a>
</td></tr>
</table>
</body></html>`

const scholarAlertHTML = `
<html><body>
<table>
<tr><td>
<h3><a href="https://scholar.google.com/scholar_url?url=https://arxiv.org/abs/2401.12345">
Machine Learning for Mineral Exploration: A Comprehensive Review
</a></h3>
<div>J Doe, A Smith - arXiv preprint arXiv:2401.12345, 2024</div>
<div>This paper presents a comprehensive review of machine learning techniques...</div>
</td></tr>
<tr><td>
<h3><a href="https://scholar.google.com/scholar_url?url=https://www.sciencedirect.com/science/article/pii/S0169136824000123">
Deep Learning for Geophysical Data Analysis
</a></h3>
<div>B Johnson - Journal of Applied Geophysics, 2024</div>
<div>We propose a novel deep learning approach for analyzing geophysical data...</div>
</td></tr>
<tr><td>
<a href="https://scholar.google.com/citations?view_op=view_citation">View citation</a>
</td></tr>
</table>
</body></html>`

func TestParseAlert_GoogleHTML(t *testing.T) {
	alert := ParseAlert(models.KindGoogle, "Google Alert - machine learning mineral exploration", googleAlertHTML)

	if alert.Query != "machine learning mineral exploration" {
		t.Errorf("Query = %q", alert.Query)
	}
	if len(alert.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2 (google links excluded)", len(alert.Articles))
	}

	first := alert.Articles[0]
	if first.Title != "AI Transforms Mineral Exploration" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://mining-journal.com/ml-exploration" {
		t.Errorf("redirect not resolved, url = %q", first.URL)
	}
	if alert.Articles[1].URL != "https://example.com/copper-ml" {
		t.Errorf("second url = %q", alert.Articles[1].URL)
	}
}

func TestParseAlert_ScholarHTML(t *testing.T) {
	alert := ParseAlert(models.KindScholar, "new results for machine learning mineral exploration", scholarAlertHTML)

	if alert.Query != "new results for machine learning mineral exploration" {
		t.Errorf("Query = %q", alert.Query)
	}
	if len(alert.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2 (citation link excluded)", len(alert.Articles))
	}

	first := alert.Articles[0]
	if first.Title != "Machine Learning for Mineral Exploration: A Comprehensive Review" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://arxiv.org/abs/2401.12345" {
		t.Errorf("scholar redirect not resolved, url = %q", first.URL)
	}
	if first.Snippet != "This paper presents a comprehensive review of machine learning techniques..." {
		t.Errorf("snippet = %q", first.Snippet)
	}

	second := alert.Articles[1]
	if second.URL != "https://www.sciencedirect.com/science/article/pii/S0169136824000123" {
		t.Errorf("second url = %q", second.URL)
	}
}

func TestParseAlert_PlainTextFallback(t *testing.T) {
	body := `Your alert results:
https://www.google.com/url?url=https://example.com/article-one&ct=ga
https://example.com/article-two.
See https://www.google.com/alerts to manage alerts.`

	alert := ParseAlert(models.KindGoogle, "Google Alert - lithium", body)

	if len(alert.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2, got %+v", len(alert.Articles), alert.Articles)
	}
	if alert.Articles[0].URL != "https://example.com/article-one" {
		t.Errorf("first url = %q", alert.Articles[0].URL)
	}
	if alert.Articles[1].URL != "https://example.com/article-two" {
		t.Errorf("trailing punctuation not trimmed: %q", alert.Articles[1].URL)
	}
}

func TestParseAlert_DuplicateURLsCollapsed(t *testing.T) {
	body := `<html><body>
<a href="https://www.google.com/url?url=https://example.com/same&ct=ga">First mention</a>
<a href="https://www.google.com/url?url=https://example.com/same&ct=gb">Second mention</a>
</body></html>`

	alert := ParseAlert(models.KindGoogle, "Google Alert - q", body)
	if len(alert.Articles) != 1 {
		t.Errorf("duplicate URLs should collapse, got %d articles", len(alert.Articles))
	}
}

func TestParseAlert_EmptyBody(t *testing.T) {
	alert := ParseAlert(models.KindGoogle, "Google Alert - q", "")
	if len(alert.Articles) != 0 {
		t.Errorf("empty body should yield no articles, got %d", len(alert.Articles))
	}
	if alert.Query != "q" {
		t.Errorf("Query = %q", alert.Query)
	}
}

func TestParseAlert_FullBodyTruncated(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}

	alert := ParseAlert(models.KindGoogle, "Google Alert - q", string(long))
	if len(alert.FullBody) != fullBodyLimit {
		t.Errorf("FullBody length = %d, want %d", len(alert.FullBody), fullBodyLimit)
	}
}

func TestBuildQueryWindows(t *testing.T) {
	// Covered via the fetcher's query builder: plain lookback and ranged
	// window semantics.
	now := mustParse(t, "2024-12-28")

	tests := []struct {
		name          string
		kind          models.AlertKind
		days, start   int
		want          string
	}{
		{
			name: "Google lookback",
			kind: models.KindGoogle,
			days: 7,
			want: "from:googlealerts-noreply@google.com after:2024/12/21",
		},
		{
			name: "Scholar lookback",
			kind: models.KindScholar,
			days: 7,
			want: "from:scholaralerts-noreply@google.com after:2024/12/21",
		},
		{
			name:  "Ranged window",
			kind:  models.KindScholar,
			days:  250,
			start: 280,
			want:  "from:scholaralerts-noreply@google.com after:2024/03/23 before:2024/04/22",
		},
		{
			name:  "Start not exceeding end is ignored",
			kind:  models.KindGoogle,
			days:  7,
			start: 3,
			want:  "from:googlealerts-noreply@google.com after:2024/12/21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.kind, tt.days, tt.start, now); got != tt.want {
				t.Errorf("buildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}
