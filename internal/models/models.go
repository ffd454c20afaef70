// Package models defines the data shapes shared across the alert analysis
// pipeline: alerts as parsed from Gmail, LLM categorization decisions, the
// analysis report format, and the flattened article view used by the
// chronological listing tool.
package models

import "time"

// Source identifies which alert stream an article came from. It is fixed at
// ingestion time and never changed afterwards.
type Source string

const (
	SourceGoogleAlerts  Source = "google_alerts"
	SourceScholarAlerts Source = "scholar_alerts"
)

// AlertKind selects which Gmail sender to fetch from.
type AlertKind string

const (
	KindGoogle  AlertKind = "google"
	KindScholar AlertKind = "scholar"
)

// Sender returns the Gmail from: address for this alert kind.
func (k AlertKind) Sender() string {
	if k == KindScholar {
		return "scholaralerts-noreply@google.com"
	}
	return "googlealerts-noreply@google.com"
}

// Source returns the source tag recorded on articles of this kind.
func (k AlertKind) Source() Source {
	if k == KindScholar {
		return SourceScholarAlerts
	}
	return SourceGoogleAlerts
}

// AlertArticle is a single article link extracted from an alert email. URLs
// are already canonical (redirect wrappers stripped) by the time an
// AlertArticle is built.
type AlertArticle struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Alert is one alert email: the query it was generated for plus the articles
// it carried.
type Alert struct {
	Query     string         `json:"alert_query"`
	Date      string         `json:"date"`
	MessageID string         `json:"message_id"`
	Articles  []AlertArticle `json:"articles"`
	FullBody  string         `json:"full_body,omitempty"`
}

// ArticleAnalysis is the LLM's judgment on one article within an alert.
type ArticleAnalysis struct {
	Title              string `json:"title"`
	URL                string `json:"url"`
	Summary            string `json:"summary,omitempty"`
	IsRelevant         bool   `json:"is_relevant"`
	RelevanceReasoning string `json:"relevance_reasoning,omitempty"`
}

// Decision is the LLM categorization result for a whole alert, including the
// optional per-article breakdown.
type Decision struct {
	IsRelevant           bool              `json:"is_relevant"`
	Confidence           float64           `json:"confidence"`
	Category             string            `json:"category"`
	Reasoning            string            `json:"reasoning"`
	Summary              string            `json:"summary"`
	Keywords             []string          `json:"keywords"`
	Articles             []ArticleAnalysis `json:"articles,omitempty"`
	RelevantArticleCount int               `json:"relevant_article_count"`
	TotalArticleCount    int               `json:"total_article_count"`
}

// AlertResult pairs an alert with its categorization decision.
type AlertResult struct {
	Alert    Alert    `json:"alert"`
	Decision Decision `json:"decision"`
}

// Statistics holds approximate mailbox counts for the queried period.
type Statistics struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Read   int64 `json:"read"`
}

// Configuration echoes the settings a report was produced with.
type Configuration struct {
	LLMProvider   string `json:"llm_provider"`
	LLMModel      string `json:"llm_model"`
	DaysBack      int    `json:"days_back"`
	DaysBackStart int    `json:"days_back_start,omitempty"`
	MaxEmails     int    `json:"max_emails"`
}

// AnalysisResult is the full output of one analysis run, serialized as the
// machine-readable JSON report.
type AnalysisResult struct {
	Timestamp      string        `json:"timestamp"`
	Configuration  Configuration `json:"configuration"`
	Statistics     *Statistics   `json:"statistics,omitempty"`
	TotalAlerts    int           `json:"total_alerts"`
	RelevantAlerts int           `json:"relevant_alerts"`
	Results        []AlertResult `json:"results"`
}

// ListedArticle is the flattened article view consumed by the chronological
// listing tool: one row per article, tagged with its provenance.
type ListedArticle struct {
	Title              string `json:"title"`
	URL                string `json:"url"`
	Summary            string `json:"summary"`
	Date               string `json:"date"`
	Source             Source `json:"source"`
	AlertQuery         string `json:"alert_query"`
	IsRelevant         bool   `json:"is_relevant"`
	RelevanceReasoning string `json:"relevance_reasoning"`
}

// Now is the timestamp format used in reports.
func Now() string {
	return time.Now().Format(time.RFC3339)
}
