// Package report renders analysis results as markdown or JSON and reads the
// JSON form back for the listing tool.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// Titles keyed by alert kind for the markdown header.
var reportTitles = map[models.AlertKind]string{
	models.KindGoogle:  "Google Alerts Analysis Report",
	models.KindScholar: "Google Scholar Alerts Analysis Report",
}

// JSON serializes the analysis result as the machine-readable report.
func JSON(result models.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Markdown renders the human-readable analysis report.
func Markdown(result models.AnalysisResult, kind models.AlertKind) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitles[kind])
	fmt.Fprintf(&b, "**Generated:** %s\n", result.Timestamp)
	fmt.Fprintf(&b, "**LLM Provider:** %s (%s)\n", result.Configuration.LLMProvider, result.Configuration.LLMModel)
	fmt.Fprintf(&b, "**Period:** Last %d days\n\n", result.Configuration.DaysBack)

	if result.Statistics != nil {
		b.WriteString("## Email Statistics\n\n")
		fmt.Fprintf(&b, "- **Total Alerts (in period):** %d\n", result.Statistics.Total)
		fmt.Fprintf(&b, "- **Unread:** %d\n", result.Statistics.Unread)
		fmt.Fprintf(&b, "- **Read:** %d\n\n", result.Statistics.Read)
	}

	b.WriteString("## Analysis Summary\n\n")
	fmt.Fprintf(&b, "- **Alerts Processed:** %d\n", result.TotalAlerts)
	fmt.Fprintf(&b, "- **Relevant to mineral-exploration-machine-learning:** %d\n", result.RelevantAlerts)
	rate := 0.0
	if result.TotalAlerts > 0 {
		rate = float64(result.RelevantAlerts) / float64(result.TotalAlerts) * 100
	}
	fmt.Fprintf(&b, "- **Relevance Rate:** %.1f%%\n\n", rate)

	b.WriteString("## Relevant Alerts\n\n")

	relevant, nonRelevant := splitResults(result.Results)

	if len(relevant) == 0 {
		b.WriteString("*No relevant alerts found.*\n\n")
	}
	for i, r := range relevant {
		writeRelevantAlert(&b, i+1, r)
	}

	if len(nonRelevant) > 0 {
		b.WriteString("## Non-Relevant Alerts\n\n")
		for i, r := range nonRelevant {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, r.Alert.Query)
			fmt.Fprintf(&b, "**Category:** %s | **Confidence:** %.2f\n", r.Decision.Category, r.Decision.Confidence)
			if r.Decision.TotalArticleCount > 0 {
				fmt.Fprintf(&b, "**Articles Analyzed:** %d (none relevant)\n", r.Decision.TotalArticleCount)
			}
			fmt.Fprintf(&b, "**Reasoning:** %s\n\n", r.Decision.Reasoning)
		}
	}

	return b.String()
}

// splitResults partitions results into relevant and non-relevant. A result
// with per-article analysis counts as relevant only when at least one of its
// articles is.
func splitResults(results []models.AlertResult) (relevant, nonRelevant []models.AlertResult) {
	for _, r := range results {
		isRelevant := r.Decision.IsRelevant
		if len(r.Decision.Articles) > 0 {
			isRelevant = isRelevant && r.Decision.RelevantArticleCount > 0
		}
		if isRelevant {
			relevant = append(relevant, r)
		} else {
			nonRelevant = append(nonRelevant, r)
		}
	}
	return relevant, nonRelevant
}

func writeRelevantAlert(b *strings.Builder, n int, r models.AlertResult) {
	fmt.Fprintf(b, "### %d. %s\n\n", n, r.Alert.Query)
	fmt.Fprintf(b, "**Category:** %s\n", r.Decision.Category)
	fmt.Fprintf(b, "**Confidence:** %.2f\n", r.Decision.Confidence)
	fmt.Fprintf(b, "**Date:** %s\n", r.Alert.Date)
	if r.Decision.TotalArticleCount > 0 {
		fmt.Fprintf(b, "**Relevant Articles:** %d/%d\n", r.Decision.RelevantArticleCount, r.Decision.TotalArticleCount)
	}
	fmt.Fprintf(b, "\n**Summary:** %s\n\n", r.Decision.Summary)
	fmt.Fprintf(b, "**Keywords:** %s\n\n", strings.Join(r.Decision.Keywords, ", "))
	fmt.Fprintf(b, "**Reasoning:** %s\n\n", r.Decision.Reasoning)

	b.WriteString("**Articles:**\n\n")
	if len(r.Decision.Articles) > 0 {
		for j, a := range r.Decision.Articles {
			icon := "❌"
			if a.IsRelevant {
				icon = "✅"
			}
			switch {
			case a.URL != "" && a.Title != "":
				fmt.Fprintf(b, "%d. %s [%s](%s)\n", j+1, icon, a.Title, a.URL)
			case a.URL != "":
				fmt.Fprintf(b, "%d. %s %s\n", j+1, icon, a.URL)
			default:
				fmt.Fprintf(b, "%d. %s %s\n", j+1, icon, a.Title)
			}
			if a.Summary != "" {
				fmt.Fprintf(b, "   - **Summary:** %s\n", a.Summary)
			}
			if a.RelevanceReasoning != "" {
				fmt.Fprintf(b, "   - **Relevance:** %s\n", a.RelevanceReasoning)
			}
		}
	} else {
		// Older format: no per-article analysis, list the raw links.
		for j, a := range r.Alert.Articles {
			if a.URL != "" && a.Title != "" {
				fmt.Fprintf(b, "%d. [%s](%s)\n", j+1, a.Title, a.URL)
			} else if a.URL != "" {
				fmt.Fprintf(b, "%d. %s\n", j+1, a.URL)
			}
		}
	}
	b.WriteString("\n")
}

// Write saves report content to a file.
func Write(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
