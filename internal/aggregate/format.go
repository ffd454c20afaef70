package aggregate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// Format names accepted by FormatArticles.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// FormatArticles renders an aggregated article list in the requested format.
// Unknown format names fall back to plain text.
func FormatArticles(articles []models.ListedArticle, format string) (string, error) {
	if len(articles) == 0 {
		return "No articles found.\n", nil
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(articles, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal article list: %w", err)
		}
		return string(data), nil
	case FormatMarkdown:
		return formatMarkdown(articles), nil
	default:
		return formatText(articles), nil
	}
}

func relevanceIcon(relevant bool) string {
	if relevant {
		return "✅"
	}
	return "❌"
}

func sourceLabel(source models.Source, markdown bool) string {
	if markdown {
		if source == models.SourceGoogleAlerts {
			return "🔍 Google Alert"
		}
		return "🎓 Scholar Alert"
	}
	if source == models.SourceGoogleAlerts {
		return "[Google Alert]"
	}
	return "[Scholar Alert]"
}

func formatMarkdown(articles []models.ListedArticle) string {
	var b strings.Builder

	b.WriteString("# Chronological Article List\n\n")
	fmt.Fprintf(&b, "**Total Articles:** %d\n\n", len(articles))

	for i, a := range articles {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, a.Title)
		fmt.Fprintf(&b, "%s **Relevant:** %t\n", relevanceIcon(a.IsRelevant), a.IsRelevant)
		fmt.Fprintf(&b, "%s | **Date:** %s\n", sourceLabel(a.Source, true), a.Date)
		fmt.Fprintf(&b, "**Alert Query:** %s\n\n", a.AlertQuery)
		fmt.Fprintf(&b, "**URL:** %s\n\n", a.URL)

		if a.Summary != "" {
			fmt.Fprintf(&b, "**Summary:** %s\n\n", a.Summary)
		}
		if a.RelevanceReasoning != "" {
			fmt.Fprintf(&b, "**Relevance:** %s\n\n", a.RelevanceReasoning)
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

func formatText(articles []models.ListedArticle) string {
	rule := strings.Repeat("=", 80)
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("CHRONOLOGICAL ARTICLE LIST\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Articles: %d\n", len(articles))
	b.WriteString(rule + "\n\n")

	for i, a := range articles {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, relevanceIcon(a.IsRelevant), a.Title)
		fmt.Fprintf(&b, "   %s | Date: %s\n", sourceLabel(a.Source, false), a.Date)
		fmt.Fprintf(&b, "   Alert Query: %s\n", a.AlertQuery)
		fmt.Fprintf(&b, "   URL: %s\n", a.URL)

		if a.Summary != "" {
			fmt.Fprintf(&b, "   Summary: %s\n", a.Summary)
		}
		if a.RelevanceReasoning != "" {
			fmt.Fprintf(&b, "   Relevance: %s\n", a.RelevanceReasoning)
		}

		b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
	}

	return b.String()
}
