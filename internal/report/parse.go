package report

import (
	"encoding/json"
	"fmt"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// ParseArticles flattens a JSON analysis report into listed articles tagged
// with the given source. When a decision carries per-article analysis that is
// used; otherwise the raw alert links are listed with the alert-level
// decision applied to each (older report format).
//
// Records with no URL are counted as skipped rather than failing the whole
// report; a missing title is substituted, not skipped.
func ParseArticles(data []byte, source models.Source) (articles []models.ListedArticle, skipped int, err error) {
	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, 0, fmt.Errorf("invalid report JSON: %w", err)
	}

	for _, r := range result.Results {
		if len(r.Decision.Articles) > 0 {
			for _, a := range r.Decision.Articles {
				if a.URL == "" {
					skipped++
					continue
				}
				articles = append(articles, models.ListedArticle{
					Title:              titleOrDefault(a.Title),
					URL:                a.URL,
					Summary:            a.Summary,
					Date:               r.Alert.Date,
					Source:             source,
					AlertQuery:         r.Alert.Query,
					IsRelevant:         a.IsRelevant,
					RelevanceReasoning: a.RelevanceReasoning,
				})
			}
			continue
		}

		for _, a := range r.Alert.Articles {
			if a.URL == "" {
				skipped++
				continue
			}
			articles = append(articles, models.ListedArticle{
				Title:              titleOrDefault(a.Title),
				URL:                a.URL,
				Summary:            a.Snippet,
				Date:               r.Alert.Date,
				Source:             source,
				AlertQuery:         r.Alert.Query,
				IsRelevant:         r.Decision.IsRelevant,
				RelevanceReasoning: r.Decision.Reasoning,
			})
		}
	}

	return articles, skipped, nil
}

func titleOrDefault(title string) string {
	if title == "" {
		return "No Title"
	}
	return title
}
