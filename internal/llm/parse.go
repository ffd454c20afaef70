package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// parseDecision turns raw model output into a Decision. Strict JSON decoding
// is attempted first; when a model wraps its answer in prose or emits minor
// JSON defects, the salvage path pulls the known fields out with gjson.
// Per-article counts are always recomputed from the article list, never
// trusted from the model.
func parseDecision(content string) (models.Decision, error) {
	content = stripFences(content)

	var decision models.Decision
	if err := json.Unmarshal([]byte(content), &decision); err == nil &&
		gjson.Get(content, "is_relevant").Exists() {
		finalizeCounts(&decision)
		return decision, nil
	}

	salvaged, ok := salvageDecision(content)
	if !ok {
		return models.Decision{}, fmt.Errorf("no decodable JSON object in model output")
	}
	finalizeCounts(&salvaged)
	return salvaged, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if idx := strings.Index(content, "\n"); idx >= 0 {
		content = content[idx+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// salvageDecision extracts fields from the first {...} span in the output.
func salvageDecision(content string) (models.Decision, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return models.Decision{}, false
	}

	body := content[start : end+1]
	if !gjson.Valid(body) {
		return models.Decision{}, false
	}

	root := gjson.Parse(body)
	if !root.Get("is_relevant").Exists() {
		return models.Decision{}, false
	}

	decision := models.Decision{
		IsRelevant: root.Get("is_relevant").Bool(),
		Confidence: root.Get("confidence").Float(),
		Category:   root.Get("category").String(),
		Reasoning:  root.Get("reasoning").String(),
		Summary:    root.Get("summary").String(),
	}

	for _, kw := range root.Get("keywords").Array() {
		decision.Keywords = append(decision.Keywords, kw.String())
	}
	for _, a := range root.Get("articles").Array() {
		decision.Articles = append(decision.Articles, models.ArticleAnalysis{
			Title:              a.Get("title").String(),
			URL:                a.Get("url").String(),
			Summary:            a.Get("summary").String(),
			IsRelevant:         a.Get("is_relevant").Bool(),
			RelevanceReasoning: a.Get("relevance_reasoning").String(),
		})
	}

	return decision, true
}

func finalizeCounts(decision *models.Decision) {
	if len(decision.Articles) == 0 {
		return
	}

	decision.TotalArticleCount = len(decision.Articles)
	decision.RelevantArticleCount = 0
	for _, a := range decision.Articles {
		if a.IsRelevant {
			decision.RelevantArticleCount++
		}
	}
}
