// Package llm judges alert relevance with an LLM. The OpenAI SDK is the only
// client; OpenRouter and Gemini are reached through their OpenAI-compatible
// endpoints, so one request path covers all three providers.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/logger"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1/"
	geminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// Categorizer sends alerts to an LLM provider and parses relevance decisions.
type Categorizer struct {
	client   openai.Client
	provider string
	model    string
	log      *logger.Logger
}

// New builds a categorizer for the configured provider and model.
func New(cfg *config.Config, log *logger.Logger) (*Categorizer, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", cfg.LLMProvider)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		opts = append(opts, option.WithBaseURL(openRouterBaseURL))
	case config.ProviderGemini:
		opts = append(opts, option.WithBaseURL(geminiBaseURL))
	}

	return &Categorizer{
		client:   openai.NewClient(opts...),
		provider: cfg.LLMProvider,
		model:    cfg.LLMModel,
		log:      log,
	}, nil
}

// Provider returns the configured provider name.
func (c *Categorizer) Provider() string { return c.provider }

// Model returns the configured model name.
func (c *Categorizer) Model() string { return c.model }

// Categorize judges one alert. It never fails the batch: request or parse
// errors come back as an error-tagged Decision so the remaining alerts are
// still processed.
func (c *Categorizer) Categorize(ctx context.Context, alert models.Alert) models.Decision {
	prompt := buildPrompt(alert)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are an expert in mineral exploration and machine learning. Respond only with valid JSON."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		c.log.Error("categorization request failed", "provider", c.provider, "error", err)
		return errorDecision("error", fmt.Sprintf("Error during categorization: %v", err))
	}
	if len(response.Choices) == 0 {
		c.log.Error("empty response from provider", "provider", c.provider)
		return errorDecision("error", "No response from LLM provider")
	}

	decision, err := parseDecision(response.Choices[0].Message.Content)
	if err != nil {
		c.log.Error("failed to parse model response", "error", err)
		return errorDecision("parse_error", fmt.Sprintf("Could not parse LLM response: %v", err))
	}

	return decision
}

// Batch categorizes a list of alerts in order.
func (c *Categorizer) Batch(ctx context.Context, alerts []models.Alert) []models.Decision {
	decisions := make([]models.Decision, 0, len(alerts))
	for i, alert := range alerts {
		c.log.Debug("categorizing alert", "index", i+1, "total", len(alerts), "query", alert.Query)
		decisions = append(decisions, c.Categorize(ctx, alert))
	}
	return decisions
}

func errorDecision(category, reasoning string) models.Decision {
	return models.Decision{
		IsRelevant: false,
		Confidence: 0,
		Category:   category,
		Reasoning:  reasoning,
		Summary:    "Could not categorize due to error",
		Keywords:   []string{},
	}
}

func buildPrompt(alert models.Alert) string {
	var articles strings.Builder
	for i, a := range alert.Articles {
		fmt.Fprintf(&articles, "\n%d. Title: %s\n", i+1, orNA(a.Title))
		fmt.Fprintf(&articles, "   URL: %s\n", orNA(a.URL))
		if a.Snippet != "" {
			fmt.Fprintf(&articles, "   Snippet: %s\n", a.Snippet)
		}
	}

	return fmt.Sprintf(`You are an expert in mineral exploration and machine learning. Your task is to analyze Google Alert articles and determine if they are relevant to a GitHub repository about machine learning applications in mineral exploration.

The repository (https://github.com/RichardScottOZ/mineral-exploration-machine-learning) focuses on:
- Machine learning techniques applied to mineral exploration
- Geoscience data analysis using ML/AI
- Remote sensing and geophysical data processing
- Predictive modeling for mineral deposits
- Geological mapping with ML
- Exploration targeting using data science
- Mining industry AI applications

Google Alert Query: %s
Date: %s

Articles in this alert:
%s

Analyze these articles and provide:
1. Is this alert relevant to the mineral-exploration-machine-learning repository? (true/false)
2. Confidence level (0.0 to 1.0)
3. Category (e.g., "Machine Learning - Exploration", "Remote Sensing", "Geophysics", "Mining Technology", "Not Relevant")
4. Brief reasoning for your decision
5. A one-sentence summary of the alert content
6. Key keywords (2-5 words)
7. A per-article analysis with relevance for each article

Respond in JSON format:
{
    "is_relevant": boolean,
    "confidence": float,
    "category": "string",
    "reasoning": "string",
    "summary": "string",
    "keywords": ["keyword1", "keyword2"],
    "articles": [
        {
            "title": "string",
            "url": "string",
            "summary": "string",
            "is_relevant": boolean,
            "relevance_reasoning": "string"
        }
    ]
}`, orUnknown(alert.Query), orUnknown(alert.Date), articles.String())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
