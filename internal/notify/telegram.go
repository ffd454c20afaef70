// Package notify sends an optional Telegram digest of relevant articles
// after an analysis run.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// maxDigestArticles caps the digest length; Telegram rejects messages over
// 4096 characters.
const maxDigestArticles = 15

// Notifier posts digests to a single Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New creates a notifier, validating the bot token against the Telegram API.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram token and chat ID are both required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{api: api, chatID: chatID}, nil
}

// SendDigest posts a summary of the run's relevant articles. Nothing is sent
// when no article was relevant.
func (n *Notifier) SendDigest(kind models.AlertKind, result models.AnalysisResult) error {
	digest := buildDigest(kind, result)
	if digest == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, digest)
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram digest: %w", err)
	}
	return nil
}

func buildDigest(kind models.AlertKind, result models.AnalysisResult) string {
	label := "Google Alerts"
	if kind == models.KindScholar {
		label = "Google Scholar Alerts"
	}

	var articles []models.ArticleAnalysis
	for _, r := range result.Results {
		if !r.Decision.IsRelevant {
			continue
		}
		if len(r.Decision.Articles) > 0 {
			for _, a := range r.Decision.Articles {
				if a.IsRelevant {
					articles = append(articles, a)
				}
			}
			continue
		}
		for _, a := range r.Alert.Articles {
			articles = append(articles, models.ArticleAnalysis{Title: a.Title, URL: a.URL})
		}
	}

	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 %s digest: %d/%d alerts relevant\n\n", label, result.RelevantAlerts, result.TotalAlerts)

	for i, a := range articles {
		if i == maxDigestArticles {
			fmt.Fprintf(&b, "… and %d more\n", len(articles)-maxDigestArticles)
			break
		}
		title := a.Title
		if title == "" {
			title = a.URL
		}
		fmt.Fprintf(&b, "• %s\n  %s\n", title, a.URL)
	}

	return b.String()
}
