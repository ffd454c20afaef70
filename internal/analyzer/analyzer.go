// Package analyzer runs the full alert analysis pipeline: fetch alert emails,
// categorize each one with the configured LLM, and assemble the run report.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/cache"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/gmail"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/llm"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/logger"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

// stateRetention bounds how long processed message IDs are remembered. Gmail
// queries never reach back further than this, so older entries are dead weight.
const stateRetention = 90 * 24 * time.Hour

// Analyzer wires the fetcher, the categorizer and the processed-message state
// into one runnable pipeline.
type Analyzer struct {
	fetcher     *gmail.Fetcher
	categorizer *llm.Categorizer
	state       *cache.Cache
	cfg         *config.Config
	log         *logger.Logger
}

// New builds an analyzer from the loaded configuration. It authenticates
// against Gmail, validates the LLM credentials and loads the processed-message
// state file.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Analyzer, error) {
	fetcher, err := gmail.NewFetcher(ctx, cfg.CredentialsFile, cfg.TokenFile, log)
	if err != nil {
		return nil, fmt.Errorf("gmail setup failed: %w", err)
	}

	categorizer, err := llm.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("llm setup failed: %w", err)
	}

	state, err := cache.Load(cfg.StateFile, stateRetention)
	if err != nil {
		return nil, fmt.Errorf("failed to load state file %s: %w", cfg.StateFile, err)
	}

	return &Analyzer{
		fetcher:     fetcher,
		categorizer: categorizer,
		state:       state,
		cfg:         cfg,
		log:         log,
	}, nil
}

// Run executes one analysis pass for the given alert kind. Already-processed
// emails are skipped unless reprocess is set. Individual alert failures are
// logged and recorded as error decisions; only setup-level faults abort the
// run.
func (a *Analyzer) Run(ctx context.Context, kind models.AlertKind, reprocess bool) (models.AnalysisResult, error) {
	result := models.AnalysisResult{
		Timestamp: models.Now(),
		Configuration: models.Configuration{
			LLMProvider:   a.categorizer.Provider(),
			LLMModel:      a.categorizer.Model(),
			DaysBack:      a.cfg.DaysBack,
			DaysBackStart: a.cfg.DaysBackStart,
			MaxEmails:     a.cfg.MaxEmails,
		},
	}

	stats, err := a.fetcher.Statistics(ctx, kind, a.cfg.DaysBack, a.cfg.DaysBackStart)
	if err != nil {
		a.log.Warn("could not estimate mailbox statistics", "error", err)
	} else {
		result.Statistics = &stats
	}

	alerts, err := a.fetcher.FetchAlerts(ctx, kind, a.cfg.DaysBack, a.cfg.DaysBackStart, int64(a.cfg.MaxEmails))
	if err != nil {
		return result, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	a.log.Info("fetched alerts", "kind", string(kind), "count", len(alerts))

	for i, alert := range alerts {
		if !reprocess && a.state.HasProcessed(alert.MessageID) {
			a.log.Debug("skipping already processed alert",
				"message_id", alert.MessageID, "query", alert.Query)
			continue
		}

		a.log.Info("categorizing alert",
			"progress", fmt.Sprintf("%d/%d", i+1, len(alerts)),
			"query", alert.Query,
			"articles", len(alert.Articles))

		decision := a.categorizer.Categorize(ctx, alert)
		result.Results = append(result.Results, models.AlertResult{
			Alert:    alert,
			Decision: decision,
		})

		if alert.MessageID != "" {
			a.state.MarkProcessed(alert.MessageID)
		}
	}

	result.TotalAlerts = len(result.Results)
	for _, r := range result.Results {
		if r.Decision.IsRelevant {
			result.RelevantAlerts++
		}
	}

	if err := a.state.Save(); err != nil {
		a.log.Warn("failed to save state file", "path", a.cfg.StateFile, "error", err)
	}

	a.log.Info("analysis complete",
		"total", result.TotalAlerts,
		"relevant", result.RelevantAlerts)

	return result, nil
}
