// Package cli holds the shared entrypoint logic for the analyze and scholar
// commands: flag-over-environment configuration, the pipeline run, report
// writing and console output.
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/analyzer"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/logger"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/notify"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/report"
)

// RunOptions are the flag values of an analysis command. Zero values mean
// "use the environment configuration".
type RunOptions struct {
	Provider     string
	Model        string
	Days         int
	DaysStart    int
	MaxEmails    int
	Output       string
	Format       string
	Reprocess    bool
	ShowArticles bool
}

// AddAnalysisFlags registers the flags both analysis commands share.
func AddAnalysisFlags(fs *flag.FlagSet, opts *RunOptions, defaultOutput string) {
	fs.StringVar(&opts.Provider, "provider", "", "LLM provider: openai, gemini or openrouter (default from LLM_PROVIDER)")
	fs.StringVar(&opts.Model, "model", "", "model name (default depends on provider)")
	fs.IntVar(&opts.Days, "days", 0, "number of days back to search (default from DAYS_BACK)")
	fs.IntVar(&opts.MaxEmails, "max-emails", 0, "maximum number of emails to process (default from MAX_EMAILS_TO_PROCESS)")
	fs.StringVar(&opts.Output, "output", defaultOutput, "output file for the markdown report")
	fs.StringVar(&opts.Format, "format", "markdown", "report format: markdown or json")
	fs.BoolVar(&opts.Reprocess, "reprocess", false, "re-analyze emails that were already processed")
}

// Run executes one analysis pass and writes the reports.
func Run(kind models.AlertKind, opts RunOptions) error {
	_ = godotenv.Load()

	cfg := config.Load()
	applyOverrides(cfg, opts)

	if opts.Format != "markdown" && opts.Format != "json" {
		return fmt.Errorf("unsupported format %q (use markdown or json)", opts.Format)
	}

	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	fmt.Printf("🔍 Analyzing %s from the last %d days (provider: %s, model: %s)\n",
		streamName(kind), cfg.DaysBack, cfg.LLMProvider, cfg.LLMModel)

	a, err := analyzer.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	result, err := a.Run(ctx, kind, opts.Reprocess)
	if err != nil {
		return err
	}

	printSummary(result, opts.ShowArticles)

	if err := writeReports(result, kind, opts.Output, opts.Format); err != nil {
		return err
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn("telegram setup failed", "error", err)
		} else if err := notifier.SendDigest(kind, result); err != nil {
			log.Warn("telegram digest failed", "error", err)
		} else {
			fmt.Println("📨 Telegram digest sent")
		}
	}

	return nil
}

func applyOverrides(cfg *config.Config, opts RunOptions) {
	if opts.Provider != "" {
		cfg.LLMProvider = opts.Provider
		if opts.Model == "" {
			cfg.LLMModel = config.DefaultModel(opts.Provider)
		}
	}
	if opts.Model != "" {
		cfg.LLMModel = opts.Model
	}
	if opts.Days > 0 {
		cfg.DaysBack = opts.Days
	}
	if opts.DaysStart > 0 {
		cfg.DaysBackStart = opts.DaysStart
	}
	if opts.MaxEmails > 0 {
		cfg.MaxEmails = opts.MaxEmails
	}
}

func streamName(kind models.AlertKind) string {
	if kind == models.KindScholar {
		return "Google Scholar Alerts"
	}
	return "Google Alerts"
}

// writeReports writes the requested report plus the JSON sidecar that the
// listing tool reads.
func writeReports(result models.AnalysisResult, kind models.AlertKind, output, format string) error {
	jsonData, err := report.JSON(result)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if format == "json" {
		if err := report.Write(output, jsonData); err != nil {
			return err
		}
		fmt.Printf("💾 Report saved to %s\n", output)
		return nil
	}

	markdown := report.Markdown(result, kind)
	if err := report.Write(output, []byte(markdown)); err != nil {
		return err
	}
	fmt.Printf("💾 Report saved to %s\n", output)

	jsonPath := jsonSidecarPath(output, kind)
	if err := report.Write(jsonPath, jsonData); err != nil {
		return err
	}
	fmt.Printf("💾 JSON data saved to %s\n", jsonPath)
	return nil
}

// jsonSidecarPath derives the JSON report path from the markdown output path,
// falling back to the per-stream default name.
func jsonSidecarPath(output string, kind models.AlertKind) string {
	if strings.HasSuffix(output, ".md") {
		return strings.TrimSuffix(output, ".md") + ".json"
	}
	if kind == models.KindScholar {
		return "scholar_report.json"
	}
	return "report.json"
}

func printSummary(result models.AnalysisResult, showArticles bool) {
	fmt.Printf("\n📊 Processed %d alerts, %d relevant\n", result.TotalAlerts, result.RelevantAlerts)

	for _, r := range result.Results {
		fmt.Printf("  %s %s (%s, confidence %.2f)\n",
			relevanceIcon(r.Decision.IsRelevant), r.Alert.Query,
			r.Decision.Category, r.Decision.Confidence)

		if showArticles {
			for _, a := range r.Decision.Articles {
				fmt.Printf("     %s %s\n", relevanceIcon(a.IsRelevant), a.Title)
			}
		}
	}
}

func relevanceIcon(relevant bool) string {
	if relevant {
		return "✅"
	}
	return "❌"
}
