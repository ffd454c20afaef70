// Command list flattens saved analysis reports into one chronological article
// listing, newest first, in text, markdown or JSON form.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/aggregate"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/report"
)

func main() {
	googlePath := flag.String("google-alerts", "report.json", "path to the Google Alerts analysis report")
	scholarPath := flag.String("scholar-alerts", "scholar_report.json", "path to the Scholar Alerts analysis report")
	googleOnly := flag.Bool("google-only", false, "list only Google Alerts articles")
	scholarOnly := flag.Bool("scholar-only", false, "list only Scholar Alerts articles")
	format := flag.String("format", "text", "output format: text, markdown or json")
	output := flag.String("output", "", "write output to a file instead of stdout")
	showAll := flag.Bool("show-all", false, "include articles judged not relevant")
	separate := flag.Bool("separate", false, "group the output by source instead of one merged list")
	dedup := flag.Bool("dedup", false, "drop repeated URLs, keeping the first occurrence")
	flag.Parse()

	if err := run(*googlePath, *scholarPath, *googleOnly, *scholarOnly, *format, *output, *showAll, *separate, *dedup); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(googlePath, scholarPath string, googleOnly, scholarOnly bool, format, output string, showAll, separate, dedup bool) error {
	if googleOnly && scholarOnly {
		return fmt.Errorf("-google-only and -scholar-only are mutually exclusive")
	}

	opts := aggregate.Options{
		IncludeNonRelevant: showAll,
		SourceFilter:       aggregate.FilterAll,
		DedupByURL:         dedup,
	}
	if googleOnly {
		opts.SourceFilter = aggregate.FilterGoogleOnly
	}
	if scholarOnly {
		opts.SourceFilter = aggregate.FilterScholarOnly
	}

	// Google Alerts articles are loaded first so they win date ties and URL
	// dedup against Scholar entries.
	var articles []models.ListedArticle
	loaded := 0
	for _, src := range []struct {
		path   string
		source models.Source
		wanted bool
	}{
		{googlePath, models.SourceGoogleAlerts, !scholarOnly},
		{scholarPath, models.SourceScholarAlerts, !googleOnly},
	} {
		if !src.wanted {
			continue
		}
		parsed, err := loadReport(src.path, src.source)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "⚠️  %s not found, skipping\n", src.path)
				continue
			}
			return err
		}
		articles = append(articles, parsed...)
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no report files found; run the analyze or scholar command first")
	}

	rendered, err := render(articles, opts, format, separate)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("💾 Article list saved to %s\n", output)
	return nil
}

func loadReport(path string, source models.Source) ([]models.ListedArticle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	articles, skipped, err := report.ParseArticles(data, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  %s: skipped %d articles with no URL\n", path, skipped)
	}
	return articles, nil
}

func render(articles []models.ListedArticle, opts aggregate.Options, format string, separate bool) (string, error) {
	if !separate {
		return aggregate.FormatArticles(aggregate.Aggregate(articles, opts), format)
	}

	bySource := aggregate.BySource(articles, opts)

	if format == aggregate.FormatJSON {
		data, err := json.MarshalIndent(bySource, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	var out string
	for _, source := range []models.Source{models.SourceGoogleAlerts, models.SourceScholarAlerts} {
		list, ok := bySource[source]
		if !ok {
			continue
		}
		header := "Google Alerts"
		if source == models.SourceScholarAlerts {
			header = "Scholar Alerts"
		}
		section, err := aggregate.FormatArticles(list, format)
		if err != nil {
			return "", err
		}
		if format == aggregate.FormatMarkdown {
			out += fmt.Sprintf("# %s\n\n%s\n", header, section)
		} else {
			out += fmt.Sprintf("%s\n%s\n", header, section)
		}
	}
	if out == "" {
		return "No articles found.\n", nil
	}
	return out, nil
}
