// Command scholar fetches recent Google Scholar Alerts emails, categorizes
// each article with the configured LLM and writes markdown and JSON reports.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/cli"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/models"
)

func main() {
	var opts cli.RunOptions
	cli.AddAnalysisFlags(flag.CommandLine, &opts, "scholar_report.md")
	flag.IntVar(&opts.DaysStart, "days-start", 0,
		"end of the search window in days back, for analyzing an older range (default from DAYS_BACK_START)")
	flag.Parse()

	// Scholar alerts are judged per paper, so the console output lists every
	// article with its own verdict.
	opts.ShowArticles = true

	if err := cli.Run(models.KindScholar, opts); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
