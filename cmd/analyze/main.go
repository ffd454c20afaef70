// Command analyze fetches recent Google Alerts emails, categorizes them with
// the configured LLM and writes markdown and JSON reports.
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
	cli.AddAnalysisFlags(flag.CommandLine, &opts, "report.md")
	flag.Parse()

	if err := cli.Run(models.KindGoogle, opts); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
