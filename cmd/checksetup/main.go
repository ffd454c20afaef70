// Command checksetup validates the local configuration before a first
// analysis run: credential files, API keys and optional settings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/cli"
	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("🔧 Checking Google Alerts analysis setup")

	results := cli.CheckSetup(config.Load())
	if !cli.PrintChecks(results) {
		os.Exit(1)
	}
}
