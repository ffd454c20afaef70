package cli

import (
	"fmt"
	"os"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
)

// CheckResult is the outcome of one setup check. Failed optional checks carry
// a hint instead of counting against the setup.
type CheckResult struct {
	Name     string
	OK       bool
	Required bool
	Hint     string
}

// CheckSetup inspects the configuration and local files and reports what a
// first analysis run would need. It performs no network calls.
func CheckSetup(cfg *config.Config) []CheckResult {
	var results []CheckResult

	results = append(results, fileCheck(cfg.CredentialsFile, true,
		"download OAuth credentials from the Google Cloud Console"))
	results = append(results, fileCheck(cfg.TokenFile, false,
		"the first run will open the console auth flow and save it"))
	results = append(results, fileCheck(".env", false,
		"copy .env.example to .env and fill in your API keys"))

	results = append(results, CheckResult{
		Name:     fmt.Sprintf("API key for provider %q", cfg.LLMProvider),
		OK:       cfg.APIKey() != "",
		Required: true,
		Hint:     "set " + providerKeyName(cfg.LLMProvider) + " in the environment or .env",
	})

	validProvider := cfg.LLMProvider == config.ProviderOpenAI ||
		cfg.LLMProvider == config.ProviderGemini ||
		cfg.LLMProvider == config.ProviderOpenRouter
	results = append(results, CheckResult{
		Name:     fmt.Sprintf("LLM_PROVIDER %q recognized", cfg.LLMProvider),
		OK:       validProvider,
		Required: true,
		Hint:     "use openai, gemini or openrouter",
	})

	telegramConsistent := (cfg.TelegramToken == "") == (cfg.TelegramChatID == 0)
	results = append(results, CheckResult{
		Name:     "Telegram digest configuration",
		OK:       telegramConsistent,
		Required: false,
		Hint:     "set both TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID, or neither",
	})

	return results
}

// SetupOK reports whether every required check passed.
func SetupOK(results []CheckResult) bool {
	for _, r := range results {
		if r.Required && !r.OK {
			return false
		}
	}
	return true
}

// PrintChecks writes the check results in the console style of the analysis
// commands and returns the overall verdict.
func PrintChecks(results []CheckResult) bool {
	for _, r := range results {
		icon := "✅"
		if !r.OK {
			icon = "❌"
			if !r.Required {
				icon = "⚠️ "
			}
		}
		fmt.Printf("%s %s\n", icon, r.Name)
		if !r.OK && r.Hint != "" {
			fmt.Printf("   💡 %s\n", r.Hint)
		}
	}

	ok := SetupOK(results)
	if ok {
		fmt.Println("\n✅ Setup looks good.")
	} else {
		fmt.Println("\n⚠️  Fix the failed checks above before running an analysis.")
	}
	return ok
}

func fileCheck(path string, required bool, hint string) CheckResult {
	_, err := os.Stat(path)
	return CheckResult{
		Name:     path + " present",
		OK:       err == nil,
		Required: required,
		Hint:     hint,
	}
}

func providerKeyName(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "GEMINI_API_KEY"
	case config.ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
