package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RichardScottOZ/googlealerts-analysis/internal/config"
)

func checkByName(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()

	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no check named %q in %v", name, results)
	return CheckResult{}
}

func TestCheckSetup_CompleteConfiguration(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials.json")
	token := filepath.Join(dir, "token.json")
	for _, path := range []string{creds, token} {
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{
		LLMProvider:     config.ProviderOpenAI,
		OpenAIAPIKey:    "sk-test",
		CredentialsFile: creds,
		TokenFile:       token,
	}

	results := CheckSetup(cfg)

	if !checkByName(t, results, creds+" present").OK {
		t.Error("credentials file check should pass")
	}
	if !checkByName(t, results, `API key for provider "openai"`).OK {
		t.Error("API key check should pass")
	}
	if !SetupOK(results) {
		t.Errorf("all required checks should pass: %+v", results)
	}
}

func TestCheckSetup_MissingCredentials(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:     config.ProviderOpenAI,
		OpenAIAPIKey:    "sk-test",
		CredentialsFile: filepath.Join(t.TempDir(), "credentials.json"),
	}

	results := CheckSetup(cfg)

	if SetupOK(results) {
		t.Error("missing credentials file should fail the setup")
	}
}

func TestCheckSetup_MissingProviderKey(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(creds, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	// The key for a different provider must not satisfy the check.
	cfg := &config.Config{
		LLMProvider:     config.ProviderGemini,
		OpenAIAPIKey:    "sk-test",
		CredentialsFile: creds,
	}

	results := CheckSetup(cfg)

	key := checkByName(t, results, `API key for provider "gemini"`)
	if key.OK {
		t.Error("gemini provider with only an OpenAI key should fail")
	}
	if key.Hint == "" {
		t.Error("failed key check should carry a hint")
	}
	if SetupOK(results) {
		t.Error("failed required check should fail the setup")
	}
}

func TestCheckSetup_UnknownProvider(t *testing.T) {
	cfg := &config.Config{LLMProvider: "anthropic"}

	results := CheckSetup(cfg)

	if checkByName(t, results, `LLM_PROVIDER "anthropic" recognized`).OK {
		t.Error("unknown provider should fail the provider check")
	}
}

func TestCheckSetup_TelegramHalfConfigured(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:   config.ProviderOpenAI,
		TelegramToken: "bot-token",
	}

	results := CheckSetup(cfg)

	telegram := checkByName(t, results, "Telegram digest configuration")
	if telegram.OK {
		t.Error("token without chat ID should fail the telegram check")
	}
	if telegram.Required {
		t.Error("telegram check is optional and must not fail the setup")
	}
}
