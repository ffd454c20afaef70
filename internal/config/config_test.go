package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "DAYS_BACK", "MAX_EMAILS_TO_PROCESS",
		"GMAIL_CREDENTIALS_FILE", "GMAIL_TOKEN_FILE", "STATE_FILE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.LLMProvider != ProviderOpenAI {
		t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, ProviderOpenAI)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Errorf("LLMModel = %q, want gpt-4o-mini", cfg.LLMModel)
	}
	if cfg.DaysBack != 7 {
		t.Errorf("DaysBack = %d, want 7", cfg.DaysBack)
	}
	if cfg.MaxEmails != 10 {
		t.Errorf("MaxEmails = %d, want 10", cfg.MaxEmails)
	}
	if cfg.CredentialsFile != "credentials.json" {
		t.Errorf("CredentialsFile = %q", cfg.CredentialsFile)
	}
}

func TestLoad_ProviderModelDefaults(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{ProviderOpenAI, "gpt-4o-mini"},
		{ProviderGemini, "gemini-1.5-flash"},
		{ProviderOpenRouter, "openai/gpt-4o-mini"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", tt.provider)
			t.Setenv("LLM_MODEL", "")

			if cfg := Load(); cfg.LLMModel != tt.want {
				t.Errorf("default model for %s = %q, want %q", tt.provider, cfg.LLMModel, tt.want)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", ProviderOpenRouter)
	t.Setenv("LLM_MODEL", "anthropic/claude-3-haiku")
	t.Setenv("DAYS_BACK", "30")
	t.Setenv("DAYS_BACK_START", "60")
	t.Setenv("TELEGRAM_CHAT_ID", "123456789")

	cfg := Load()

	if cfg.LLMModel != "anthropic/claude-3-haiku" {
		t.Errorf("LLMModel = %q", cfg.LLMModel)
	}
	if cfg.DaysBack != 30 || cfg.DaysBackStart != 60 {
		t.Errorf("days range = %d/%d, want 30/60", cfg.DaysBack, cfg.DaysBackStart)
	}
	if cfg.TelegramChatID != 123456789 {
		t.Errorf("TelegramChatID = %d", cfg.TelegramChatID)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DAYS_BACK", "not-a-number")

	if cfg := Load(); cfg.DaysBack != 7 {
		t.Errorf("DaysBack = %d, want default 7 on bad value", cfg.DaysBack)
	}
}

func TestAPIKey(t *testing.T) {
	cfg := &Config{
		LLMProvider:      ProviderGemini,
		OpenAIAPIKey:     "openai-key",
		GeminiAPIKey:     "gemini-key",
		OpenRouterAPIKey: "openrouter-key",
	}

	if got := cfg.APIKey(); got != "gemini-key" {
		t.Errorf("APIKey() = %q, want gemini-key", got)
	}

	cfg.LLMProvider = ProviderOpenAI
	if got := cfg.APIKey(); got != "openai-key" {
		t.Errorf("APIKey() = %q, want openai-key", got)
	}
}
