// Package config loads pipeline settings from the environment. CLI flags can
// override individual values; the commands load a .env file first so local
// setups match the documented .env.example workflow.
package config

import (
	"os"
	"strconv"
)

// Provider names accepted for LLM_PROVIDER.
const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	LLMProvider      string
	LLMModel         string
	OpenAIAPIKey     string
	GeminiAPIKey     string
	OpenRouterAPIKey string

	DaysBack      int
	DaysBackStart int
	MaxEmails     int

	CredentialsFile string
	TokenFile       string
	StateFile       string

	TelegramToken  string
	TelegramChatID int64

	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		LLMProvider:      getEnv("LLM_PROVIDER", ProviderOpenAI),
		LLMModel:         getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		DaysBack:         getEnvAsInt("DAYS_BACK", 7),
		DaysBackStart:    getEnvAsInt("DAYS_BACK_START", 0),
		MaxEmails:        getEnvAsInt("MAX_EMAILS_TO_PROCESS", 10),
		CredentialsFile:  getEnv("GMAIL_CREDENTIALS_FILE", "credentials.json"),
		TokenFile:        getEnv("GMAIL_TOKEN_FILE", "token.json"),
		StateFile:        getEnv("STATE_FILE", ".alerts_state.json"),
		TelegramToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel(cfg.LLMProvider)
	}

	return cfg
}

// DefaultModel returns the default model name for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-1.5-flash"
	case ProviderOpenRouter:
		return "openai/gpt-4o-mini"
	default:
		return "gpt-4o-mini"
	}
}

// APIKey returns the key matching the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
