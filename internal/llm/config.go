package llm

import (
	"os"
	"time"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
)

// Config holds all LLM provider configuration. It is read once at
// process start and passed into the factory; nothing re-reads the
// environment per request.
type Config struct {
	// Provider selects the backing API: "gemini", "openrouter" or "mock".
	Provider string

	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single upstream call.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.0-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "deepseek/deepseek-r1:free"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	timeout := 60 * time.Second
	if d, err := time.ParseDuration(config.Getenv("LLM_TIMEOUT", "60s")); err == nil && d > 0 {
		timeout = d
	}

	return Config{
		Provider: config.Getenv("LLM_PROVIDER", "gemini"),
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  os.Getenv("GEMINI_MODEL"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			Model:   os.Getenv("OPENROUTER_MODEL"),
			BaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		},
		Timeout: timeout,
	}
}
