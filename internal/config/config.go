package config

import (
	"fmt"
	"time"
)

// Config holds the application configuration loaded from the config
// file, environment, and flags.
type Config struct {
	// BaseURL is the backend API base URL.
	BaseURL string

	// Timeout bounds every HTTP request to the backend.
	Timeout time.Duration

	// SessionPath overrides the default session file location.
	SessionPath string

	// Summarizer selects and configures the report summarization provider.
	Summarizer SummarizerConfig

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is one of text, json.
	LogFormat string
}

// SummarizerConfig configures the AI summarization provider for reports.
type SummarizerConfig struct {
	// Provider is "office" (backend endpoint) or "gemini".
	Provider string

	// Endpoint overrides the provider's default endpoint.
	Endpoint string

	// APIKey authenticates against external providers.
	APIKey string
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 30 * time.Second,
		Summarizer: SummarizerConfig{
			Provider: "office",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch c.Summarizer.Provider {
	case "", "office", "gemini":
	default:
		return fmt.Errorf("unknown summarizer provider: %s", c.Summarizer.Provider)
	}
	if c.Summarizer.Provider == "gemini" && c.Summarizer.APIKey == "" {
		return fmt.Errorf("gemini summarizer requires an API key")
	}
	return nil
}
