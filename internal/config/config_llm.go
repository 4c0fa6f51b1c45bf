package config

import (
	"os"
	"time"
)

// LLMConfig selects and configures the planner's language-model
// collaborator (step 10 of the planner cascade).
type LLMConfig struct {
	// Provider selects the backend: "openai", "anthropic", or "mock" for
	// deterministic canned plans (planner cascade step 1).
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`

	MaxRetries int           `yaml:"maxRetries"`
	RetryDelay time.Duration `yaml:"retryDelay"`
	Timeout    time.Duration `yaml:"timeout"`

	// RequestsPerSecond bounds outbound LLM call rate.
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
}

func (l *LLMConfig) applyEnv() {
	if v := os.Getenv("NEXUSCORE_LLM_PROVIDER"); v != "" {
		l.Provider = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && l.Provider == "anthropic" {
		l.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && l.Provider == "openai" {
		l.APIKey = v
	}
}

func (l *LLMConfig) setDefaults() {
	if l.Provider == "" {
		l.Provider = "mock"
	}
	if l.Model == "" {
		switch l.Provider {
		case "anthropic":
			l.Model = "claude-3-5-sonnet-latest"
		case "openai":
			l.Model = "gpt-4o"
		}
	}
	if l.MaxRetries <= 0 {
		l.MaxRetries = 3
	}
	if l.RetryDelay <= 0 {
		l.RetryDelay = time.Second
	}
	if l.Timeout <= 0 {
		l.Timeout = 30 * time.Second
	}
	if l.RequestsPerSecond <= 0 {
		l.RequestsPerSecond = 5
	}
}
