package config

import (
	"os"
	"time"
)

// MemoryConfig configures the HTTP client for the external Memory API
// (hybrid search, entity storage, skill storage, reflections). The
// service itself is a black box (spec §1) — this is only the client's
// connection policy.
type MemoryConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

func (m *MemoryConfig) applyEnv() {
	if v := os.Getenv("NEXUSCORE_MEMORY_BASE_URL"); v != "" {
		m.BaseURL = v
	}
	if v := os.Getenv("NEXUSCORE_MEMORY_API_KEY"); v != "" {
		m.APIKey = v
	}
}

func (m *MemoryConfig) setDefaults() {
	if m.BaseURL == "" {
		m.BaseURL = "http://localhost:8085"
	}
	if m.Timeout <= 0 {
		m.Timeout = 10 * time.Second
	}
}
