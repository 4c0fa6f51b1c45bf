// Package config loads and validates the reasoning core's runtime
// configuration from YAML with environment-variable overrides, in the
// same shape the teacher's internal/config package uses: one root struct
// assembled from per-concern sub-structs defined alongside it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for one pipeline instance.
type Config struct {
	Memory    MemoryConfig    `yaml:"memory"`
	LLM       LLMConfig       `yaml:"llm"`
	Skills    SkillsConfig    `yaml:"skills"`
	Gating    GatingConfig    `yaml:"gating"`
	Reminders RemindersConfig `yaml:"reminders"`
}

// Load reads a YAML config file from path, applies environment overrides,
// fills in defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return applyEnvAndDefaults(cfg)
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	return applyEnvAndDefaults(cfg)
}

func applyEnvAndDefaults(cfg *Config) (*Config, error) {
	cfg.Memory.applyEnv()
	cfg.LLM.applyEnv()

	cfg.Memory.setDefaults()
	cfg.LLM.setDefaults()
	cfg.Skills.setDefaults()
	cfg.Gating.setDefaults()
	cfg.Reminders.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config populated entirely with defaults, suitable for
// tests and for running without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.Memory.setDefaults()
	cfg.LLM.setDefaults()
	cfg.Skills.setDefaults()
	cfg.Gating.setDefaults()
	cfg.Reminders.setDefaults()
	return cfg
}

// Validate checks cross-field invariants that defaulting alone cannot fix.
func (c *Config) Validate() error {
	if c.Memory.BaseURL == "" {
		return fmt.Errorf("memory.baseUrl is required")
	}
	if c.LLM.Provider != "openai" && c.LLM.Provider != "anthropic" && c.LLM.Provider != "mock" {
		return fmt.Errorf("llm.provider must be one of openai, anthropic, mock, got %q", c.LLM.Provider)
	}
	if c.Skills.SimilarityThreshold < 0 || c.Skills.SimilarityThreshold > 1 {
		return fmt.Errorf("skills.similarityThreshold must be in [0,1]")
	}
	if _, err := time.LoadLocation(c.Reminders.TimeZone); err != nil {
		return fmt.Errorf("reminders.timeZone %q is not a valid IANA zone: %w", c.Reminders.TimeZone, err)
	}
	return nil
}
