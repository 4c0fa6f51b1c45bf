// Package main provides the CLI entry point for the reasoning core.
//
// reasoning drives one Observation through the full pipeline (Retrieval,
// Identity, Intent, Planning, Gating, Sanitization, Execution, Reflection,
// Skill Learning) given a YAML configuration file.
//
// # Basic Usage
//
// Run one observation read from stdin as JSON:
//
//	reasoning run --config reasoning.yaml < observation.json
//
// # Environment Variables
//
//   - ANTHROPIC_API_KEY: Anthropic API key, used when llm.provider is "anthropic"
//   - OPENAI_API_KEY: OpenAI API key, used when llm.provider is "openai"
//   - NEXUSCORE_MEMORY_BASE_URL: overrides memory.baseUrl
//   - NEXUSCORE_MEMORY_API_KEY: overrides memory.apiKey
//   - NEXUSCORE_LLM_PROVIDER: overrides llm.provider
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "reasoning",
		Short:   "reasoning - autonomous agent reasoning pipeline",
		Version: version + " (commit: " + commit + ", built: " + date + ")",
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage: true,
	}

	rootCmd.AddCommand(buildRunCmd())
	return rootCmd
}
