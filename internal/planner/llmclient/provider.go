// Package llmclient abstracts the language-model backends the planner
// calls into (spec §4.6 step 10): OpenAI, Anthropic, and a deterministic
// mock used in tests and mock-mode (spec §4.6 step 1).
package llmclient

import "context"

// Provider is the minimal surface the planner needs from an LLM backend:
// a single-turn completion given a system prompt and a user prompt.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}
