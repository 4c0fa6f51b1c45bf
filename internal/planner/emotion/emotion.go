// Package emotion tracks a process-wide mood cell that biases the
// planner's prompt templates (spec's supplemented emotion-aware prompt
// biasing feature). It is deliberately coarse: one shared value, not a
// per-user or per-channel model.
package emotion

import "sync/atomic"

// State is one of a small fixed set of moods the planner's prompt
// templates can key off of.
type State string

const (
	StateNeutral   State = "neutral"
	StateWarm      State = "warm"
	StatePlayful   State = "playful"
	StateReserved  State = "reserved"
)

var current atomic.Value

func init() {
	current.Store(StateNeutral)
}

// Set updates the shared mood. Safe for concurrent use.
func Set(s State) {
	current.Store(s)
}

// Current returns the shared mood, defaulting to StateNeutral.
func Current() State {
	if v, ok := current.Load().(State); ok {
		return v
	}
	return StateNeutral
}

// PromptBias returns a short clause to splice into a system prompt,
// reflecting the current mood.
func PromptBias() string {
	switch Current() {
	case StateWarm:
		return "Respond with warmth and genuine interest."
	case StatePlayful:
		return "Respond with a light, playful tone."
	case StateReserved:
		return "Respond briefly and stay reserved."
	default:
		return "Respond naturally."
	}
}
