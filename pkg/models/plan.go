package models

// PlanSource identifies which cascade stage of the planner produced a
// plan. Tests and the skill graph both key off this value.
type PlanSource string

const (
	PlanSourceLLM        PlanSource = "llm"
	PlanSourceIntentMap  PlanSource = "intent-map"
	PlanSourceSkillGraph PlanSource = "skill-graph"
	PlanSourceFallback   PlanSource = "fallback"
)

// Step is one tool invocation a Plan asks the executor to perform.
type Step struct {
	Tool       string         `json:"tool"`
	Args       map[string]any `json:"args"`
	Reason     string         `json:"reason,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
}

// Plan is an ordered sequence of steps. A Plan must pass schema
// validation (see toolkit.PlanSchema) before the executor is allowed to
// run it — this is non-negotiable (spec invariant I4).
type Plan struct {
	Steps      []Step     `json:"steps"`
	Reasoning  string     `json:"reasoning"`
	Confidence *float64   `json:"confidence,omitempty"`
	Source     PlanSource `json:"source"`
}

// SingleMessagePlan builds a one-step plan that only sends a message,
// used by every "safe fallback" path in the pipeline.
func SingleMessagePlan(channelID, content, reasoning string, source PlanSource) Plan {
	return Plan{
		Steps: []Step{
			{
				Tool: "message.send",
				Args: map[string]any{
					"channelId": channelID,
					"content":   content,
				},
				Reason: "fallback reply",
			},
		},
		Reasoning: reasoning,
		Source:    source,
	}
}
