// Package gating applies the intent engine's chosen policy to a plan
// after it is built and before it is executed (spec §4.8, component C8).
package gating

import (
	"log/slog"

	"github.com/nexuscore/reasoning/pkg/models"
)

const unavailableMessage = "That action isn't available right now."

// Filter applies a Gating policy to a Plan.
type Filter struct {
	log *slog.Logger
}

// New returns a Filter.
func New() *Filter {
	return &Filter{log: slog.Default().With("component", "gating")}
}

// Apply enforces decision.Gating against plan.Steps. Strict gating always
// leaves message.send steps in place (spec §4.8's allow ∪ {message.send}).
// If strict filtering empties the plan, a single safe-message step
// replaces it so the user always gets a response (invariant I8 plus the
// "never silent failure" rule in spec §7).
func (f *Filter) Apply(plan models.Plan, decision models.IntentDecision, channelID string) models.Plan {
	switch decision.Gating {
	case models.GatingStrict:
		return f.applyStrict(plan, decision.AllowedTools, channelID)
	case models.GatingSoft:
		f.applySoft(plan, decision.AllowedTools)
		return plan
	default:
		return plan
	}
}

func (f *Filter) applyStrict(plan models.Plan, allow []string, channelID string) models.Plan {
	allowSet := toSet(allow)
	allowSet["message.send"] = struct{}{}

	kept := make([]models.Step, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if _, ok := allowSet[step.Tool]; ok {
			kept = append(kept, step)
		}
	}

	if len(kept) == 0 {
		return models.SingleMessagePlan(channelID, unavailableMessage, plan.Reasoning, plan.Source)
	}

	out := plan
	out.Steps = kept
	return out
}

func (f *Filter) applySoft(plan models.Plan, allow []string) {
	allowSet := toSet(allow)
	allowSet["message.send"] = struct{}{}

	for _, step := range plan.Steps {
		if _, ok := allowSet[step.Tool]; !ok {
			f.log.Info("soft gating: tool outside allowlist", "tool", step.Tool)
		}
	}
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}
