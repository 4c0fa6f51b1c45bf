package gating

import (
	"testing"

	"github.com/nexuscore/reasoning/pkg/models"
)

func planWith(tools ...string) models.Plan {
	steps := make([]models.Step, len(tools))
	for i, tool := range tools {
		steps[i] = models.Step{Tool: tool, Args: map[string]any{}}
	}
	return models.Plan{Steps: steps, Reasoning: "r", Source: models.PlanSourceLLM}
}

func TestApplyStrictDropsDisallowedToolsI8(t *testing.T) {
	f := New()
	plan := planWith("guild.member.count", "system.capabilities", "message.send")
	decision := models.IntentDecision{Gating: models.GatingStrict, AllowedTools: []string{"guild.member.count"}}

	out := f.Apply(plan, decision, "c1")

	if len(out.Steps) != 2 {
		t.Fatalf("expected 2 surviving steps, got %d: %+v", len(out.Steps), out.Steps)
	}
	for _, step := range out.Steps {
		if step.Tool != "guild.member.count" && step.Tool != "message.send" {
			t.Fatalf("unexpected surviving tool %q", step.Tool)
		}
	}
}

func TestApplyStrictEmptyResultReplacesWithSafeMessage(t *testing.T) {
	f := New()
	plan := planWith("system.capabilities")
	decision := models.IntentDecision{Gating: models.GatingStrict, AllowedTools: []string{"guild.member.count"}}

	out := f.Apply(plan, decision, "c1")

	if len(out.Steps) != 1 || out.Steps[0].Tool != "message.send" {
		t.Fatalf("expected single safe message.send step, got %+v", out.Steps)
	}
}

func TestApplySoftKeepsAllSteps(t *testing.T) {
	f := New()
	plan := planWith("guild.member.count", "system.capabilities")
	decision := models.IntentDecision{Gating: models.GatingSoft, AllowedTools: []string{"guild.member.count"}}

	out := f.Apply(plan, decision, "c1")

	if len(out.Steps) != 2 {
		t.Fatalf("expected soft gating to keep all steps, got %d", len(out.Steps))
	}
}

func TestApplyNoneIsNoOp(t *testing.T) {
	f := New()
	plan := planWith("anything.goes")
	decision := models.IntentDecision{Gating: models.GatingNone}

	out := f.Apply(plan, decision, "c1")

	if len(out.Steps) != 1 || out.Steps[0].Tool != "anything.goes" {
		t.Fatalf("expected none gating to be a no-op, got %+v", out.Steps)
	}
}
