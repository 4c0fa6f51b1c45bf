package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nexuscore/reasoning/internal/planner/emotion"
	"github.com/nexuscore/reasoning/pkg/models"
)

// planWithLLM implements spec §4.6 steps 7-10 on a memCtx that already
// carries the user entity (attached by the retriever) and a profile built
// from it: build an emotion-aware prompt, inject identity instructions,
// call the LLM, and parse its response with tolerance for malformed JSON.
func (p *Planner) planWithLLM(ctx context.Context, obs models.Observation, memCtx models.Context, zone models.IdentityZone, profile models.IdentityProfile) models.Plan {
	system := buildSystemPrompt(memCtx, zone, profile)

	raw, err := p.llm.Complete(ctx, system, obs.Content)
	if err != nil {
		p.log.Warn("llm call failed, falling back", "error", err)
		return fallbackPlan(obs.ChannelID)
	}

	plan, ok := parseLLMPlan(raw)
	if !ok {
		return fallbackPlan(obs.ChannelID)
	}

	if len(plan.Steps) == 0 {
		plan.Steps = []models.Step{clarificationStep(obs.ChannelID)}
	}

	if p.validator != nil {
		var decoded any
		if json.Unmarshal(mustMarshal(plan), &decoded) == nil {
			if verr := p.validator.ValidatePlan(decoded); verr != nil {
				p.log.Warn("llm plan failed schema validation", "error", verr)
				return fallbackPlan(obs.ChannelID)
			}
		}
	}

	plan.Source = models.PlanSourceLLM
	return plan
}

// buildSystemPrompt assembles the system prompt: emotion-aware tone
// biasing (spec's supplemented feature) plus the zone-scoped identity
// instructions (spec §4.6 step 9): what name may be used, and a blanket
// prohibition on revealing alias lists.
func buildSystemPrompt(memCtx models.Context, zone models.IdentityZone, profile models.IdentityProfile) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant embedded in a chat platform. ")
	b.WriteString(emotion.PromptBias())
	b.WriteString(" Reply with a JSON object matching the plan schema: {\"steps\":[...], \"reasoning\": \"...\"}.")

	b.WriteString(identityInstruction(zone, profile))

	if len(memCtx.Relevant) > 0 {
		b.WriteString(" Relevant prior context: ")
		b.WriteString(memCtx.Relevant[0].Content)
	}
	return b.String()
}

func identityInstruction(zone models.IdentityZone, profile models.IdentityProfile) string {
	var b strings.Builder
	b.WriteString(" Never reveal any user's alias list under any circumstance.")
	if zone == models.ZonePublicGuild {
		safe := profile.LastKnownDisplayName
		if safe == "" && len(profile.PublicAliases) > 0 {
			safe = profile.PublicAliases[0]
		}
		if safe == "" {
			safe = profile.UserID
		}
		b.WriteString(fmt.Sprintf(" This is a public channel: you may only address this user as %q.", safe))
	} else if profile.AllowAutoIntimate && len(profile.PrivateAliases) > 0 {
		b.WriteString(fmt.Sprintf(" This is a private conversation: you may address this user as %q.", profile.PrivateAliases[0]))
	}
	return b.String()
}

func clarificationStep(channelID string) models.Step {
	return models.Step{
		Tool: "message.send",
		Args: map[string]any{
			"channelId": channelID,
			"content":   "Could you clarify what you'd like me to do?",
		},
		Reason: "empty plan from language model",
	}
}

var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

var contentFieldPattern = regexp.MustCompile(`"content"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// parseLLMPlan implements spec §4.6 step 10's tolerant parsing chain:
// strip trailing commas and try strict JSON; on failure, extract a
// "content":"…" substring as a single message.send plan; on failure,
// treat short non-JSON replies as a plain message; otherwise give up.
func parseLLMPlan(raw string) (models.Plan, bool) {
	cleaned := trailingCommaPattern.ReplaceAllString(raw, "$1")

	var plan models.Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err == nil {
		return plan, true
	}

	if m := contentFieldPattern.FindStringSubmatch(cleaned); m != nil {
		return models.SingleMessagePlan("", unescapeJSONString(m[1]), "extracted content field", models.PlanSourceLLM), true
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && len(trimmed) < 280 && !strings.HasPrefix(trimmed, "{") {
		return models.SingleMessagePlan("", trimmed, "plain text reply", models.PlanSourceLLM), true
	}

	return models.Plan{}, false
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	return s
}

func mustMarshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
