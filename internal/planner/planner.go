// Package planner runs the decision cascade that turns an Observation,
// its retrieved Context, and an IntentDecision into a Plan (spec §4.6,
// component C6). No exception escapes Plan: every path, including the
// outermost recover, returns a usable plan (spec §4.6's failure rule).
package planner

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nexuscore/reasoning/internal/planner/llmclient"
	"github.com/nexuscore/reasoning/internal/sanitizer"
	"github.com/nexuscore/reasoning/internal/toolkit"
	"github.com/nexuscore/reasoning/pkg/models"
)

// SkillReplaySource fetches the full skill body behind an intent
// decision's SkillMatch, so the planner can synthesize a plan from its
// recorded actions (spec §4.6 step 6).
type SkillReplaySource interface {
	ReplayCandidate(ctx context.Context, intentText string) (*models.SkillSearchHit, error)
}

// Config configures cascade behavior that doesn't belong to any single
// dependency: the mention pattern used by the ambient filter, and an
// optional fixed mock reply.
type Config struct {
	// MentionPattern matches whatever counts as "addressing the
	// assistant" — a bare "vi" word-boundary token or an @mention form.
	MentionPattern *regexp.Regexp
	// MockPlan, when non-nil, short-circuits the entire cascade (spec
	// §4.6 step 1).
	MockPlan *models.Plan
}

// DefaultMentionPattern matches the bare word "vi" or an @-mention.
var DefaultMentionPattern = regexp.MustCompile(`(?i)(\bvi\b|@\w+)`)

// Planner runs the cascade described in spec §4.6.
type Planner struct {
	cfg       Config
	skills    SkillReplaySource
	llm       llmclient.Provider
	validator *toolkit.SchemaValidator
	sanitizer *sanitizer.Sanitizer
	log       *slog.Logger
}

// New builds a Planner. skills may be nil to disable skill replay.
func New(cfg Config, skills SkillReplaySource, llm llmclient.Provider, validator *toolkit.SchemaValidator) *Planner {
	if cfg.MentionPattern == nil {
		cfg.MentionPattern = DefaultMentionPattern
	}
	return &Planner{
		cfg:       cfg,
		skills:    skills,
		llm:       llm,
		validator: validator,
		sanitizer: sanitizer.New(),
		log:       slog.Default().With("component", "planner"),
	}
}

// Plan runs the full cascade. obs is the raw observation, memCtx is the
// retrieved context, decision is the intent engine's verdict, zone and
// profile come from the identity model.
func (p *Planner) Plan(ctx context.Context, obs models.Observation, memCtx models.Context, decision models.IntentDecision, zone models.IdentityZone, profile models.IdentityProfile) (plan models.Plan) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("planner panicked, returning fallback", "panic", r)
			plan = fallbackPlan(obs.ChannelID)
		}
	}()

	if p.cfg.MockPlan != nil {
		return *p.cfg.MockPlan
	}

	if !p.cfg.MentionPattern.MatchString(obs.Content) && zone == models.ZonePublicGuild {
		return models.Plan{Reasoning: "not addressed", Source: models.PlanSourceFallback}
	}

	if decision.Source == "intent-map" && decision.Intent != "" {
		return p.intentMapPlan(obs, decision)
	}

	if shortcut, ok := p.directShortcut(obs, memCtx); ok {
		return shortcut
	}

	if pref, ok := identityPreferenceUpdate(obs); ok {
		return pref
	}

	if p.skills != nil {
		if hit, err := p.skills.ReplayCandidate(ctx, obs.Content); err == nil && hit != nil {
			return skillReplayPlan(*hit, obs)
		}
	}

	llmPlan := p.planWithLLM(ctx, obs, memCtx, zone, profile)
	if zone == models.ZonePublicGuild {
		sanitized, _ := p.sanitizer.SanitizePlan(llmPlan, obs, zone, profile)
		return sanitized
	}
	return llmPlan
}

// intentMapPlan builds a single-step plan from the intent engine's fast
// path, with the sensible default args spec §4.6 step 3 names.
func (p *Planner) intentMapPlan(obs models.Observation, decision models.IntentDecision) models.Plan {
	args := map[string]any{}
	switch {
	case strings.HasPrefix(decision.Intent, "guild."):
		args["guildId"] = obs.GuildID
	}
	if decision.Intent == "user.remind" {
		args["channelId"] = obs.ChannelID
	}
	if strings.Contains(decision.Intent, "member") {
		args["userId"] = obs.AuthorID
	}
	if strings.Contains(decision.Intent, "moderation") || strings.Contains(decision.Intent, "stats") {
		args["windowHours"] = 24
	}

	return models.Plan{
		Steps: []models.Step{
			{Tool: decision.Intent, Args: args, Reason: "intent-map match"},
		},
		Reasoning: "matched deterministic intent map",
		Source:    models.PlanSourceIntentMap,
	}
}

var (
	reflectionPattern    = regexp.MustCompile(`(?i)\breflect\b`)
	memoryRecallPattern  = regexp.MustCompile(`(?i)who (likes|said|mentioned)`)
	recentRecallPattern  = regexp.MustCompile(`(?i)(\d+)\s*(minute|hour)s?\s*ago`)
)

// directShortcut handles spec §4.6 step 4: reflection, memory recall,
// and quantified recent-conversation recall, all answerable directly
// from memCtx without a full LLM round trip.
func (p *Planner) directShortcut(obs models.Observation, memCtx models.Context) (models.Plan, bool) {
	content := obs.Content

	switch {
	case reflectionPattern.MatchString(content):
		return models.SingleMessagePlan(obs.ChannelID, summarizeRecent(memCtx), "reflection recall", models.PlanSourceIntentMap), true
	case memoryRecallPattern.MatchString(content):
		return models.SingleMessagePlan(obs.ChannelID, summarizeRelevant(memCtx), "memory recall", models.PlanSourceIntentMap), true
	case recentRecallPattern.MatchString(content):
		return models.SingleMessagePlan(obs.ChannelID, summarizeRecent(memCtx), "recent-conversation recall", models.PlanSourceIntentMap), true
	}
	return models.Plan{}, false
}

func summarizeRecent(memCtx models.Context) string {
	if len(memCtx.Recent) == 0 {
		return "I don't have anything recent to recall."
	}
	return "Recently: " + memCtx.Recent[0].Content
}

func summarizeRelevant(memCtx models.Context) string {
	if len(memCtx.Relevant) == 0 {
		return "I couldn't find anything matching that in memory."
	}
	return memCtx.Relevant[0].Content
}

var identityPreferencePattern = regexp.MustCompile(`(?i)call me (\S+)`)

// identityPreferenceUpdate implements spec §4.6 step 5: a deterministic
// two-step plan updating the user's preferred name, then confirming it.
func identityPreferenceUpdate(obs models.Observation) (models.Plan, bool) {
	m := identityPreferencePattern.FindStringSubmatch(obs.Content)
	if m == nil {
		return models.Plan{}, false
	}
	preferred := strings.Trim(m[1], ".,!")

	return models.Plan{
		Steps: []models.Step{
			{
				Tool: "identity.update",
				Args: map[string]any{
					"userId":         obs.AuthorID,
					"preferredAlias": preferred,
				},
				Reason: "identity preference update",
			},
			{
				Tool: "message.send",
				Args: map[string]any{
					"channelId": obs.ChannelID,
					"content":   "Got it, I'll call you " + preferred + "!",
				},
				Reason: "confirmation",
			},
		},
		Reasoning: "user requested an addressing preference change",
		Source:    models.PlanSourceIntentMap,
	}, true
}

// skillReplayPlan synthesizes a plan from a matched skill's recorded
// actions (spec §4.6 step 6).
func skillReplayPlan(hit models.SkillSearchHit, obs models.Observation) models.Plan {
	steps := make([]models.Step, len(hit.Skill.Actions))
	for i, action := range hit.Skill.Actions {
		args := make(map[string]any, len(action.Input))
		for k, v := range action.Input {
			args[k] = v
		}
		steps[i] = models.Step{Tool: action.Tool, Args: args, Reason: "skill replay"}
	}
	return models.Plan{
		Steps:     steps,
		Reasoning: "replayed skill " + hit.Skill.ID,
		Source:    models.PlanSourceSkillGraph,
	}
}

func fallbackPlan(channelID string) models.Plan {
	return models.SingleMessagePlan(channelID, "Sorry, I couldn't quite figure out what to do there.", "cascade failure", models.PlanSourceFallback)
}
