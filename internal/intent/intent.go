// Package intent classifies an Observation into an IntentDecision: what
// canonical tool (if any) it maps to, how the resulting plan should be
// gated, and which signals contributed (spec §4.5, component C5).
package intent

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

// SkillSimilarityQuery is the subset of skill-graph capability the intent
// engine needs: a similarity search keyed by free text.
type SkillSimilarityQuery interface {
	Similar(ctx context.Context, text string) (*models.SkillMatch, error)
}

// Mapping is one entry of the deterministic intent map: a phrase that,
// when found in the observation content, resolves directly to a tool.
type Mapping struct {
	Phrase string
	Tool   string
}

// defaultIntentMap is the natural-language-key to canonical-tool table
// (spec §4.5a). Order matters: first match wins.
var defaultIntentMap = []Mapping{
	{Phrase: "how many members", Tool: "guild.member.count"},
	{Phrase: "member count", Tool: "guild.member.count"},
	{Phrase: "what can you do", Tool: "system.capabilities"},
	{Phrase: "your capabilities", Tool: "system.capabilities"},
	{Phrase: "remind me", Tool: "user.remind"},
}

// qualitativeWords and multiClauseMarker match conversational phrases that must never map
// to a guild intent regardless of surface overlap with the intent map
// (spec §4.5: "vibe", "feel", "busy today", multi-clause input).
var (
	qualitativeWords  = regexp.MustCompile(`(?i)\b(vibe|feel|feeling|busy today)\b`)
	multiClauseMarker = regexp.MustCompile(`(?i)\b(and|then|but)\b`)
)

const multiClauseThreshold = 40

// Engine produces IntentDecisions by combining the deterministic map, a
// skill-similarity lookup, and fallback heuristics.
type Engine struct {
	mapping       []Mapping
	skills        SkillSimilarityQuery
	allowedTools  []string
}

// New builds an Engine. skills may be nil when no skill-graph lookup is
// available; alwaysAllowed names tools a strict gate never drops (spec
// §4.5's allowedTools ∪ {message.send} is applied by the gating filter,
// not here, but callers may pre-seed additional always-allowed tools via
// config, e.g. moderation).
func New(skills SkillSimilarityQuery, alwaysAllowed []string) *Engine {
	return &Engine{
		mapping:      defaultIntentMap,
		skills:       skills,
		allowedTools: alwaysAllowed,
	}
}

// Resolve implements the §4.5 combination: deterministic map first
// (unless the content is qualitative/conversational), then skill-graph
// similarity, else an ungated (GatingNone) fallback.
func (e *Engine) Resolve(ctx context.Context, obs models.Observation) models.IntentDecision {
	now := time.Now().UTC()
	content := strings.ToLower(obs.Content)

	if isQualitative(content) {
		return models.IntentDecision{
			Source:              "fallback",
			Confidence:          0.3,
			Gating:              models.GatingNone,
			AllowedTools:        []string{},
			ContributingSignals: []string{"qualitative-language"},
			ResolvedAt:          now,
		}
	}

	if m, ok := e.matchIntentMap(content); ok {
		allowed := append([]string{m.Tool}, e.allowedTools...)
		return models.IntentDecision{
			Source:              "intent-map",
			Intent:              m.Tool,
			Confidence:          0.95,
			Gating:              models.GatingStrict,
			AllowedTools:        dedupe(allowed),
			ContributingSignals: []string{"intent-map:" + m.Phrase},
			ResolvedAt:          now,
		}
	}

	if e.skills != nil {
		if match, err := e.skills.Similar(ctx, obs.Content); err == nil && match != nil {
			return models.IntentDecision{
				Source:              "skill-graph",
				Confidence:          match.Similarity,
				Gating:              models.GatingSoft,
				AllowedTools:        []string{},
				ContributingSignals: []string{"skill-similarity"},
				ResolvedAt:          now,
				SkillMatch:          match,
			}
		}
	}

	return models.IntentDecision{
		Source:              "fallback",
		Confidence:          0.4,
		Gating:              models.GatingNone,
		AllowedTools:        []string{},
		ContributingSignals: []string{"no-signal"},
		ResolvedAt:          now,
	}
}

func (e *Engine) matchIntentMap(lowerContent string) (Mapping, bool) {
	for _, m := range e.mapping {
		if strings.Contains(lowerContent, m.Phrase) {
			return m, true
		}
	}
	return Mapping{}, false
}

// isQualitative reports whether content is conversational rather than a
// command: explicit vibe/feel words, or a long multi-clause sentence
// joined with and/then/but.
func isQualitative(lowerContent string) bool {
	if qualitativeWords.MatchString(lowerContent) {
		return true
	}
	return len(lowerContent) > multiClauseThreshold && multiClauseMarker.MatchString(lowerContent)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
