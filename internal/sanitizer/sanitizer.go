// Package sanitizer rewrites plan content and observations so that
// private aliases never leak into a PUBLIC_GUILD zone, regardless of
// which planner source produced the plan (spec §4.7, component C7).
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nexuscore/reasoning/pkg/models"
)

// Sanitizer holds no state; all methods are pure functions of their
// arguments, which makes idempotence (law L1) straightforward to reason
// about and to test.
type Sanitizer struct{}

// New returns a Sanitizer.
func New() *Sanitizer {
	return &Sanitizer{}
}

// SafeName computes the name this sanitizer is allowed to surface for a
// profile, per spec §4.7: lastKnownDisplayName -> publicAliases[0] ->
// authorDisplayName, excluding anything that collides with a private
// alias, falling back to the author id.
func (s *Sanitizer) SafeName(obs models.Observation, profile models.IdentityProfile) string {
	privateLower := toLowerSet(profile.PrivateAliases)
	candidates := []string{profile.LastKnownDisplayName}
	if len(profile.PublicAliases) > 0 {
		candidates = append(candidates, profile.PublicAliases[0])
	}
	candidates = append(candidates, obs.AuthorDisplayName)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, private := privateLower[strings.ToLower(c)]; private {
			continue
		}
		return c
	}
	return profile.UserID
}

var greetingWords = `(?i)\b(hi|hey|hello|greetings)\b`

// greetingPattern is compiled per-alias on every SanitizeContent call
// since the alias itself is part of the pattern; SanitizePlan only calls
// SanitizeContent when zone == PUBLIC_GUILD, so no pattern is compiled
// for other zones.
func greetingPattern(alias string) *regexp.Regexp {
	return regexp.MustCompile(greetingWords + `[,\s]+` + regexp.QuoteMeta(alias) + `\b`)
}

func aliasPattern(alias string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`)
}

// SanitizeContent applies the greeting rule then the alias-sweep rule to
// content. It is idempotent: running it twice on its own output is a
// no-op, because after the first pass no private alias remains in the
// text (law L1).
func (s *Sanitizer) SanitizeContent(content, safeName string, privateAliases []string) string {
	out := content
	for _, alias := range privateAliases {
		if alias == "" {
			continue
		}
		out = greetingPattern(alias).ReplaceAllString(out, safeName)
	}
	for _, alias := range privateAliases {
		if alias == "" {
			continue
		}
		out = aliasPattern(alias).ReplaceAllString(out, safeName)
	}
	return out
}

// SanitizePlan returns a copy of plan (the input plan and its arg maps
// are left unmodified) in which every message.send step's content field
// is rewritten for PUBLIC_GUILD zones, strips any originalContent side-channel from
// every step's args, and builds the sanitized Observation the executor
// should see. Non-PUBLIC_GUILD zones pass the plan through untouched
// (still stripping originalContent — defence in depth applies to every
// zone per spec §4.7's opening sentence).
func (s *Sanitizer) SanitizePlan(plan models.Plan, obs models.Observation, zone models.IdentityZone, profile models.IdentityProfile) (models.Plan, models.Observation) {
	safeName := s.SafeName(obs, profile)

	sanitized := plan
	sanitized.Steps = make([]models.Step, len(plan.Steps))
	for i, step := range plan.Steps {
		newStep := step
		newStep.Args = stripOriginalContent(step.Args)
		if zone == models.ZonePublicGuild && step.Tool == "message.send" {
			if content, ok := newStep.Args["content"].(string); ok {
				newStep.Args["content"] = s.SanitizeContent(content, safeName, profile.PrivateAliases)
			}
		}
		sanitized.Steps[i] = newStep
	}

	sanitizedObs := obs
	if zone == models.ZonePublicGuild {
		sanitizedObs.Content = s.SanitizeContent(obs.Content, safeName, profile.PrivateAliases)
	}

	return sanitized, sanitizedObs
}

func stripOriginalContent(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		if k == "originalContent" {
			continue
		}
		out[k] = v
	}
	return out
}

func toLowerSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
