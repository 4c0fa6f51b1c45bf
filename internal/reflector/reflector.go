// Package reflector persists a reflection entry after every execution
// and keeps identity traits in sync with the memory store (spec §4.10,
// component C10). Failure here is always non-fatal.
package reflector

import (
	"context"
	"log/slog"
	"time"

	"github.com/nexuscore/reasoning/internal/memoryclient"
	"github.com/nexuscore/reasoning/pkg/models"
)

// MemoryClient is the subset of memoryclient.Client the reflector needs.
type MemoryClient interface {
	ReflectUpsert(ctx context.Context, text string, scope memoryclient.ReflectionScope, scopeID string, meta map[string]any) error
	UpsertUserEntity(ctx context.Context, canonicalID string, traits models.EntityTraits) error
}

// Reflector persists post-execution reflections and identity syncs.
type Reflector struct {
	memory MemoryClient
	log    *slog.Logger
}

// New builds a Reflector.
func New(memory MemoryClient) *Reflector {
	return &Reflector{memory: memory, log: slog.Default().With("component", "reflector")}
}

// Reflect implements spec §4.10: resolve a scope (channel > guild > user
// > system default), persist the reflection, and sync identity traits.
// If the reflection write fails, the observer's secondary fallback
// (always called here too) still syncs identity traits so preference
// updates aren't lost to a flaky memory service.
func (r *Reflector) Reflect(ctx context.Context, obs models.Observation, plan models.Plan, result models.ExecutionResult, profile models.IdentityProfile) {
	scope, scopeID := resolveScope(obs)

	text := reflectionText(obs, plan, result)
	meta := map[string]any{
		"type":      "system-reflection",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"success":   result.Success,
	}

	if err := r.memory.ReflectUpsert(ctx, text, scope, scopeID, meta); err != nil {
		r.log.Warn("reflection upsert failed, falling back to identity-only sync", "error", err, "scope", scope, "scopeId", scopeID)
	}

	r.syncIdentity(ctx, obs, profile)
}

func (r *Reflector) syncIdentity(ctx context.Context, obs models.Observation, profile models.IdentityProfile) {
	canonicalID := "user:" + obs.AuthorID
	traits := models.EntityTraits{
		Identity: models.IdentityTraits{
			PublicAliases:     profile.PublicAliases,
			PrivateAliases:    profile.PrivateAliases,
			AllowAutoIntimate: profile.AllowAutoIntimate,
		},
	}
	if err := r.memory.UpsertUserEntity(ctx, canonicalID, traits); err != nil {
		r.log.Error("identity sync failed", "error", err, "userId", obs.AuthorID)
	}
}

// resolveScope implements spec §4.10's preference order: channel, else
// guild, else user, else a system default.
func resolveScope(obs models.Observation) (memoryclient.ReflectionScope, string) {
	switch {
	case obs.ChannelID != "":
		return memoryclient.ReflectScopeChannel, obs.ChannelID
	case obs.GuildID != "":
		return memoryclient.ReflectScopeGuild, obs.GuildID
	case obs.AuthorID != "":
		return memoryclient.ReflectScopeUser, obs.AuthorID
	default:
		return memoryclient.ReflectScopeUser, "system"
	}
}

func reflectionText(obs models.Observation, plan models.Plan, result models.ExecutionResult) string {
	status := "succeeded"
	if !result.Success {
		status = "failed"
	}
	return "observation=" + obs.Content + " planSource=" + string(plan.Source) + " outcome=" + status
}
