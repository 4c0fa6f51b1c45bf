// Package identityupdate implements the identity.update tool (spec §6):
// it merges alias and intimacy-preference changes into a user's stored
// identity traits via the memory client's entity upsert.
package identityupdate

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexuscore/reasoning/internal/toolkit"
	"github.com/nexuscore/reasoning/pkg/models"
)

// Store is the memory capability identity.update delegates to: fetch the
// current entity (to merge rather than clobber), then upsert the result.
type Store interface {
	GetUserEntity(ctx context.Context, canonicalID string) (*models.UserEntity, error)
	UpsertUserEntity(ctx context.Context, canonicalID string, traits models.EntityTraits) error
}

// Tool implements toolkit.Tool for identity.update.
type Tool struct {
	store Store
}

// New builds an identity.update tool bound to store.
func New(store Store) *Tool {
	return &Tool{store: store}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "identity.update" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Updates a user's public/private aliases and auto-intimate preference."
}

// OutputSchema is the JSON schema identity.update results validate against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok"],
  "properties": {
    "ok": {"type": "boolean"},
    "publicAliases": {"type": "array"},
    "privateAliases": {"type": "array"}
  }
}`)

// Execute implements toolkit.Tool. Args accept addPublicAliases,
// addPrivateAliases, setAllowAutoIntimate per spec §6, plus the planner's
// "call me X" shorthand preferredAlias, which is treated as a single
// addPublicAliases entry.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	userID, _ := args["userId"].(string)
	if userID == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("identity.update: userId is required")
	}
	canonicalID := "user:" + userID

	entity, err := t.store.GetUserEntity(ctx, canonicalID)
	if err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("identity.update: %w", err)
	}
	traits := models.IdentityTraits{}
	if entity != nil {
		traits = entity.Traits.Identity
	}

	addPublic := stringSliceArg(args, "addPublicAliases")
	if preferred, _ := args["preferredAlias"].(string); preferred != "" {
		addPublic = append(addPublic, preferred)
	}
	addPrivate := stringSliceArg(args, "addPrivateAliases")

	traits.PublicAliases = mergeAliases(traits.PublicAliases, addPublic)
	traits.PrivateAliases = mergeAliases(traits.PrivateAliases, addPrivate)
	if v, ok := args["setAllowAutoIntimate"].(bool); ok {
		traits.AllowAutoIntimate = v
	}

	newTraits := models.EntityTraits{Identity: traits}
	if err := t.store.UpsertUserEntity(ctx, canonicalID, newTraits); err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("identity.update: %w", err)
	}

	return toolkit.ToolOutcome{OK: true, Data: map[string]any{
		"ok":             true,
		"publicAliases":  traits.PublicAliases,
		"privateAliases": traits.PrivateAliases,
	}}, nil
}

// mergeAliases appends additions not already present (case-insensitively).
func mergeAliases(existing, additions []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[strings.ToLower(a)] = struct{}{}
	}
	out := append([]string(nil), existing...)
	for _, a := range additions {
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
