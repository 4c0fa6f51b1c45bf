// Package guild implements guild.member.count, a representative guild
// introspection tool (spec §6, §9): it returns a typed payload describing
// membership size for moderation-stats style plans (the intent map's
// windowHours=24 default targets tools in this family).
package guild

import (
	"context"
	"fmt"

	"github.com/nexuscore/reasoning/internal/toolkit"
)

// Lookup is the guild directory capability guild.member.count delegates
// to (a gateway adapter, in production; a test double here).
type Lookup interface {
	MemberCount(ctx context.Context, guildID string) (total, online int, err error)
}

// Tool implements toolkit.Tool for guild.member.count.
type Tool struct {
	lookup Lookup
}

// New builds a guild.member.count tool bound to lookup.
func New(lookup Lookup) *Tool {
	return &Tool{lookup: lookup}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "guild.member.count" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Reports total and online member counts for a guild."
}

// OutputSchema is the JSON schema guild.member.count results validate
// against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok", "total"],
  "properties": {
    "ok": {"type": "boolean"},
    "total": {"type": "integer"},
    "online": {"type": "integer"}
  }
}`)

// Execute implements toolkit.Tool.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	guildID, _ := args["guildId"].(string)
	if guildID == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("guild.member.count: guildId is required")
	}

	total, online, err := t.lookup.MemberCount(ctx, guildID)
	if err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("guild.member.count: %w", err)
	}

	return toolkit.ToolOutcome{OK: true, Data: map[string]any{
		"ok":     true,
		"total":  total,
		"online": online,
	}}, nil
}
