// Package system implements system.capabilities, an introspection tool
// used by scenario 5 (spec §8): it reports the tool names currently
// reachable, so gating can be tested against a plan that names a tool
// outside an intent's allowlist.
package system

import (
	"context"

	"github.com/nexuscore/reasoning/internal/toolkit"
)

// Lister reports the set of tool names currently registered.
type Lister interface {
	ToolNames() []string
}

// Tool implements toolkit.Tool for system.capabilities.
type Tool struct {
	lister Lister
}

// New builds a system.capabilities tool bound to lister.
func New(lister Lister) *Tool {
	return &Tool{lister: lister}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "system.capabilities" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Lists the tool names currently registered and reachable."
}

// OutputSchema is the JSON schema system.capabilities results validate
// against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok", "tools"],
  "properties": {
    "ok": {"type": "boolean"},
    "tools": {"type": "array", "items": {"type": "string"}}
  }
}`)

// Execute implements toolkit.Tool.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	return toolkit.ToolOutcome{OK: true, Data: map[string]any{
		"ok":    true,
		"tools": t.lister.ToolNames(),
	}}, nil
}
