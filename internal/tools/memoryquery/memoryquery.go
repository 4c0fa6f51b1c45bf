// Package memoryquery implements the memory.query tool (spec §6): a thin
// wrapper exposing the memory service's hybrid search to the planner as
// an ordinary tool invocation.
package memoryquery

import (
	"context"
	"fmt"

	"github.com/nexuscore/reasoning/internal/toolkit"
	"github.com/nexuscore/reasoning/pkg/models"
)

const defaultLimit = 10

// Searcher is the memory capability memory.query delegates to.
type Searcher interface {
	HybridSearch(ctx context.Context, query string, limit int) ([]models.RelevantItem, error)
}

// Tool implements toolkit.Tool for memory.query.
type Tool struct {
	memory Searcher
}

// New builds a memory.query tool bound to memory.
func New(memory Searcher) *Tool {
	return &Tool{memory: memory}
}

// Name implements toolkit.Tool.
func (t *Tool) Name() string { return "memory.query" }

// Description implements toolkit.Tool.
func (t *Tool) Description() string {
	return "Searches prior memory (reflections, entities, skills) for context relevant to a query."
}

// OutputSchema is the JSON schema memory.query results validate against.
var OutputSchema = []byte(`{
  "type": "object",
  "required": ["ok", "items"],
  "properties": {
    "ok": {"type": "boolean"},
    "items": {"type": "array"},
    "answer": {"type": "string"}
  }
}`)

// Execute implements toolkit.Tool. Args accept either "q" or "query" for
// the search text, per spec §6's documented alias.
func (t *Tool) Execute(ctx context.Context, args map[string]any) (toolkit.ToolOutcome, error) {
	query := stringArg(args, "q")
	if query == "" {
		query = stringArg(args, "query")
	}
	if query == "" {
		return toolkit.ToolOutcome{}, fmt.Errorf("memory.query: q or query is required")
	}

	limit := defaultLimit
	if raw, ok := args["limit"]; ok {
		if n, ok := toInt(raw); ok && n > 0 {
			limit = n
		}
	}

	items, err := t.memory.HybridSearch(ctx, query, limit)
	if err != nil {
		return toolkit.ToolOutcome{}, fmt.Errorf("memory.query: %w", err)
	}

	return toolkit.ToolOutcome{OK: true, Data: map[string]any{
		"ok":    true,
		"items": items,
	}}, nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
