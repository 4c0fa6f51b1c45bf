// Package toolkit implements the tool registry and invocation envelope
// (spec §4.1, component C1): a process-wide table of named async
// operations, each wrapped to produce a ToolResultEnvelope with timing,
// output-schema validation, and metrics notification.
package toolkit

import (
	"context"
	"encoding/json"
)

// Tool is a named async operation. Every registered tool must also
// declare an output schema, passed alongside it to Registry.Register — tools
// without one are rejected at execution time (spec §4.1: "unknown output
// shapes are unsafe").
type Tool interface {
	// Name returns the tool's canonical name, e.g. "message.send".
	Name() string
	// Description is a natural-language summary shown to the planner.
	Description() string
	// Execute runs the tool. The returned value is marshaled into the
	// envelope's Output field and validated against the tool's output
	// schema by the caller (Registry.Execute / the executor).
	Execute(ctx context.Context, args map[string]any) (ToolOutcome, error)
}

// ToolOutcome is the raw return value of a tool invocation before it is
// wrapped in an envelope. OK defaults to true when a tool returns no
// explicit outcome and no error (spec §4.1: "absent ⇒ true").
type ToolOutcome struct {
	OK   bool
	Data any
}

// MarshalOutput encodes o.Data as the envelope's raw output payload.
func (o ToolOutcome) MarshalOutput() (json.RawMessage, error) {
	if o.Data == nil {
		return nil, nil
	}
	return json.Marshal(o.Data)
}
