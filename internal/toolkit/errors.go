package toolkit

import "errors"

// Sentinel errors for tool registry and envelope operations, in the
// teacher's style of package-level error vars (internal/agent/errors.go).
var (
	// ErrToolNotFound indicates the requested tool name was never registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrNoOutputSchema indicates a tool was registered without an output
	// schema — execution is refused rather than trust an unvalidated shape.
	ErrNoOutputSchema = errors.New("tool has no output schema")
)
