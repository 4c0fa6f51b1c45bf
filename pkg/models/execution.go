package models

import "encoding/json"

// ToolResultEnvelope is the bounded result record of one tool invocation.
// Exactly one is produced per attempted call (spec invariant I5): ok is
// authoritative, output is the tool's raw return value, error is a
// human-readable string set only when ok is false. ErrorType categorizes
// that failure for retry logic (§4.9 step 5, §7) and is likewise empty
// when ok is true.
type ToolResultEnvelope struct {
	TraceID   string            `json:"traceId"`
	Tool      string            `json:"tool"`
	OK        bool              `json:"ok"`
	Error     string            `json:"error,omitempty"`
	ErrorType EnvelopeErrorType `json:"errorType,omitempty"`
	Ms        int64             `json:"ms"`
	Input     json.RawMessage   `json:"input"`
	Output    json.RawMessage   `json:"output,omitempty"`
	Meta      *EnvelopeMeta     `json:"_meta,omitempty"`
}

// EnvelopeErrorType categorizes an envelope failure for retry logic,
// mirroring the teacher's ToolErrorType / IsRetryable split
// (internal/agent/errors.go).
type EnvelopeErrorType string

const (
	EnvelopeErrorNotFound   EnvelopeErrorType = "not_found"
	EnvelopeErrorNoSchema   EnvelopeErrorType = "no_schema"
	EnvelopeErrorValidation EnvelopeErrorType = "validation"
	EnvelopeErrorExecution  EnvelopeErrorType = "execution"
	EnvelopeErrorTimeout    EnvelopeErrorType = "timeout"
)

// IsRetryable reports whether a failure of this type is worth the
// executor's single retry. Only a schema-validation failure is (spec
// §4.9 step 5, §7 item 2); input errors, missing capability, timeouts,
// and thrown exceptions all abort the plan immediately (§7 items 1, 3).
func (t EnvelopeErrorType) IsRetryable() bool {
	return t == EnvelopeErrorValidation
}

// EnvelopeMeta carries the wrapping metadata every tool call attaches to
// its envelope.
type EnvelopeMeta struct {
	Tool    string `json:"tool"`
	Ms      int64  `json:"ms"`
	TraceID string `json:"traceId"`
	Ts      string `json:"ts"`
}

// StepOutput pairs an executed step with the envelope it produced.
type StepOutput struct {
	Step     Step               `json:"step"`
	Envelope ToolResultEnvelope `json:"envelope"`
}

// ExecutionResult is the outcome of running a Plan. Success is the AND of
// every envelope's OK field (spec invariant I6).
type ExecutionResult struct {
	Success bool         `json:"success"`
	Outputs []StepOutput `json:"outputs"`
}

// ComputeSuccess folds the OK field of every output into the overall
// success flag. An execution with zero outputs is considered successful —
// there is nothing that failed.
func ComputeSuccess(outputs []StepOutput) bool {
	for _, o := range outputs {
		if !o.Envelope.OK {
			return false
		}
	}
	return true
}
