package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

// traceSequencer generates monotonic-enough trace IDs: a timestamp
// base36-encoded prefix plus a per-process counter, per spec §4.1.
type traceSequencer struct {
	counter uint64
}

func newTraceSequencer() *traceSequencer {
	return &traceSequencer{}
}

func (s *traceSequencer) next(now time.Time) string {
	n := atomic.AddUint64(&s.counter, 1)
	return strconv.FormatInt(now.UnixNano(), 36) + "-" + strconv.FormatUint(n, 36)
}

// Execute runs the named tool, producing exactly one ToolResultEnvelope
// (spec invariant I5). Exceptions never escape: a panic inside a tool is
// recovered and turned into an ok=false envelope.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) models.ToolResultEnvelope {
	start := r.clock()
	traceID := r.traceSeq.next(start)
	inputRaw, _ := json.Marshal(args)

	env := models.ToolResultEnvelope{
		TraceID: traceID,
		Tool:    name,
		Input:   inputRaw,
	}

	r.mu.RLock()
	rt, ok := r.tools[name]
	r.mu.RUnlock()

	switch {
	case !ok:
		env.OK = false
		env.Error = ErrToolNotFound.Error()
		env.ErrorType = models.EnvelopeErrorNotFound
	case len(rt.outputSchema) == 0:
		env.OK = false
		env.Error = ErrNoOutputSchema.Error()
		env.ErrorType = models.EnvelopeErrorNoSchema
	default:
		env.OK, env.Output, env.Error, env.ErrorType = r.invoke(ctx, rt, args)
	}

	elapsed := r.clock().Sub(start)
	env.Ms = elapsed.Milliseconds()
	env.Meta = &models.EnvelopeMeta{
		Tool:    name,
		Ms:      env.Ms,
		TraceID: traceID,
		Ts:      start.UTC().Format(time.RFC3339Nano),
	}

	r.metrics.RecordToolCall(name, elapsed, env.OK)
	return env
}

// invoke calls the underlying tool and validates its output against the
// registered schema. A panic is recovered and surfaces as an execution
// error — it never escapes to the caller. The returned errType is the
// only signal the executor uses to decide whether a failure is worth
// its single retry (spec §4.9 step 5, §7): only a schema-validation
// failure is retryable, so a tool-declared input error, a context
// timeout, and a recovered panic must each be classified as something
// IsRetryable reports false for.
func (r *Registry) invoke(ctx context.Context, rt registeredTool, args map[string]any) (ok bool, output json.RawMessage, errMsg string, errType models.EnvelopeErrorType) {
	defer func() {
		if p := recover(); p != nil {
			ok = false
			errMsg = fmt.Sprintf("tool panicked: %v", p)
			errType = models.EnvelopeErrorExecution
		}
	}()

	outcome, err := rt.tool.Execute(ctx, args)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, nil, err.Error(), models.EnvelopeErrorTimeout
		}
		return false, nil, err.Error(), models.EnvelopeErrorExecution
	}

	// Absent OK defaults to true only when the tool returned no error;
	// ToolOutcome's zero value is OK=false, so tools must set it
	// explicitly — this keeps the wrapper simple while still matching
	// spec §4.1's "absent ⇒ true" rule for tools that only ever return
	// success outcomes implicitly via a nil error and zero-value Data.
	if !outcome.OK && outcome.Data == nil && err == nil {
		outcome.OK = true
	}

	raw, merr := outcome.MarshalOutput()
	if merr != nil {
		return false, nil, fmt.Sprintf("marshal tool output: %v", merr), models.EnvelopeErrorExecution
	}

	if len(raw) > 0 {
		var decoded any
		if derr := json.Unmarshal(raw, &decoded); derr == nil {
			if verr := r.validator.Validate(rt.tool.Name(), rt.outputSchema, decoded); verr != nil {
				return false, raw, fmt.Sprintf("output schema validation failed: %v", verr), models.EnvelopeErrorValidation
			}
		}
	}

	if !outcome.OK {
		return false, raw, "", models.EnvelopeErrorExecution
	}
	return true, raw, "", ""
}
