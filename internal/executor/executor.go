// Package executor runs a Plan's steps in order against a tool registry
// (spec §4.9, component C9): argument enrichment, placeholder
// interpolation, one retry on failure, and abort-on-first-failure
// sequencing (spec §5's ordering guarantee).
package executor

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nexuscore/reasoning/pkg/models"
)

// Registry is the subset of *toolkit.Registry the executor depends on.
type Registry interface {
	Execute(ctx context.Context, name string, args map[string]any) models.ToolResultEnvelope
}

// ContentTweakFunc is an app-specific extension point applied to a
// step's enriched args right before execution (spec §4.9 step 4, OQ2).
// The default is a no-op; callers wire their own rewriting logic here
// rather than hard-coding it into the executor.
type ContentTweakFunc func(step models.Step, args map[string]any, obs models.Observation) map[string]any

// NoopContentTweak leaves args untouched.
func NoopContentTweak(_ models.Step, args map[string]any, _ models.Observation) map[string]any {
	return args
}

// Executor runs plans sequentially against a Registry.
type Executor struct {
	registry Registry
	tweak    ContentTweakFunc
	log      *slog.Logger
}

// New builds an Executor. A nil tweak defaults to NoopContentTweak.
func New(registry Registry, tweak ContentTweakFunc) *Executor {
	if tweak == nil {
		tweak = NoopContentTweak
	}
	return &Executor{
		registry: registry,
		tweak:    tweak,
		log:      slog.Default().With("component", "executor"),
	}
}

// Execute runs plan.Steps in order. Enrichment, interpolation, and the
// content tweak hook all run before each attempt; a failed attempt is
// retried exactly once when its envelope classifies as a retryable
// failure — a schema-validation mismatch (spec §4.9 step 5, §7 item 2)
// — and aborts immediately otherwise: unknown tool, missing schema,
// tool-declared input errors, timeouts, and thrown exceptions all stop
// the remainder of the plan without a retry (§7 items 1 and 3, law L3).
func (e *Executor) Execute(ctx context.Context, plan models.Plan, obs models.Observation) models.ExecutionResult {
	outputs := make([]models.StepOutput, 0, len(plan.Steps))

	for _, step := range plan.Steps {
		args := enrichArgs(step.Args, obs)
		args = interpolate(args, args)
		args = e.tweak(step, args, obs)

		env := e.registry.Execute(ctx, step.Tool, args)
		if !env.OK {
			if !env.ErrorType.IsRetryable() {
				outputs = append(outputs, models.StepOutput{Step: step, Envelope: env})
				break
			}

			e.log.Warn("tool call failed, retrying once", "tool", step.Tool, "error", env.Error, "traceId", env.TraceID)
			retryEnv := e.registry.Execute(ctx, step.Tool, args)
			outputs = append(outputs, models.StepOutput{Step: step, Envelope: retryEnv})
			if !retryEnv.OK {
				break
			}
			continue
		}

		outputs = append(outputs, models.StepOutput{Step: step, Envelope: env})
	}

	return models.ExecutionResult{
		Success: models.ComputeSuccess(outputs),
		Outputs: outputs,
	}
}

// enrichArgs merges observation-derived fields into args without
// overwriting keys the planner already set (spec §4.9 step 2).
func enrichArgs(args map[string]any, obs models.Observation) map[string]any {
	out := make(map[string]any, len(args)+5)
	for k, v := range args {
		out[k] = v
	}
	setIfAbsent(out, "channelId", obs.ChannelID)
	setIfAbsent(out, "userId", obs.AuthorID)
	setIfAbsent(out, "username", obs.AuthorDisplayName)
	setIfAbsent(out, "guildId", obs.GuildID)
	setIfAbsent(out, "originalContent", obs.Content)
	return out
}

func setIfAbsent(m map[string]any, key string, value string) {
	if value == "" {
		return
	}
	if _, ok := m[key]; ok {
		return
	}
	m[key] = value
}

var placeholderPattern = regexp.MustCompile(`^\$\{([a-zA-Z0-9_.]+)\}$`)

// interpolate walks args, replacing any string value that is exactly a
// "${path}" reference with the value found at that dot-path inside
// source (spec §4.9 step 3). Unresolvable references are left as-is —
// interpolation errors fall back to the pre-interpolation value, never
// to a failed step.
func interpolate(args map[string]any, source map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = interpolateValue(v, source)
	}
	return out
}

func interpolateValue(v any, source map[string]any) any {
	switch val := v.(type) {
	case string:
		m := placeholderPattern.FindStringSubmatch(val)
		if m == nil {
			return val
		}
		resolved, ok := lookupPath(source, m[1])
		if !ok {
			return val
		}
		return resolved
	case map[string]any:
		return interpolate(val, source)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = interpolateValue(item, source)
		}
		return out
	default:
		return v
	}
}

func lookupPath(source map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = source
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
