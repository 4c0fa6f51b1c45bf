package executor

import (
	"context"
	"testing"

	"github.com/nexuscore/reasoning/internal/toolkit"
	"github.com/nexuscore/reasoning/pkg/models"
)

type scriptedRegistry struct {
	calls   int
	results map[string][]models.ToolResultEnvelope
}

func (r *scriptedRegistry) Execute(_ context.Context, name string, args map[string]any) models.ToolResultEnvelope {
	r.calls++
	results := r.results[name]
	if len(results) == 0 {
		return models.ToolResultEnvelope{Tool: name, OK: false, Error: "no scripted result"}
	}
	env := results[0]
	if len(results) > 1 {
		r.results[name] = results[1:]
	}
	env.Tool = name
	return env
}

func TestExecuteSingleValidAttemptOneInvocationL3(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"message.send": {{OK: true}},
	}}
	e := New(reg, nil)
	plan := models.Plan{Steps: []models.Step{{Tool: "message.send", Args: map[string]any{"content": "hi"}}}}

	result := e.Execute(context.Background(), plan, models.Observation{ChannelID: "c1"})

	if reg.calls != 1 {
		t.Fatalf("expected exactly 1 invocation, got %d", reg.calls)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
}

func TestExecuteInvalidThenValidProducesTwoInvocationsL3(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"message.send": {
			{OK: false, Error: "output schema validation failed: bad", ErrorType: models.EnvelopeErrorValidation},
			{OK: true},
		},
	}}
	e := New(reg, nil)
	plan := models.Plan{Steps: []models.Step{{Tool: "message.send", Args: map[string]any{"content": "hi"}}}}

	result := e.Execute(context.Background(), plan, models.Observation{ChannelID: "c1"})

	if reg.calls != 2 {
		t.Fatalf("expected exactly 2 invocations, got %d", reg.calls)
	}
	if !result.Success {
		t.Fatal("expected eventual success")
	}
}

func TestExecuteTwoInvalidAttemptsProducesFailureL3(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"message.send": {
			{OK: false, Error: "bad", ErrorType: models.EnvelopeErrorValidation},
			{OK: false, Error: "still bad", ErrorType: models.EnvelopeErrorValidation},
		},
	}}
	e := New(reg, nil)
	plan := models.Plan{Steps: []models.Step{{Tool: "message.send", Args: map[string]any{}}, {Tool: "system.capabilities", Args: map[string]any{}}}}

	result := e.Execute(context.Background(), plan, models.Observation{ChannelID: "c1"})

	if reg.calls != 2 {
		t.Fatalf("expected exactly 2 invocations, got %d", reg.calls)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Outputs) != 1 {
		t.Fatalf("expected plan aborted after first step's failure, got %d outputs", len(result.Outputs))
	}
}

func TestExecuteUnknownToolAbortsWithoutRetry(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"ghost.tool": {{OK: false, Error: toolkit.ErrToolNotFound.Error(), ErrorType: models.EnvelopeErrorNotFound}},
	}}
	e := New(reg, nil)
	plan := models.Plan{Steps: []models.Step{{Tool: "ghost.tool", Args: map[string]any{}}, {Tool: "message.send", Args: map[string]any{}}}}

	result := e.Execute(context.Background(), plan, models.Observation{})

	if reg.calls != 1 {
		t.Fatalf("expected exactly 1 invocation (no retry, abort), got %d", reg.calls)
	}
	if len(result.Outputs) != 1 {
		t.Fatalf("expected only the first step's output recorded, got %d", len(result.Outputs))
	}
}

// A tool-declared input error (spec §7 item 1, e.g. "userId is required"
// from user.remind / identity.update) must abort immediately without a
// retry, exactly like an unknown tool — it is a distinct envelope shape
// from a schema-validation failure and must not fall into the retryable
// branch just because it is also a bare error string.
func TestExecuteInputErrorAbortsWithoutRetry(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"user.remind": {{OK: false, Error: "userId is required", ErrorType: models.EnvelopeErrorExecution}},
	}}
	e := New(reg, nil)
	plan := models.Plan{Steps: []models.Step{{Tool: "user.remind", Args: map[string]any{}}}}

	result := e.Execute(context.Background(), plan, models.Observation{})

	if reg.calls != 1 {
		t.Fatalf("expected exactly 1 invocation (input errors abort without retry), got %d", reg.calls)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
}

func TestEnrichArgsDoesNotOverwritePresentKeys(t *testing.T) {
	args := map[string]any{"channelId": "explicit"}
	out := enrichArgs(args, models.Observation{ChannelID: "from-obs", AuthorID: "u1"})

	if out["channelId"] != "explicit" {
		t.Fatalf("expected explicit channelId preserved, got %v", out["channelId"])
	}
	if out["userId"] != "u1" {
		t.Fatalf("expected userId enriched from observation, got %v", out["userId"])
	}
}

func TestInterpolateResolvesPlaceholder(t *testing.T) {
	source := map[string]any{"userId": "u1", "nested": map[string]any{"x": "y"}}
	args := map[string]any{"target": "${userId}", "deep": "${nested.x}", "literal": "no placeholder here"}

	out := interpolate(args, source)

	if out["target"] != "u1" {
		t.Fatalf("expected resolved userId, got %v", out["target"])
	}
	if out["deep"] != "y" {
		t.Fatalf("expected resolved nested.x, got %v", out["deep"])
	}
	if out["literal"] != "no placeholder here" {
		t.Fatalf("expected literal string untouched, got %v", out["literal"])
	}
}

func TestInterpolateUnresolvableFallsBackToOriginal(t *testing.T) {
	args := map[string]any{"target": "${missing.path}"}
	out := interpolate(args, map[string]any{})

	if out["target"] != "${missing.path}" {
		t.Fatalf("expected fallback to original placeholder text, got %v", out["target"])
	}
}

func TestContentTweakHookIsApplied(t *testing.T) {
	reg := &scriptedRegistry{results: map[string][]models.ToolResultEnvelope{
		"message.send": {{OK: true}},
	}}
	var seenArgs map[string]any
	tweak := func(_ models.Step, args map[string]any, _ models.Observation) map[string]any {
		args["tweaked"] = true
		seenArgs = args
		return args
	}
	e := New(reg, tweak)
	plan := models.Plan{Steps: []models.Step{{Tool: "message.send", Args: map[string]any{}}}}

	e.Execute(context.Background(), plan, models.Observation{})

	if seenArgs == nil || seenArgs["tweaked"] != true {
		t.Fatal("expected content tweak hook to run")
	}
}
