// Package observer is the single entry point that sequences every other
// component for one Observation (spec §4.12, component C12): Retrieval,
// Identity, Intent, Planning, Gating, Sanitization, Execution,
// Reflection, and Skill Learning. It never throws (invariant I9); any
// stage failure degrades to that stage's documented default and the
// pipeline continues.
package observer

import (
	"context"
	"log/slog"
	"time"

	"github.com/nexuscore/reasoning/internal/gating"
	"github.com/nexuscore/reasoning/internal/identity"
	"github.com/nexuscore/reasoning/internal/intent"
	"github.com/nexuscore/reasoning/internal/planner"
	"github.com/nexuscore/reasoning/internal/reflector"
	"github.com/nexuscore/reasoning/internal/retriever"
	"github.com/nexuscore/reasoning/internal/sanitizer"
	"github.com/nexuscore/reasoning/internal/skillgraph"
	"github.com/nexuscore/reasoning/pkg/models"
)

// Executor is the subset of *executor.Executor the observer depends on.
type Executor interface {
	Execute(ctx context.Context, plan models.Plan, obs models.Observation) models.ExecutionResult
}

// Observer wires every pipeline stage together.
type Observer struct {
	retriever *retriever.Retriever
	intent    *intent.Engine
	planner   *planner.Planner
	gate      *gating.Filter
	sanitizer *sanitizer.Sanitizer
	executor  Executor
	reflector *reflector.Reflector
	skills    *skillgraph.Graph
	log       *slog.Logger
}

// New builds an Observer from its fully-constructed dependencies.
func New(
	retr *retriever.Retriever,
	intentEngine *intent.Engine,
	plan *planner.Planner,
	gate *gating.Filter,
	sanitize *sanitizer.Sanitizer,
	exec Executor,
	reflect *reflector.Reflector,
	skills *skillgraph.Graph,
) *Observer {
	return &Observer{
		retriever: retr,
		intent:    intentEngine,
		planner:   plan,
		gate:      gate,
		sanitizer: sanitize,
		executor:  exec,
		reflector: reflect,
		skills:    skills,
		log:       slog.Default().With("component", "observer"),
	}
}

// Process runs one observation through the full pipeline. It always
// returns a result; on an unrecovered panic anywhere in the sequence it
// substitutes a safe apology execution (spec §7's "never silent
// failure" rule plus invariant I9).
func (o *Observer) Process(ctx context.Context, obs models.Observation) (result models.ExecutionResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("observer recovered from panic, returning safe apology", "panic", r)
			result = o.safeApologyResult(ctx, obs)
		}
	}()

	memCtx := o.retriever.Retrieve(ctx, obs)
	zone := identity.ResolveZone(obs)
	profile := identity.BuildProfile(obs, memCtx.UserEntity)

	decision := o.resolveIntent(ctx, obs)

	plan := o.planner.Plan(ctx, obs, memCtx, decision, zone, profile)
	plan = o.gate.Apply(plan, decision, obs.ChannelID)
	plan, sanitizedObs := o.sanitizer.SanitizePlan(plan, obs, zone, profile)

	result = o.executor.Execute(ctx, plan, sanitizedObs)

	o.reflector.Reflect(ctx, obs, plan, result, profile)
	o.recordSkillExecution(ctx, decision, plan, result, start)

	return result
}

// resolveIntent isolates the intent-engine call so a panic there
// degrades to the documented default decision rather than aborting the
// whole observation.
func (o *Observer) resolveIntent(ctx context.Context, obs models.Observation) (decision models.IntentDecision) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("intent resolution panicked, using default decision", "panic", r)
			decision = models.DefaultIntentDecision(time.Now().UTC())
		}
	}()
	return o.intent.Resolve(ctx, obs)
}

func (o *Observer) recordSkillExecution(ctx context.Context, decision models.IntentDecision, plan models.Plan, result models.ExecutionResult, start time.Time) {
	if o.skills == nil {
		return
	}
	actions := make([]models.SkillAction, len(plan.Steps))
	for i, step := range plan.Steps {
		actions[i] = models.SkillAction{Tool: step.Tool, Input: step.Args}
	}
	record := models.ExecutionRecord{
		Intent:      decision.Intent,
		Actions:     actions,
		Success:     result.Success,
		LatencyMs:   time.Since(start).Milliseconds(),
		Timestamp:   time.Now().UTC(),
		ContextHash: skillgraph.ContextHash(decision.Intent, actions),
	}
	o.skills.RecordExecution(ctx, record)
}

func (o *Observer) safeApologyResult(ctx context.Context, obs models.Observation) models.ExecutionResult {
	plan := models.SingleMessagePlan(obs.ChannelID, "Something went wrong on my end — sorry about that.", "observer recovery", models.PlanSourceFallback)
	return o.executor.Execute(ctx, plan, obs)
}
