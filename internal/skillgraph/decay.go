package skillgraph

import (
	"context"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

// DecayMemoryClient is the subset of memory capability the background
// decay loop needs: a way to enumerate skills and patch their status.
type DecayMemoryClient interface {
	MemoryClient
	SkillStatusPatch(ctx context.Context, skillID string, status models.SkillStatus, reason string) error
}

// StartDecayLoop runs the §4.11 decay rules on a fixed interval until
// StopDecayLoop is called. It is grounded on the teacher's
// background-watcher goroutine shape (spawn, select on ticker/ctx.Done,
// WaitGroup on exit) rather than per-observation invocation — decay is a
// maintenance sweep, not a request-path concern.
func (g *Graph) StartDecayLoop(ctx context.Context, memory DecayMemoryClient, interval time.Duration) {
	loopCtx, cancel := context.WithCancel(ctx)
	g.stopDecay = cancel

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				g.runDecaySweep(loopCtx, memory)
			}
		}
	}()
}

// StopDecayLoop cancels the background sweep and waits for it to exit.
func (g *Graph) StopDecayLoop() {
	if g.stopDecay == nil {
		return
	}
	g.stopDecay()
	g.wg.Wait()
}

func (g *Graph) runDecaySweep(ctx context.Context, memory DecayMemoryClient) {
	hits, err := memory.SkillSearch(ctx, "", 1000)
	if err != nil {
		g.log.Warn("decay sweep: skill search failed", "error", err)
		return
	}

	now := time.Now().UTC()
	for _, hit := range hits {
		switch {
		case hit.Stats.SuccessRate < g.thresholds.DemoteBelow:
			g.patchStatus(ctx, memory, hit.Skill.ID, models.SkillStatusDemoted, "successRate below demote threshold")
		case now.Sub(hit.Skill.LastUsed) > g.thresholds.ArchiveAfter:
			g.patchStatus(ctx, memory, hit.Skill.ID, models.SkillStatusArchived, "unused past archive window")
		case hit.Stats.SuccessRate >= g.thresholds.PreferredAtOrAbove && hit.Stats.Status == models.SkillStatusActive:
			g.patchStatus(ctx, memory, hit.Skill.ID, models.SkillStatusPreferred, "successRate at or above preferred threshold")
		}
	}
}

func (g *Graph) patchStatus(ctx context.Context, memory DecayMemoryClient, skillID string, status models.SkillStatus, reason string) {
	if err := memory.SkillStatusPatch(ctx, skillID, status, reason); err != nil {
		g.log.Error("decay status patch failed", "skillId", skillID, "status", status, "error", err)
	}
}
