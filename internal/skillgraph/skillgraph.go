// Package skillgraph tracks observed action sequences, promotes
// successful repeated patterns into reusable skills, and decides which
// stored skills are safe to replay (spec §4.11, component C11).
package skillgraph

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

// MemoryClient is the subset of memoryclient.Client the skill graph uses
// to persist promotions and query for replay candidates.
type MemoryClient interface {
	SkillSearch(ctx context.Context, query string, limit int) ([]models.SkillSearchHit, error)
	SkillPromote(ctx context.Context, skill models.Skill) error
}

// Thresholds configures promotion and decay behavior (spec §4.11,
// set from internal/config.SkillsConfig's YAML fields; no environment
// variable overrides any of these values).
type Thresholds struct {
	PromotionStreak      int
	PromotionSuccessRate float64
	PromotionExecutions  int
	SimilarityThreshold  float64
	DecayFloor           float64
	DemoteBelow          float64
	PreferredAtOrAbove   float64
	ArchiveAfter         time.Duration
	HistoryCapacity      int
}

// DefaultThresholds matches spec §4.11's documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PromotionStreak:      3,
		PromotionSuccessRate: 0.8,
		PromotionExecutions:  3,
		SimilarityThreshold:  0.8,
		DecayFloor:           0.5,
		DemoteBelow:          0.5,
		PreferredAtOrAbove:   0.9,
		ArchiveAfter:         30 * 24 * time.Hour,
		HistoryCapacity:      1000,
	}
}

// domainBlacklist forces the tool path for patterns this version never
// replays from the skill graph (spec §4.11).
var domainBlacklist = []string{"weather"}

// Graph is the bounded in-memory skill tracker. It is safe for
// concurrent use; the history ring buffer and candidate map are both
// guarded by mu, mirroring the teacher's dual-map RWMutex shape.
type Graph struct {
	mu         sync.RWMutex
	history    []models.ExecutionRecord
	candidates map[string]*models.SkillCandidate

	memory     MemoryClient
	thresholds Thresholds
	log        *slog.Logger

	stopDecay context.CancelFunc
	wg        sync.WaitGroup
}

// New builds a Graph with the given thresholds and memory capability.
func New(memory MemoryClient, thresholds Thresholds) *Graph {
	return &Graph{
		candidates: make(map[string]*models.SkillCandidate),
		memory:     memory,
		thresholds: thresholds,
		log:        slog.Default().With("component", "skillgraph"),
	}
}

// ContextHash computes the stable digest spec §4.11 defines: sha256 of
// intent || "::" || join("|", tool:JSON(input)) over the action sequence.
func ContextHash(intent string, actions []models.SkillAction) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		input, _ := json.Marshal(a.Input)
		parts[i] = a.Tool + ":" + string(input)
	}
	digestInput := intent + "::" + strings.Join(parts, "|")
	sum := sha256.Sum256([]byte(digestInput))
	return hex.EncodeToString(sum[:])
}

// RecordExecution appends an execution record to the bounded history
// ring buffer (I7: length never exceeds HistoryCapacity) and updates the
// candidate bucket for its contextHash, tracking promotion eligibility.
func (g *Graph) RecordExecution(ctx context.Context, record models.ExecutionRecord) {
	g.mu.Lock()
	g.history = append(g.history, record)
	if cap := g.thresholds.HistoryCapacity; cap > 0 && len(g.history) > cap {
		g.history = g.history[len(g.history)-cap:]
	}

	candidate, ok := g.candidates[record.ContextHash]
	if !ok {
		candidate = &models.SkillCandidate{
			Intent:  record.Intent,
			Pattern: record.ContextHash,
			Actions: record.Actions,
		}
		g.candidates[record.ContextHash] = candidate
	}
	candidate.TotalExecutions++
	if record.Success {
		candidate.SuccessCount++
		candidate.SuccessStreak++
	} else {
		candidate.SuccessStreak = 0
	}

	ready := g.isPromotable(candidate)
	snapshot := *candidate
	g.mu.Unlock()

	if ready {
		g.promote(ctx, record.ContextHash, snapshot)
	}
}

func (g *Graph) isPromotable(c *models.SkillCandidate) bool {
	return c.SuccessStreak >= g.thresholds.PromotionStreak &&
		c.TotalExecutions >= g.thresholds.PromotionExecutions &&
		c.SuccessRate() >= g.thresholds.PromotionSuccessRate
}

func (g *Graph) promote(ctx context.Context, contextHash string, candidate models.SkillCandidate) {
	skill := models.Skill{
		ID:        contextHash,
		Intent:    candidate.Intent,
		Pattern:   candidate.Pattern,
		Actions:   candidate.Actions,
		CreatedAt: time.Now().UTC(),
		LastUsed:  time.Now().UTC(),
	}

	if err := g.memory.SkillPromote(ctx, skill); err != nil {
		g.log.Error("skill promotion failed", "contextHash", contextHash, "intent", candidate.Intent, "error", err)
		return
	}

	g.mu.Lock()
	delete(g.candidates, contextHash)
	g.mu.Unlock()
}

// ReplayCandidate selects a persisted skill suitable for deterministic
// replay given free-text intent, or nil if nothing qualifies (spec
// §4.11's rejection rules).
func (g *Graph) ReplayCandidate(ctx context.Context, intentText string) (*models.SkillSearchHit, error) {
	if isBlacklisted(intentText) {
		return nil, nil
	}

	hits, err := g.memory.SkillSearch(ctx, intentText, 5)
	if err != nil {
		return nil, err
	}

	for _, hit := range hits {
		if hit.Similarity < g.thresholds.SimilarityThreshold {
			continue
		}
		if rejectSkill(hit, intentText, g.thresholds.DecayFloor) {
			continue
		}
		h := hit
		return &h, nil
	}
	return nil, nil
}

func rejectSkill(hit models.SkillSearchHit, intentText string, decayFloor float64) bool {
	if len(hit.Skill.Actions) == 0 {
		return true
	}
	if hit.Stats.Status == models.SkillStatusArchived || hit.Stats.Status == models.SkillStatusDemoted {
		return true
	}
	if hit.Stats.SuccessRate < decayFloor {
		return true
	}
	if !tokensOverlap(intentText, hit.Skill.Pattern) {
		return true
	}
	if isBlacklisted(hit.Skill.Pattern) {
		return true
	}
	return false
}

func tokensOverlap(a, b string) bool {
	aTokens := tokenSet(a)
	for _, t := range strings.Fields(strings.ToLower(b)) {
		if _, ok := aTokens[t]; ok {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, t := range strings.Fields(strings.ToLower(s)) {
		out[t] = struct{}{}
	}
	return out
}

func isBlacklisted(text string) bool {
	lower := strings.ToLower(text)
	for _, d := range domainBlacklist {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// Similar implements intent.SkillSimilarityQuery: the top replay
// candidate, surfaced as a SkillMatch for the intent engine.
func (g *Graph) Similar(ctx context.Context, text string) (*models.SkillMatch, error) {
	hit, err := g.ReplayCandidate(ctx, text)
	if err != nil || hit == nil {
		return nil, err
	}
	return &models.SkillMatch{SkillID: hit.Skill.ID, Similarity: hit.Similarity}, nil
}

// HistoryLen reports the current history length, for tests asserting I7.
func (g *Graph) HistoryLen() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.history)
}
