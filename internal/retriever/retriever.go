// Package retriever builds a Context for one Observation (spec §4.3,
// component C3): a hybrid-search query plus the canonical user entity.
package retriever

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexuscore/reasoning/pkg/models"
)

const (
	searchLimit  = 10
	recentWindow = 5
)

// MemoryClient is the subset of *memoryclient.Client the retriever needs,
// narrowed to ease testing.
type MemoryClient interface {
	HybridSearch(ctx context.Context, query string, limit int) ([]models.RelevantItem, error)
	GetUserEntity(ctx context.Context, canonicalID string) (*models.UserEntity, error)
}

// Retriever turns an Observation into a Context. Any failure degrades to
// an empty, pass-through Context — retrieval never fails the pipeline
// (spec §4.3, invariant I9).
type Retriever struct {
	memory MemoryClient
	log    *slog.Logger
}

// New builds a Retriever backed by the given memory capability.
func New(memory MemoryClient) *Retriever {
	return &Retriever{
		memory: memory,
		log:    slog.Default().With("component", "retriever"),
	}
}

// Retrieve implements the §4.3 algorithm: hybrid-search with
// q=observation.Content, limit=10; relevant[] in search order; recent[]
// is the first 5 relevant items with a synthesized timestamp (missing
// timestamps are not returned by hybrid-search, so "now" stands in);
// canonicalize the author id and attach the fetched entity.
func (r *Retriever) Retrieve(ctx context.Context, obs models.Observation) models.Context {
	out := models.Context{
		Recent:   []models.RecentItem{},
		Relevant: []models.RelevantItem{},
	}

	relevant, err := r.memory.HybridSearch(ctx, obs.Content, searchLimit)
	if err != nil {
		r.log.Warn("hybrid search failed, degrading to empty context", "error", err)
	} else {
		out.Relevant = relevant
		n := recentWindow
		if n > len(relevant) {
			n = len(relevant)
		}
		now := time.Now().UTC()
		for _, item := range relevant[:n] {
			out.Recent = append(out.Recent, models.RecentItem{
				Content:   item.Content,
				Timestamp: now,
			})
		}
	}

	canonicalID := fmt.Sprintf("user:%s", obs.AuthorID)
	entity, err := r.memory.GetUserEntity(ctx, canonicalID)
	if err != nil {
		r.log.Warn("user entity fetch failed, continuing without it", "error", err, "id", canonicalID)
	} else {
		out.UserEntity = entity
	}

	return out
}
