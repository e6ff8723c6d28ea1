// ABOUTME: Engine composes context loading, combination, and ranking into recommend
// ABOUTME: Explicitly constructed with injected collaborators; no process-global state
package core

import (
	"context"
	"fmt"

	"github.com/adapta/recommender/internal/embedding"
	"github.com/adapta/recommender/internal/models"
)

// ContextStore loads a user's active, non-archived context records
type ContextStore interface {
	ListActiveContexts(ctx context.Context, userID string) ([]models.ContextRecord, error)
}

// Engine is the context-weighted semantic recommendation engine.
// Instances are safe for concurrent use; the embedding cache is the only
// shared mutable state.
type Engine struct {
	contexts ContextStore
	combiner *Combiner
	embedder Embedder
	cache    *embedding.Cache
}

// NewEngine creates an Engine with the given collaborators
func NewEngine(contexts ContextStore, embedder Embedder, cache *embedding.Cache) *Engine {
	return &Engine{
		contexts: contexts,
		combiner: NewCombiner(embedder, cache),
		embedder: embedder,
		cache:    cache,
	}
}

// Combiner exposes the context combiner for callers that persist freshly
// computed context embeddings
func (e *Engine) Combiner() *Combiner {
	return e.combiner
}

// Recommend loads the user's active contexts, fuses them into a query
// vector, and ranks the candidate pool against it. Returns
// ErrNoActiveContext when the user has nothing to personalize with and
// ErrInvalidK for k < 1.
func (e *Engine) Recommend(ctx context.Context, userID string, candidates []models.Product, k int) ([]models.SimilarityResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	records, err := e.contexts.ListActiveContexts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading contexts for %s: %w", userID, err)
	}

	query, err := e.combiner.CombinedQueryVector(ctx, userID, records)
	if err != nil {
		return nil, err
	}

	return Rank(query, candidates, k)
}

// EmbeddingHealth reports embedding provider health for liveness probes
func (e *Engine) EmbeddingHealth(ctx context.Context) models.HealthStatus {
	return e.embedder.HealthCheck(ctx)
}

// CacheStats reports embedding-cache occupancy and hit rate
func (e *Engine) CacheStats() models.CacheStats {
	return e.cache.Stats()
}
