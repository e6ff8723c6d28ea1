// ABOUTME: Combiner fuses a user's context records into a single query vector
// ABOUTME: Applies priority tiering then weight-based averaging within the top tier
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adapta/recommender/internal/embedding"
	"github.com/adapta/recommender/internal/models"
	"github.com/adapta/recommender/internal/vecmath"
)

// ErrNoActiveContext indicates the user has no active, non-archived
// context records. Callers should fall back to a non-personalized
// default rather than treat this as fatal.
var ErrNoActiveContext = errors.New("no active context for user")

// Embedder converts text into fixed-dimension vectors
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float64, error)
	HealthCheck(ctx context.Context) models.HealthStatus
	Dimension() int
}

// Combiner turns context records into embeddings and fuses them into one
// query vector per the weight and priority policy
type Combiner struct {
	embedder Embedder
	cache    *embedding.Cache
}

// NewCombiner creates a Combiner backed by the given embedder and cache
func NewCombiner(embedder Embedder, cache *embedding.Cache) *Combiner {
	return &Combiner{embedder: embedder, cache: cache}
}

// ContextVector returns the embedding for one context record. A stored
// embedding is reused; otherwise the canonical text is embedded through
// the cache. Empty canonical text yields a zero vector.
func (cb *Combiner) ContextVector(ctx context.Context, rec *models.ContextRecord) ([]float64, error) {
	if len(rec.Embedding) > 0 {
		return rec.Embedding, nil
	}

	text := rec.EmbeddingText()
	if strings.TrimSpace(text) == "" {
		return vecmath.Zero(cb.embedder.Dimension()), nil
	}

	return cb.cache.GetOrCompute(ctx, text, cb.embedder.EmbedOne)
}

// ProductVector returns the embedding for a candidate product, reusing a
// stored vector or embedding the canonical text through the cache
func (cb *Combiner) ProductVector(ctx context.Context, p *models.Product) ([]float64, error) {
	if p.HasEmbedding() {
		return p.Embedding, nil
	}

	text := p.EmbeddingText()
	if strings.TrimSpace(text) == "" {
		return vecmath.Zero(cb.embedder.Dimension()), nil
	}

	return cb.cache.GetOrCompute(ctx, text, cb.embedder.EmbedOne)
}

// CombinedQueryVector fuses the user's active contexts into one query
// vector. Only the highest priority tier present participates; within
// that tier each context contributes proportionally to its weight.
func (cb *Combiner) CombinedQueryVector(ctx context.Context, userID string, contexts []models.ContextRecord) ([]float64, error) {
	var eligible []models.ContextRecord
	for _, rec := range contexts {
		if rec.UserID == userID && rec.Active && !rec.Archived {
			eligible = append(eligible, rec)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveContext, userID)
	}

	tier := selectTopTier(eligible)

	vectors := make([][]float64, len(tier))
	weights := make([]float64, len(tier))
	for i := range tier {
		vec, err := cb.ContextVector(ctx, &tier[i])
		if err != nil {
			return nil, fmt.Errorf("embedding context %s: %w", tier[i].ID, err)
		}
		vectors[i] = vec
		weights[i] = float64(tier[i].Weight)
	}

	combined, err := vecmath.WeightedAverage(vectors, weights)
	if err != nil {
		return nil, fmt.Errorf("combining context vectors: %w", err)
	}
	return combined, nil
}

// selectTopTier keeps only the records sharing the highest priority
// value present. This is the single place the tiering policy lives so a
// continuous weight-priority blend could replace it without touching
// caching or ranking.
func selectTopTier(contexts []models.ContextRecord) []models.ContextRecord {
	top := contexts[0].Priority
	for _, rec := range contexts[1:] {
		if rec.Priority > top {
			top = rec.Priority
		}
	}

	var tier []models.ContextRecord
	for _, rec := range contexts {
		if rec.Priority == top {
			tier = append(tier, rec)
		}
	}
	return tier
}
