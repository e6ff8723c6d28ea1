// ABOUTME: Similarity ranker scoring candidate products against a query vector
// ABOUTME: Returns top-K by descending cosine similarity with deterministic tie-breaking
package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/adapta/recommender/internal/models"
	"github.com/adapta/recommender/internal/vecmath"
)

// ErrInvalidK indicates a non-positive result count was requested
var ErrInvalidK = errors.New("result count must be at least 1")

// Rank scores every candidate with an embedding against the query vector
// and returns at most k results, sorted by descending similarity. Ties
// break by ascending product ID so output order is reproducible.
// Candidates without an embedding are skipped, not scored as zero.
func Rank(query []float64, candidates []models.Product, k int) ([]models.SimilarityResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	results := make([]models.SimilarityResult, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.HasEmbedding() {
			continue
		}

		score, err := vecmath.CosineSimilarity(query, candidate.Embedding)
		if err != nil {
			return nil, fmt.Errorf("scoring product %s: %w", candidate.ID, err)
		}

		results = append(results, models.SimilarityResult{
			ProductID: candidate.ID,
			Score:     score,
			Metadata:  candidate.Metadata(),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ProductID < results[j].ProductID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}
