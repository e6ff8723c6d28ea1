// ABOUTME: Vector math utilities for embedding similarity and combination
// ABOUTME: Provides cosine similarity and weighted averaging with strict dimension checks
package vecmath

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch indicates vectors of unequal dimension were compared
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrWeightCountMismatch indicates the weight count differs from the vector count
	ErrWeightCountMismatch = errors.New("weight count mismatch")
	// ErrEmptyInput indicates an operation received zero vectors
	ErrEmptyInput = errors.New("empty vector input")
)

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1].
// A zero-magnitude vector carries no signal, so similarity against one is
// defined as 0.0 rather than an error.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// WeightedAverage combines vectors into their weighted component-wise mean.
// Nil weights means an unweighted mean. Weights need not sum to 1; the
// result is sum(w_i * v_i) / sum(w_i).
func WeightedAverage(vectors [][]float64, weights []float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyInput
	}
	if weights != nil && len(weights) != len(vectors) {
		return nil, fmt.Errorf("%w: %d weights for %d vectors", ErrWeightCountMismatch, len(weights), len(vectors))
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d components, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}

	var totalWeight float64
	combined := make([]float64, dim)
	for i, v := range vectors {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		totalWeight += w
		for j := range v {
			combined[j] += w * v[j]
		}
	}

	if totalWeight != 0 {
		for j := range combined {
			combined[j] /= totalWeight
		}
	}

	return combined, nil
}

// Zero returns a zero vector of the given dimension
func Zero(dim int) []float64 {
	return make([]float64, dim)
}
