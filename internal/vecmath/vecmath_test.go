// ABOUTME: Unit tests for vector math utilities
// ABOUTME: Tests cosine similarity edge cases and weighted averaging contracts
package vecmath

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-6

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float64{1.0, 0.0, 0.0},
			b:        []float64{1.0, 0.0, 0.0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float64{1.0, 0.0, 0.0},
			b:        []float64{0.0, 1.0, 0.0},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float64{1.0, 0.0, 0.0},
			b:        []float64{-1.0, 0.0, 0.0},
			expected: -1.0,
		},
		{
			name:     "similar vectors",
			a:        []float64{1.0, 0.0, 0.0},
			b:        []float64{0.9, 0.1, 0.0},
			expected: 0.9 / math.Sqrt(0.82),
		},
		{
			name:     "zero vector left",
			a:        []float64{0.0, 0.0, 0.0},
			b:        []float64{1.0, 2.0, 3.0},
			expected: 0.0,
		},
		{
			name:     "zero vector right",
			a:        []float64{1.0, 2.0, 3.0},
			b:        []float64{0.0, 0.0, 0.0},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineSimilarity() error = %v", err)
			}
			if math.Abs(result-tt.expected) > tolerance {
				t.Errorf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float64{0.3, -0.7, 0.2, 0.5}
	b := []float64{-0.1, 0.4, 0.9, -0.2}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity(a, b) error = %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("CosineSimilarity(b, a) error = %v", err)
	}

	if math.Abs(ab-ba) > tolerance {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}

	aa, err := CosineSimilarity(a, a)
	if err != nil {
		t.Fatalf("CosineSimilarity(a, a) error = %v", err)
	}
	if math.Abs(aa-1.0) > tolerance {
		t.Errorf("self-similarity = %v, want ~1.0", aa)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1.0, 2.0}, []float64{1.0, 2.0, 3.0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name     string
		vectors  [][]float64
		weights  []float64
		expected []float64
	}{
		{
			name:     "single vector",
			vectors:  [][]float64{{1.0, 2.0, 3.0}},
			weights:  nil,
			expected: []float64{1.0, 2.0, 3.0},
		},
		{
			name:     "unweighted mean",
			vectors:  [][]float64{{1.0, 0.0}, {0.0, 1.0}},
			weights:  nil,
			expected: []float64{0.5, 0.5},
		},
		{
			name:     "weighted mean",
			vectors:  [][]float64{{1.0, 0.0}, {0.0, 1.0}},
			weights:  []float64{3.0, 1.0},
			expected: []float64{0.75, 0.25},
		},
		{
			name:     "weights need not sum to one",
			vectors:  [][]float64{{2.0, 4.0}, {4.0, 8.0}},
			weights:  []float64{10.0, 10.0},
			expected: []float64{3.0, 6.0},
		},
		{
			name:     "single vector weight one",
			vectors:  [][]float64{{0.2, -0.4, 0.6}},
			weights:  []float64{1.0},
			expected: []float64{0.2, -0.4, 0.6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := WeightedAverage(tt.vectors, tt.weights)
			if err != nil {
				t.Fatalf("WeightedAverage() error = %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("result dimension = %d, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if math.Abs(result[i]-tt.expected[i]) > tolerance {
					t.Errorf("component %d = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestWeightedAverage_UniformWeightsMatchMean(t *testing.T) {
	vectors := [][]float64{
		{0.1, 0.9, -0.3},
		{0.5, -0.2, 0.7},
		{-0.6, 0.4, 0.2},
	}

	mean, err := WeightedAverage(vectors, nil)
	if err != nil {
		t.Fatalf("unweighted mean error = %v", err)
	}
	uniform, err := WeightedAverage(vectors, []float64{2.0, 2.0, 2.0})
	if err != nil {
		t.Fatalf("uniform weights error = %v", err)
	}

	for i := range mean {
		if math.Abs(mean[i]-uniform[i]) > tolerance {
			t.Errorf("component %d: mean %v != uniform %v", i, mean[i], uniform[i])
		}
	}
}

func TestWeightedAverage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		weights []float64
		wantErr error
	}{
		{
			name:    "empty input",
			vectors: nil,
			weights: nil,
			wantErr: ErrEmptyInput,
		},
		{
			name:    "weight count mismatch",
			vectors: [][]float64{{1.0}, {2.0}},
			weights: []float64{1.0},
			wantErr: ErrWeightCountMismatch,
		},
		{
			name:    "ragged vectors",
			vectors: [][]float64{{1.0, 2.0}, {1.0}},
			weights: nil,
			wantErr: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedAverage(tt.vectors, tt.weights)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestZero(t *testing.T) {
	v := Zero(4)
	if len(v) != 4 {
		t.Fatalf("Zero(4) length = %d", len(v))
	}
	for i, c := range v {
		if c != 0 {
			t.Errorf("component %d = %v, want 0", i, c)
		}
	}
}
