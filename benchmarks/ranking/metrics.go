// ABOUTME: Retrieval quality metrics for recommendation benchmarks
// ABOUTME: Deterministic precision, recall, and MRR against ground truth IDs

package ranking

// MetricsCalculator computes retrieval quality scores for benchmark scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// PrecisionAtK computes the fraction of the top k ranked IDs that are relevant
func (m *MetricsCalculator) PrecisionAtK(ranked []string, relevant []string, k int) float64 {
	if k <= 0 {
		return 0.0
	}
	if len(ranked) < k {
		k = len(ranked)
	}
	if k == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	hits := 0
	for _, id := range ranked[:k] {
		if relevantSet[id] {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAtK computes the fraction of relevant IDs found in the top k
func (m *MetricsCalculator) RecallAtK(ranked []string, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}
	if len(ranked) < k {
		k = len(ranked)
	}

	relevantSet := toSet(relevant)
	hits := 0
	for _, id := range ranked[:k] {
		if relevantSet[id] {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// MeanReciprocalRank returns 1/rank of the first relevant ID, or 0.0 if
// no relevant ID appears in the ranking
func (m *MetricsCalculator) MeanReciprocalRank(ranked []string, relevant []string) float64 {
	relevantSet := toSet(relevant)
	for i, id := range ranked {
		if relevantSet[id] {
			return 1.0 / float64(i+1)
		}
	}
	return 0.0
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
