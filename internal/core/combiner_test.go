// ABOUTME: Unit tests for the context combiner
// ABOUTME: Tests owner/active/archive filtering, priority tiering, and weight averaging
package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/adapta/recommender/internal/embedding"
	"github.com/adapta/recommender/internal/models"
)

const tolerance = 1e-6

// fakeEmbedder returns canned vectors keyed by text without any provider call
type fakeEmbedder struct {
	dimension int
	vectors   map[string][]float64
	calls     int
	err       error
	healthErr error
}

func (f *fakeEmbedder) EmbedOne(ctx context.Context, text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	vec := make([]float64, f.dimension)
	vec[0] = 1.0
	return vec, nil
}

func (f *fakeEmbedder) HealthCheck(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{Model: "fake-model", Dimension: f.dimension}
	if f.healthErr != nil {
		status.Status = models.StatusUnhealthy
		status.Error = f.healthErr.Error()
		return status
	}
	status.Status = models.StatusHealthy
	return status
}

func (f *fakeEmbedder) Dimension() int {
	return f.dimension
}

func newTestCombiner(t *testing.T, embedder Embedder) *Combiner {
	t.Helper()
	cache, err := embedding.NewCache(16)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	return NewCombiner(embedder, cache)
}

func activeContext(userID string, weight, priority int, vec []float64) models.ContextRecord {
	return models.ContextRecord{
		UserID:    userID,
		Kind:      models.KindConversation,
		Embedding: vec,
		Weight:    weight,
		Priority:  priority,
		Active:    true,
	}
}

func assertVectorsEqual(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dimension = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCombinedQueryVector_SingleContext(t *testing.T) {
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 3})

	vec := []float64{0.2, -0.4, 0.6}
	contexts := []models.ContextRecord{activeContext("user-1", 1, 0, vec)}

	combined, err := cb.CombinedQueryVector(context.Background(), "user-1", contexts)
	if err != nil {
		t.Fatalf("CombinedQueryVector() error = %v", err)
	}
	assertVectorsEqual(t, combined, vec)
}

func TestCombinedQueryVector_WeightsWithinTier(t *testing.T) {
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 2})

	onboarding := activeContext("user-1", 5, 2, []float64{1.0, 0.0})
	onboarding.Kind = models.KindOnboarding
	conversation := activeContext("user-1", 1, 2, []float64{0.0, 1.0})

	combined, err := cb.CombinedQueryVector(context.Background(), "user-1",
		[]models.ContextRecord{onboarding, conversation})
	if err != nil {
		t.Fatalf("CombinedQueryVector() error = %v", err)
	}

	// Same tier: weighted average with weights [5, 1].
	assertVectorsEqual(t, combined, []float64{5.0 / 6.0, 1.0 / 6.0})
}

func TestCombinedQueryVector_HigherTierDominates(t *testing.T) {
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 2})

	onboarding := activeContext("user-1", 5, 2, []float64{1.0, 0.0})
	conversation := activeContext("user-1", 1, 2, []float64{0.0, 1.0})
	urgent := activeContext("user-1", 1, 5, []float64{0.5, 0.5})

	combined, err := cb.CombinedQueryVector(context.Background(), "user-1",
		[]models.ContextRecord{onboarding, conversation, urgent})
	if err != nil {
		t.Fatalf("CombinedQueryVector() error = %v", err)
	}

	// Priority 5 outranks priority 2: only the urgent context counts.
	assertVectorsEqual(t, combined, []float64{0.5, 0.5})
}

func TestCombinedQueryVector_Filtering(t *testing.T) {
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 2})

	mine := activeContext("user-1", 1, 0, []float64{1.0, 0.0})

	other := activeContext("user-2", 1, 0, []float64{0.0, 1.0})

	inactive := activeContext("user-1", 1, 0, []float64{0.0, 1.0})
	inactive.Active = false

	// Archived wins over the activation flag.
	archived := activeContext("user-1", 1, 0, []float64{0.0, 1.0})
	archived.Archived = true

	combined, err := cb.CombinedQueryVector(context.Background(), "user-1",
		[]models.ContextRecord{mine, other, inactive, archived})
	if err != nil {
		t.Fatalf("CombinedQueryVector() error = %v", err)
	}
	assertVectorsEqual(t, combined, []float64{1.0, 0.0})
}

func TestCombinedQueryVector_NoActiveContext(t *testing.T) {
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 2})

	archived := activeContext("user-1", 1, 0, []float64{1.0, 0.0})
	archived.Archived = true

	_, err := cb.CombinedQueryVector(context.Background(), "user-1",
		[]models.ContextRecord{archived})
	if !errors.Is(err, ErrNoActiveContext) {
		t.Errorf("error = %v, want ErrNoActiveContext", err)
	}

	_, err = cb.CombinedQueryVector(context.Background(), "user-1", nil)
	if !errors.Is(err, ErrNoActiveContext) {
		t.Errorf("error = %v, want ErrNoActiveContext", err)
	}
}

func TestContextVector_UsesStoredEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 2}
	cb := newTestCombiner(t, embedder)

	rec := activeContext("user-1", 1, 0, []float64{0.3, 0.7})
	vec, err := cb.ContextVector(context.Background(), &rec)
	if err != nil {
		t.Fatalf("ContextVector() error = %v", err)
	}
	assertVectorsEqual(t, vec, []float64{0.3, 0.7})

	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for a stored embedding, want 0", embedder.calls)
	}
}

func TestContextVector_ComputesAndCaches(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 2}
	cb := newTestCombiner(t, embedder)

	rec := models.ContextRecord{
		UserID:  "user-1",
		Kind:    models.KindOnboarding,
		Name:    "Preferences intake",
		Summary: "Prefers open source tooling",
		Weight:  3,
		Active:  true,
	}

	first, err := cb.ContextVector(context.Background(), &rec)
	if err != nil {
		t.Fatalf("first ContextVector() error = %v", err)
	}
	second, err := cb.ContextVector(context.Background(), &rec)
	if err != nil {
		t.Fatalf("second ContextVector() error = %v", err)
	}

	assertVectorsEqual(t, first, second)
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times for identical canonical text, want 1", embedder.calls)
	}
}

func TestContextVector_EmbedderErrorSurfaces(t *testing.T) {
	embedErr := errors.New("provider down")
	cb := newTestCombiner(t, &fakeEmbedder{dimension: 2, err: embedErr})

	rec := models.ContextRecord{
		UserID: "user-1",
		Kind:   models.KindConversation,
		Name:   "Chat",
		Active: true,
	}

	_, err := cb.ContextVector(context.Background(), &rec)
	if !errors.Is(err, embedErr) {
		t.Errorf("error = %v, want wrapped %v", err, embedErr)
	}
}

func TestSelectTopTier(t *testing.T) {
	low := activeContext("u", 1, 1, nil)
	mid1 := activeContext("u", 2, 4, nil)
	mid2 := activeContext("u", 3, 4, nil)

	tier := selectTopTier([]models.ContextRecord{low, mid1, mid2})
	if len(tier) != 2 {
		t.Fatalf("tier size = %d, want 2", len(tier))
	}
	for _, rec := range tier {
		if rec.Priority != 4 {
			t.Errorf("tier contains priority %d, want 4", rec.Priority)
		}
	}
}
