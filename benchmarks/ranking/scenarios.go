// ABOUTME: Built-in benchmark scenarios with synthetic embeddings
// ABOUTME: Each scenario seeds contexts and products and names the relevant products

package ranking

import (
	"github.com/adapta/recommender/internal/models"
)

// Scenario is one self-contained benchmark case. All embeddings are
// precomputed so no provider is needed to run it.
type Scenario struct {
	ID          string
	Name        string
	Description string
	UserID      string
	Contexts    []models.ContextRecord
	Products    []models.Product
	Relevant    []string
	K           int
}

// axis returns a dim-length unit vector pointing along the given axis
func axis(dim, i int) []float64 {
	v := make([]float64, dim)
	v[i] = 1.0
	return v
}

// blend returns the elementwise sum of a scaled by wa and b scaled by wb
func blend(a, b []float64, wa, wb float64) []float64 {
	v := make([]float64, len(a))
	for i := range a {
		v[i] = a[i]*wa + b[i]*wb
	}
	return v
}

// BuiltinScenarios returns the deterministic benchmark suite
func BuiltinScenarios() []Scenario {
	const dim = 4

	logistics := axis(dim, 0)
	gaming := axis(dim, 1)
	finance := axis(dim, 2)

	return []Scenario{
		{
			ID:          "single-context",
			Name:        "Single context recovers its own domain",
			Description: "One onboarding context pointing at logistics should rank the logistics product first",
			UserID:      "bench-u1",
			Contexts: []models.ContextRecord{
				benchContext("c1", "bench-u1", models.KindOnboarding, 5, 1, logistics),
			},
			Products: []models.Product{
				benchProduct("p-logistics", "Fleet Manager", "logistics", logistics),
				benchProduct("p-gaming", "Arcade Hub", "gaming", gaming),
				benchProduct("p-finance", "Ledger Pro", "finance", finance),
			},
			Relevant: []string{"p-logistics"},
			K:        1,
		},
		{
			ID:          "weight-blend",
			Name:        "Weights steer the blend within a tier",
			Description: "A heavily weighted logistics context plus a light gaming context should still favor logistics",
			UserID:      "bench-u2",
			Contexts: []models.ContextRecord{
				benchContext("c1", "bench-u2", models.KindOnboarding, 8, 1, logistics),
				benchContext("c2", "bench-u2", models.KindConversation, 2, 1, gaming),
			},
			Products: []models.Product{
				benchProduct("p-logistics", "Fleet Manager", "logistics", logistics),
				benchProduct("p-gaming", "Arcade Hub", "gaming", gaming),
				benchProduct("p-mixed", "Depot Quest", "mixed", blend(logistics, gaming, 0.5, 0.5)),
			},
			Relevant: []string{"p-logistics", "p-mixed"},
			K:        2,
		},
		{
			ID:          "tier-dominance",
			Name:        "Higher priority tier silences lower tiers",
			Description: "A high-priority finance search should override a heavy low-priority gaming preference",
			UserID:      "bench-u3",
			Contexts: []models.ContextRecord{
				benchContext("c1", "bench-u3", models.KindOnboarding, 10, 1, gaming),
				benchContext("c2", "bench-u3", models.KindProductSearch, 3, 5, finance),
			},
			Products: []models.Product{
				benchProduct("p-gaming", "Arcade Hub", "gaming", gaming),
				benchProduct("p-finance", "Ledger Pro", "finance", finance),
			},
			Relevant: []string{"p-finance"},
			K:        1,
		},
		{
			ID:          "unembedded-skipped",
			Name:        "Products without embeddings never rank",
			Description: "An unembedded product must not displace embedded candidates",
			UserID:      "bench-u4",
			Contexts: []models.ContextRecord{
				benchContext("c1", "bench-u4", models.KindOnboarding, 5, 1, finance),
			},
			Products: []models.Product{
				benchProduct("p-finance", "Ledger Pro", "finance", finance),
				benchProduct("p-blank", "Mystery Box", "unknown", nil),
			},
			Relevant: []string{"p-finance"},
			K:        2,
		},
	}
}

func benchContext(id, userID string, kind models.ContextKind, weight, priority int, vector []float64) models.ContextRecord {
	return models.ContextRecord{
		ID:        id + "-" + userID,
		UserID:    userID,
		Kind:      kind,
		Name:      id,
		Summary:   "benchmark context " + id,
		Embedding: vector,
		Weight:    weight,
		Priority:  priority,
		Active:    true,
	}
}

func benchProduct(id, name, category string, vector []float64) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Description: "benchmark product " + name,
		Category:    category,
		Embedding:   vector,
		Available:   true,
	}
}
