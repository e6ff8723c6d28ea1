// ABOUTME: Benchmark runner - seeds scenarios into isolated stores and scores rankings
// ABOUTME: Runs fully offline; scenarios carry precomputed embeddings

package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adapta/recommender/internal/core"
	"github.com/adapta/recommender/internal/embedding"
	"github.com/adapta/recommender/internal/models"
	"github.com/adapta/recommender/internal/storage"
)

// Result holds the scores for one executed scenario
type Result struct {
	ScenarioID string  `json:"scenario_id"`
	Name       string  `json:"name"`
	Precision  float64 `json:"precision_at_k"`
	Recall     float64 `json:"recall_at_k"`
	MRR        float64 `json:"mrr"`
	Passed     bool    `json:"passed"`
	Error      string  `json:"error,omitempty"`
}

// Runner executes benchmark scenarios against the real engine stack
type Runner struct {
	metrics *MetricsCalculator
	out     io.Writer
	verbose bool
}

// NewRunner creates a benchmark runner writing progress to out
func NewRunner(out io.Writer, verbose bool) *Runner {
	return &Runner{
		metrics: NewMetricsCalculator(),
		out:     out,
		verbose: verbose,
	}
}

// RunScenario seeds the scenario into a fresh store, asks the engine for
// recommendations, and scores the ranking against the relevant set
func (r *Runner) RunScenario(ctx context.Context, scenario Scenario) Result {
	result := Result{ScenarioID: scenario.ID, Name: scenario.Name}

	if r.verbose {
		fmt.Fprintf(r.out, "RUNNING %s: %s\n", scenario.ID, scenario.Description)
	}

	tmpDir, err := os.MkdirTemp("", "recommender-bench-"+scenario.ID)
	if err != nil {
		result.Error = fmt.Sprintf("creating temp dir: %v", err)
		return result
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	store, err := storage.Open(filepath.Join(tmpDir, "bench.db"))
	if err != nil {
		result.Error = fmt.Sprintf("opening store: %v", err)
		return result
	}
	defer func() { _ = store.Close() }()

	dim := scenarioDimension(scenario)
	for i := range scenario.Contexts {
		if err := store.SaveContext(ctx, &scenario.Contexts[i]); err != nil {
			result.Error = fmt.Sprintf("seeding context: %v", err)
			return result
		}
	}
	for i := range scenario.Products {
		if err := store.SaveProduct(ctx, &scenario.Products[i]); err != nil {
			result.Error = fmt.Sprintf("seeding product: %v", err)
			return result
		}
	}

	cache, err := embedding.NewCache(embedding.DefaultCacheSize)
	if err != nil {
		result.Error = fmt.Sprintf("creating cache: %v", err)
		return result
	}
	engine := core.NewEngine(store, &staticEmbedder{dimension: dim}, cache)

	candidates, err := store.ListAvailableProducts(ctx)
	if err != nil {
		result.Error = fmt.Sprintf("loading candidates: %v", err)
		return result
	}

	results, err := engine.Recommend(ctx, scenario.UserID, candidates, scenario.K)
	if err != nil {
		result.Error = fmt.Sprintf("recommend: %v", err)
		return result
	}

	ranked := make([]string, len(results))
	for i, res := range results {
		ranked[i] = res.ProductID
	}

	result.Precision = r.metrics.PrecisionAtK(ranked, scenario.Relevant, scenario.K)
	result.Recall = r.metrics.RecallAtK(ranked, scenario.Relevant, scenario.K)
	result.MRR = r.metrics.MeanReciprocalRank(ranked, scenario.Relevant)
	result.Passed = result.Precision == 1.0 && result.Recall == 1.0

	if r.verbose {
		fmt.Fprintf(r.out, "  precision=%.2f recall=%.2f mrr=%.2f passed=%v\n",
			result.Precision, result.Recall, result.MRR, result.Passed)
	}
	return result
}

// RunAll executes every scenario and prints a summary line per scenario
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	passed := 0
	for _, scenario := range scenarios {
		result := r.RunScenario(ctx, scenario)
		results = append(results, result)
		status := "FAIL"
		if result.Passed {
			status = "PASS"
			passed++
		}
		fmt.Fprintf(r.out, "%s  %-20s  P@k=%.2f R@k=%.2f MRR=%.2f\n",
			status, result.ScenarioID, result.Precision, result.Recall, result.MRR)
	}
	fmt.Fprintf(r.out, "\n%d/%d scenarios passed\n", passed, len(scenarios))
	return results
}

// ExportResults writes the results as indented JSON to the given path
func (r *Runner) ExportResults(results []Result, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

func scenarioDimension(scenario Scenario) int {
	for _, rec := range scenario.Contexts {
		if len(rec.Embedding) > 0 {
			return len(rec.Embedding)
		}
	}
	return embedding.DefaultDimension
}

// staticEmbedder satisfies core.Embedder for offline benchmarks. Every
// scenario record carries a precomputed embedding, so a call reaching the
// provider indicates a seeding bug.
type staticEmbedder struct {
	dimension int
}

func (s *staticEmbedder) EmbedOne(ctx context.Context, text string) ([]float64, error) {
	return nil, errors.New("benchmark scenarios must precompute embeddings")
}

func (s *staticEmbedder) HealthCheck(ctx context.Context) models.HealthStatus {
	return models.HealthStatus{Status: models.StatusHealthy, Dimension: s.dimension}
}

func (s *staticEmbedder) Dimension() int {
	return s.dimension
}
