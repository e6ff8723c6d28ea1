// ABOUTME: CLI command to produce ranked recommendations for a user
// ABOUTME: Composes context loading, query combination, and similarity ranking
package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adapta/recommender/internal/config"
	"github.com/adapta/recommender/internal/core"
	"github.com/adapta/recommender/internal/models"
	"github.com/adapta/recommender/internal/util"
)

var recommendTopK int

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <user-id>",
		Short: "Recommend products for a user",
		Long: `Rank available products for a user by semantic similarity to the
user's combined context vector.

Only the user's highest-priority context tier participates in the query;
weight distinguishes importance within that tier. Users without active
context get a non-personalized product listing instead.

Examples:
  recommender recommend u1
  recommender recommend --top 10 u1
  recommender recommend --format json u1`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVar(&recommendTopK, "top", 0, "Maximum results to return (default from config)")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	topK := recommendTopK
	if topK == 0 {
		topK = cfg.DefaultTopK
	}
	if err := validatePositiveInt(topK, "top"); err != nil {
		return err
	}

	userID := args[0]

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := buildEngine(cfg, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	candidates, err := store.ListAvailableProducts(ctx)
	if err != nil {
		return fmt.Errorf("loading candidate pool: %w", err)
	}

	// Provider hiccups get retried here with backoff; the engine itself
	// never retries.
	var results []models.SimilarityResult
	err = util.Retry(ctx, cfg.MaxRetries, cfg.RetryDelay, isTransient, func() error {
		var rerr error
		results, rerr = engine.Recommend(ctx, userID, candidates, topK)
		return rerr
	})
	if errors.Is(err, core.ErrNoActiveContext) {
		return printUnpersonalized(cmd, userID, candidates, topK)
	}
	if err != nil {
		return fmt.Errorf("recommending for %s: %w", userID, err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No rankable products (candidate pool has no embeddings)")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tPRODUCT\tCATEGORY\tSUMMARY\n")
	for _, result := range results {
		name, _ := result.Metadata["name"].(string)
		category, _ := result.Metadata["category"].(string)
		summary, _ := result.Metadata["summary"].(string)
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			result.Score, truncate(name, 25), category, truncate(summary, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d recommendation(s) for %s\n", len(results), userID)
	}
	return nil
}

// printUnpersonalized is the fallback for users with no active context
func printUnpersonalized(cmd *cobra.Command, userID string, candidates []models.Product, topK int) error {
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "No active context for %s; showing products without personalization\n\n", userID)
	}

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), candidates)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PRODUCT\tCATEGORY\tDESCRIPTION\n")
	for _, p := range candidates {
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(p.Name, 25), p.Category, truncate(p.Description, 40))
	}
	w.Flush()
	return nil
}
