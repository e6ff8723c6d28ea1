// ABOUTME: CLI command to show embedding cache statistics
// ABOUTME: Reports cache size, capacity, and hit rate for observability
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adapta/recommender/internal/config"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show embedding cache statistics",
		Long: `Show occupancy and hit rate of the embedding cache. The hit rate
covers the current process only; it is not persisted.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := buildEngine(cfg, store)
	if err != nil {
		return err
	}

	stats := engine.CacheStats()

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), stats)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Size:     %d\n", stats.Size)
	fmt.Fprintf(cmd.OutOrStdout(), "Capacity: %d\n", stats.Capacity)
	fmt.Fprintf(cmd.OutOrStdout(), "Hit rate: %.2f%%\n", stats.HitRate*100)
	return nil
}
