// ABOUTME: CLI command to probe embedding provider health
// ABOUTME: Issues a cheap embedding request and reports model, dimension, and status
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adapta/recommender/internal/config"
	"github.com/adapta/recommender/internal/models"
)

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check embedding provider health",
		Long: `Probe the embedding provider with a cheap request and report the
configured model and dimension. Intended for liveness checks.`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	status := engine.EmbeddingHealth(ctx)

	if outputFormat == "json" {
		if err := printJSON(cmd.OutOrStdout(), status); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Status:    %s\n", status.Status)
		fmt.Fprintf(cmd.OutOrStdout(), "Model:     %s\n", status.Model)
		fmt.Fprintf(cmd.OutOrStdout(), "Dimension: %d\n", status.Dimension)
		if status.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Error:     %s\n", status.Error)
		}
	}

	if status.Status != models.StatusHealthy {
		return fmt.Errorf("embedding provider unhealthy")
	}
	return nil
}
