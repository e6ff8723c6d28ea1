// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines output formatting and database location options shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommender",
		Short: "Context-weighted semantic product recommendations",
		Long: `Recommender ranks candidate products for a user by fusing the user's
stored context (onboarding data, conversations, searches) into a single
query embedding and scoring candidates by cosine similarity.

Context records carry a weight (importance within a priority tier) and a
priority (higher tiers dominate lower ones). Embeddings are computed via
OpenAI and cached so repeated text never costs a second provider call.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (defaults to XDG data dir)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewContextCmd(),
		NewProductCmd(),
		NewRecommendCmd(),
		NewHealthCmd(),
		NewStatsCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
