// ABOUTME: CLI commands to manage user context records
// ABOUTME: Handles add with lazy embedding computation, list, and soft archiving
package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adapta/recommender/internal/config"
	"github.com/adapta/recommender/internal/models"
)

var (
	contextUser     string
	contextSession  string
	contextKind     string
	contextName     string
	contextSummary  string
	contextData     []string
	contextWeight   int
	contextPriority int
)

// NewContextCmd creates the context command group
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage user context records",
		Long: `Manage the context records that personalize recommendations.

Each record carries a weight (1-10, importance within a priority tier)
and a priority (0-10, higher tiers dominate). Records are archived, not
deleted.`,
	}

	cmd.AddCommand(newContextAddCmd(), newContextListCmd(), newContextArchiveCmd())
	return cmd
}

func newContextAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a context record",
		Long: `Add a context record for a user and compute its embedding.

Examples:
  recommender context add --user u1 --kind onboarding --name "Intake" \
    --summary "Prefers self-hosted tools" --data preferences="open source"
  recommender context add --user u1 --kind conversation --summary "Asked about pricing" \
    --weight 3 --priority 2`,
		Args: cobra.NoArgs,
		RunE: runContextAdd,
	}

	cmd.Flags().StringVar(&contextUser, "user", "", "Owning user ID (required)")
	cmd.Flags().StringVar(&contextSession, "session", "", "Session ID")
	cmd.Flags().StringVar(&contextKind, "kind", string(models.KindConversation),
		"Context kind: onboarding, conversation, product_search, recommendation")
	cmd.Flags().StringVar(&contextName, "name", "", "Context name/title")
	cmd.Flags().StringVar(&contextSummary, "summary", "", "Human-readable summary")
	cmd.Flags().StringArrayVar(&contextData, "data", nil, "Structured data entry key=value (repeatable)")
	cmd.Flags().IntVar(&contextWeight, "weight", 1, "Weight 1-10 within a priority tier")
	cmd.Flags().IntVar(&contextPriority, "priority", 0, "Priority tier 0-10")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runContextAdd(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := parseDataFlags(contextData)
	if err != nil {
		return err
	}

	rec := &models.ContextRecord{
		UserID:    contextUser,
		SessionID: contextSession,
		Kind:      models.ContextKind(contextKind),
		Name:      contextName,
		Summary:   contextSummary,
		Data:      data,
		Weight:    contextWeight,
		Priority:  contextPriority,
		Active:    true,
	}
	rec.Touch()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveContext(cmd.Context(), rec); err != nil {
		return fmt.Errorf("saving context: %w", err)
	}

	// Compute the embedding now so recommend does not have to. Without
	// an API key the record stays unembedded and is embedded lazily.
	if cfg.OpenAIKey != "" {
		engine, err := buildEngine(cfg, store)
		if err != nil {
			return err
		}
		vector, err := engine.Combiner().ContextVector(cmd.Context(), rec)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: could not compute embedding: %v\n", err)
			}
		} else if err := store.SaveContextEmbedding(cmd.Context(), rec.ID, vector); err != nil {
			return fmt.Errorf("persisting embedding: %w", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set - embedding deferred")
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added context %s for user %s\n", rec.ID, rec.UserID)
	}
	return nil
}

func newContextListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's context records",
		Long: `List the non-archived context records for a user.

Examples:
  recommender context list --user u1
  recommender context list --user u1 --format json`,
		Args: cobra.NoArgs,
		RunE: runContextList,
	}

	cmd.Flags().StringVar(&contextUser, "user", "", "Owning user ID (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runContextList(cmd *cobra.Command, args []string) error {
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

	records, err := store.ListContexts(cmd.Context(), contextUser)
	if err != nil {
		return fmt.Errorf("listing contexts: %w", err)
	}

	if len(records) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No contexts found for user: %s\n", contextUser)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), records)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tKIND\tWEIGHT\tPRIORITY\tACTIVE\tEMBEDDED\tSUMMARY\n")
	for _, rec := range records {
		embedded := "no"
		if len(rec.Embedding) > 0 {
			embedded = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\t%s\n",
			truncate(rec.ID, 12), rec.Kind, rec.Weight, rec.Priority,
			rec.Active, embedded, truncate(rec.Summary, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d context(s)\n", len(records))
	}
	return nil
}

func newContextArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <context-id>",
		Short: "Archive a context record",
		Long: `Soft-delete a context record so it no longer influences
recommendations. Archived records are retained in storage.`,
		Args: cobra.ExactArgs(1),
		RunE: runContextArchive,
	}
}

func runContextArchive(cmd *cobra.Command, args []string) error {
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

	if err := store.ArchiveContext(cmd.Context(), args[0]); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Archived context %s\n", args[0])
	}
	return nil
}
