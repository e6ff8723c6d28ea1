// ABOUTME: CLI commands to manage candidate products
// ABOUTME: Handles add with embedding precomputation and listing the candidate pool
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
	productName        string
	productDescription string
	productCategory    string
	productSubcategory string
	productPlatform    string
	productFeatures    []string
	productTechStack   []string
	productUseCases    []string
	productAudience    string
	productKeywords    string
	productSummary     string
	productRating      float64
)

// NewProductCmd creates the product command group
func NewProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage candidate products",
		Long: `Manage the pool of products eligible for recommendation.

Products without an embedding are stored but excluded from ranking until
one is computed.`,
	}

	cmd.AddCommand(newProductAddCmd(), newProductListCmd())
	return cmd
}

func newProductAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a candidate product",
		Long: `Add a product to the candidate pool and precompute its embedding.

Examples:
  recommender product add --name "Fleet Manager" --category logistics \
    --description "Vehicle tracking platform" --features "GPS tracking,alerts"`,
		Args: cobra.NoArgs,
		RunE: runProductAdd,
	}

	cmd.Flags().StringVar(&productName, "name", "", "Product name (required)")
	cmd.Flags().StringVar(&productDescription, "description", "", "Product description")
	cmd.Flags().StringVar(&productCategory, "category", "", "Category")
	cmd.Flags().StringVar(&productSubcategory, "subcategory", "", "Subcategory")
	cmd.Flags().StringVar(&productPlatform, "platform", "", "Platform (Web, Mobile, Desktop, API)")
	cmd.Flags().StringSliceVar(&productFeatures, "features", nil, "Features (comma-separated)")
	cmd.Flags().StringSliceVar(&productTechStack, "tech-stack", nil, "Technologies used (comma-separated)")
	cmd.Flags().StringSliceVar(&productUseCases, "use-cases", nil, "Use cases (comma-separated)")
	cmd.Flags().StringVar(&productAudience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&productKeywords, "keywords", "", "Search keywords")
	cmd.Flags().StringVar(&productSummary, "summary", "", "Product summary")
	cmd.Flags().Float64Var(&productRating, "rating", 0, "Rating 0-5")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runProductAdd(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	product := &models.Product{
		Name:           productName,
		Description:    productDescription,
		Category:       productCategory,
		Subcategory:    productSubcategory,
		Platform:       productPlatform,
		Features:       productFeatures,
		TechStack:      productTechStack,
		UseCases:       productUseCases,
		TargetAudience: productAudience,
		Keywords:       productKeywords,
		Summary:        productSummary,
		Rating:         productRating,
		Available:      true,
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveProduct(cmd.Context(), product); err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	// Compute the embedding now so the product is rankable immediately.
	// Without an API key it stays unembedded and excluded from ranking.
	if cfg.OpenAIKey != "" {
		engine, err := buildEngine(cfg, store)
		if err != nil {
			return err
		}
		vector, err := engine.Combiner().ProductVector(cmd.Context(), product)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: could not compute embedding: %v\n", err)
			}
		} else if err := store.SaveProductEmbedding(cmd.Context(), product.ID, vector); err != nil {
			return fmt.Errorf("persisting embedding: %w", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set - product will be excluded from ranking")
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added product %s (%s)\n", product.Name, product.ID)
	}
	return nil
}

func newProductListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available products",
		Long:  `List the products currently eligible for recommendation.`,
		Args:  cobra.NoArgs,
		RunE:  runProductList,
	}
}

func runProductList(cmd *cobra.Command, args []string) error {
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

	products, err := store.ListAvailableProducts(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	if len(products) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No products found")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), products)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tCATEGORY\tEMBEDDED\tDESCRIPTION\n")
	for _, p := range products {
		embedded := "no"
		if p.HasEmbedding() {
			embedded = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(p.ID, 12), truncate(p.Name, 25), p.Category,
			embedded, truncate(p.Description, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d product(s)\n", len(products))
	}
	return nil
}
