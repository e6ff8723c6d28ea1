// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates storage/engine wiring and formatting helpers
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adapta/recommender/internal/config"
	"github.com/adapta/recommender/internal/core"
	"github.com/adapta/recommender/internal/embedding"
	"github.com/adapta/recommender/internal/storage"
)

// resolveDBPath picks the database path from flag, config, or default
func resolveDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return storage.DefaultDBPath()
}

// openStore opens the SQLite store at the configured path
func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// buildEngine wires the embedding client, cache, and store into an engine
func buildEngine(cfg *config.Config, store *storage.Store) (*core.Engine, error) {
	client, err := embedding.NewClient(embedding.ClientConfig{
		APIKey:    cfg.OpenAIKey,
		Model:     openai.EmbeddingModel(cfg.EmbeddingModel),
		Dimension: cfg.VectorDimension,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing embedding client: %w", err)
	}

	cache, err := embedding.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding cache: %w", err)
	}

	return core.NewEngine(store, client, cache), nil
}

// isTransient reports whether an error is worth retrying
func isTransient(err error) bool {
	return errors.Is(err, embedding.ErrProviderUnavailable)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", data)
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// parseDataFlags converts repeated key=value flags into a data map
func parseDataFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	data := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid data entry %q, expected key=value", pair)
		}
		data[key] = value
	}
	return data, nil
}
