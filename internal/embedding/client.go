// ABOUTME: OpenAI embedding client wrapping text-embedding models
// ABOUTME: Converts text to fixed-dimension vectors with zero-vector policy for blank input
package embedding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adapta/recommender/internal/models"
	"github.com/adapta/recommender/internal/vecmath"
)

// DefaultModel is the default embedding model
const DefaultModel = openai.SmallEmbedding3

// DefaultDimension is the output dimension for the default model
const DefaultDimension = 1536

// ErrProviderUnavailable indicates the embedding provider call could not
// complete (network, auth, rate limit). Callers may retry; every other
// error from this package is deterministic and must not be retried.
var ErrProviderUnavailable = errors.New("embedding provider unavailable")

// ClientConfig holds configuration for the embedding client
type ClientConfig struct {
	APIKey    string
	Model     openai.EmbeddingModel
	Dimension int
}

// Client wraps the OpenAI embeddings API. It does not retry or time out
// on its own; retry and timeout policy belongs to the calling layer.
type Client struct {
	api       *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// NewClient creates an embedding client with the given configuration
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Dimension <= 0 {
		config.Dimension = DefaultDimension
	}

	return &Client{
		api:       openai.NewClient(config.APIKey),
		model:     config.Model,
		dimension: config.Dimension,
	}, nil
}

// Model returns the configured embedding model name
func (c *Client) Model() string {
	return string(c.model)
}

// Dimension returns the configured output dimension
func (c *Client) Dimension() int {
	return c.dimension
}

// EmbedOne generates an embedding vector for a single text. Blank text
// carries no semantic signal: it yields a zero vector without a provider
// call and logs a warning.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		log.Printf("Warning: empty text provided for embedding, returning zero vector")
		return vecmath.Zero(c.dimension), nil
	}

	vectors, err := c.createEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedMany generates embeddings for multiple texts in one batched
// provider call. Blank entries become zero vectors and are not sent to
// the provider; an empty input returns an empty list without any call.
func (c *Client) EmbedMany(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	results := make([][]float64, len(texts))
	var batch []string
	var batchIndex []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			results[i] = vecmath.Zero(c.dimension)
			continue
		}
		batch = append(batch, text)
		batchIndex = append(batchIndex, i)
	}

	if len(batch) == 0 {
		return results, nil
	}

	vectors, err := c.createEmbeddings(ctx, batch)
	if err != nil {
		return nil, err
	}
	for i, vec := range vectors {
		results[batchIndex[i]] = vec
	}
	return results, nil
}

// HealthCheck issues a cheap embedding request and reports provider
// status along with the configured model and dimension. Used by
// liveness probes; never affects ranking.
func (c *Client) HealthCheck(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{Model: c.Model(), Dimension: c.dimension}
	if _, err := c.createEmbeddings(ctx, []string{"health check"}); err != nil {
		status.Status = models.StatusUnhealthy
		status.Error = err.Error()
		return status
	}
	status.Status = models.StatusHealthy
	return status
}

// createEmbeddings issues the provider call and converts the response
func (c *Client) createEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input:      texts,
		Model:      c.model,
		Dimensions: c.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrProviderUnavailable, len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(resp.Data))
	for i, data := range resp.Data {
		if len(data.Embedding) != c.dimension {
			return nil, fmt.Errorf("%w: provider returned dimension %d, expected %d",
				vecmath.ErrDimensionMismatch, len(data.Embedding), c.dimension)
		}
		vectors[i] = toFloat64(data.Embedding)
	}
	return vectors, nil
}

// toFloat64 converts the provider's float32 vector to float64
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
