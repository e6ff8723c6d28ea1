// ABOUTME: Bounded LRU cache for text embeddings keyed by content fingerprint
// ABOUTME: Deduplicates concurrent computations per fingerprint via singleflight
package embedding

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/adapta/recommender/internal/models"
)

// DefaultCacheSize is the default maximum number of cached embeddings
const DefaultCacheSize = 1024

// ComputeFunc produces an embedding for a text on cache miss
type ComputeFunc func(ctx context.Context, text string) ([]float64, error)

// Cache memoizes text-to-vector mappings so repeated text never triggers
// a redundant provider call. Cached vectors are treated as immutable;
// callers must not modify returned slices.
type Cache struct {
	store    *lru.Cache[string, []float64]
	group    singleflight.Group
	capacity int

	hits    atomic.Uint64
	lookups atomic.Uint64
}

// NewCache creates a cache bounded to capacity entries with LRU eviction
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	store, err := lru.New[string, []float64](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating LRU store: %w", err)
	}
	return &Cache{store: store, capacity: capacity}, nil
}

// Fingerprint derives the cache key from canonicalized text. Whitespace
// runs collapse to a single space so formatting differences still hit.
func Fingerprint(text string) string {
	canonical := strings.Join(strings.Fields(text), " ")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(canonical)))
}

// GetOrCompute returns the cached vector for text, computing and storing
// it on miss. Concurrent callers missing on the same fingerprint share a
// single compute invocation and receive the same vector. A failed or
// abandoned compute stores nothing.
func (c *Cache) GetOrCompute(ctx context.Context, text string, compute ComputeFunc) ([]float64, error) {
	fp := Fingerprint(text)
	c.lookups.Add(1)

	if vec, ok := c.store.Get(fp); ok {
		c.hits.Add(1)
		return vec, nil
	}

	result, err, _ := c.group.Do(fp, func() (any, error) {
		// Another caller may have filled the entry while this one
		// waited on the flight group.
		if vec, ok := c.store.Get(fp); ok {
			return vec, nil
		}
		vec, err := compute(ctx, text)
		if err != nil {
			return nil, err
		}
		c.store.Add(fp, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]float64), nil
}

// Stats reports cache occupancy and the hit rate since process start
func (c *Cache) Stats() models.CacheStats {
	lookups := c.lookups.Load()
	hits := c.hits.Load()

	var hitRate float64
	if lookups > 0 {
		hitRate = float64(hits) / float64(lookups)
	}

	return models.CacheStats{
		Size:     c.store.Len(),
		Capacity: c.capacity,
		HitRate:  hitRate,
	}
}
