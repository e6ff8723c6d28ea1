// ABOUTME: Result types produced by the recommendation engine
// ABOUTME: Defines SimilarityResult, CacheStats, and HealthStatus structures
package models

// SimilarityResult is one ranked candidate with its similarity score.
// Produced fresh per query; never persisted.
type SimilarityResult struct {
	ProductID string         `json:"product_id"`
	Score     float64        `json:"score"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// CacheStats reports embedding-cache occupancy and hit rate since process start
type CacheStats struct {
	Size     int     `json:"size"`
	Capacity int     `json:"capacity"`
	HitRate  float64 `json:"hit_rate"`
}

// HealthStatus reports embedding provider health for liveness probes
type HealthStatus struct {
	Status    string `json:"status"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
	Error     string `json:"error,omitempty"`
}

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)
