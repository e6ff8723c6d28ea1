// ABOUTME: ContextRecord model for user context used in recommendation queries
// ABOUTME: Defines context kinds, weight/priority bounds, and canonical embedding text
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ContextKind classifies where a context record came from
type ContextKind string

const (
	KindOnboarding     ContextKind = "onboarding"
	KindConversation   ContextKind = "conversation"
	KindProductSearch  ContextKind = "product_search"
	KindRecommendation ContextKind = "recommendation"
)

// Weight and priority bounds for context records
const (
	MinWeight   = 1
	MaxWeight   = 10
	MinPriority = 0
	MaxPriority = 10
)

// embeddingDataKeys is the curated subset of structured-data keys that
// carries semantic signal; everything else is noise for the embedding.
var embeddingDataKeys = []string{"preferences", "interests", "goals", "requirements"}

// ContextRecord is one stored unit of user context (preference, message,
// search) used to personalize recommendations
type ContextRecord struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	SessionID    string         `json:"session_id,omitempty"`
	Kind         ContextKind    `json:"kind"`
	Name         string         `json:"name,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	Embedding    []float64      `json:"embedding,omitempty"`
	Weight       int            `json:"weight"`
	Priority     int            `json:"priority"`
	MessageCount int            `json:"message_count"`
	LastActivity int64          `json:"last_activity"`
	Active       bool           `json:"active"`
	Archived     bool           `json:"archived"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Validate checks kind and weight/priority bounds
func (c *ContextRecord) Validate() error {
	switch c.Kind {
	case KindOnboarding, KindConversation, KindProductSearch, KindRecommendation:
	default:
		return fmt.Errorf("invalid context kind: %q", c.Kind)
	}
	if c.UserID == "" {
		return fmt.Errorf("context record requires a user id")
	}
	if c.Weight < MinWeight || c.Weight > MaxWeight {
		return fmt.Errorf("weight must be %d-%d, got %d", MinWeight, MaxWeight, c.Weight)
	}
	if c.Priority < MinPriority || c.Priority > MaxPriority {
		return fmt.Errorf("priority must be %d-%d, got %d", MinPriority, MaxPriority, c.Priority)
	}
	return nil
}

// EmbeddingText builds the canonical text for embedding generation.
// The output is deterministic: same semantic content always yields the
// same string, so the embedding cache hits reliably.
func (c *ContextRecord) EmbeddingText() string {
	parts := []string{fmt.Sprintf("Type: %s", c.Kind)}

	if c.Name != "" {
		parts = append(parts, fmt.Sprintf("Name: %s", c.Name))
	}
	if c.Summary != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", c.Summary))
	}

	for _, key := range embeddingDataKeys {
		value, ok := c.Data[key]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", titleCase(key), formatDataValue(value)))
	}

	return strings.Join(parts, " | ")
}

// Touch bumps the last-activity marker to now
func (c *ContextRecord) Touch() {
	c.LastActivity = time.Now().Unix()
}

// IncrementMessageCount records one more message attributed to this context
func (c *ContextRecord) IncrementMessageCount() {
	c.MessageCount++
}

// formatDataValue renders a structured-data value deterministically.
// String slices and maps are ordered so canonical text stays stable.
func formatDataValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(items, ", ")
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, v[k])
		}
		return strings.Join(pairs, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// titleCase uppercases the first letter (ASCII keys only)
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
