// ABOUTME: Product model representing a recommendation candidate
// ABOUTME: Defines embedding text generation and the metadata snapshot for results
package models

import (
	"fmt"
	"strings"
	"time"
)

// Product is an item eligible for recommendation. A product without an
// embedding is excluded from ranking, not scored as zero.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Platform       string    `json:"platform,omitempty"`
	Features       []string  `json:"features,omitempty"`
	TechStack      []string  `json:"tech_stack,omitempty"`
	UseCases       []string  `json:"use_cases,omitempty"`
	TargetAudience string    `json:"target_audience,omitempty"`
	Keywords       string    `json:"keywords,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Rating         float64   `json:"rating,omitempty"`
	Available      bool      `json:"available"`
	Embedding      []float64 `json:"embedding,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasEmbedding reports whether the product can participate in ranking
func (p *Product) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// EmbeddingText builds the canonical text for embedding generation
func (p *Product) EmbeddingText() string {
	var parts []string

	if p.Name != "" {
		parts = append(parts, fmt.Sprintf("Product: %s", p.Name))
	}
	if p.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", p.Description))
	}
	if p.Category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", p.Category))
	}
	if p.Subcategory != "" {
		parts = append(parts, fmt.Sprintf("Subcategory: %s", p.Subcategory))
	}
	if p.Platform != "" {
		parts = append(parts, fmt.Sprintf("Platform: %s", p.Platform))
	}
	if len(p.Features) > 0 {
		parts = append(parts, fmt.Sprintf("Features: %s", strings.Join(p.Features, ", ")))
	}
	if len(p.TechStack) > 0 {
		parts = append(parts, fmt.Sprintf("Technology: %s", strings.Join(p.TechStack, ", ")))
	}
	if len(p.UseCases) > 0 {
		parts = append(parts, fmt.Sprintf("Use Cases: %s", strings.Join(p.UseCases, ", ")))
	}
	if p.TargetAudience != "" {
		parts = append(parts, fmt.Sprintf("Target Audience: %s", p.TargetAudience))
	}
	if p.Keywords != "" {
		parts = append(parts, fmt.Sprintf("Keywords: %s", p.Keywords))
	}
	if p.Summary != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", p.Summary))
	}

	return strings.Join(parts, " | ")
}

// Metadata returns the snapshot attached to ranking results
func (p *Product) Metadata() map[string]any {
	meta := map[string]any{
		"name":      p.Name,
		"available": p.Available,
	}
	if p.Category != "" {
		meta["category"] = p.Category
	}
	if p.Platform != "" {
		meta["platform"] = p.Platform
	}
	if p.Summary != "" {
		meta["summary"] = p.Summary
	}
	if p.Rating > 0 {
		meta["rating"] = p.Rating
	}
	return meta
}
