// ABOUTME: Unit tests for ContextRecord model
// ABOUTME: Tests validation bounds and canonical embedding text determinism
package models

import (
	"strings"
	"testing"
)

func TestContextRecord_Validate(t *testing.T) {
	valid := ContextRecord{
		UserID:   "user-1",
		Kind:     KindOnboarding,
		Weight:   1,
		Priority: 0,
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid record error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ContextRecord)
	}{
		{"unknown kind", func(r *ContextRecord) { r.Kind = "sentiment" }},
		{"empty kind", func(r *ContextRecord) { r.Kind = "" }},
		{"missing user", func(r *ContextRecord) { r.UserID = "" }},
		{"weight too low", func(r *ContextRecord) { r.Weight = 0 }},
		{"weight too high", func(r *ContextRecord) { r.Weight = 11 }},
		{"priority too low", func(r *ContextRecord) { r.Priority = -1 }},
		{"priority too high", func(r *ContextRecord) { r.Priority = 11 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			if err := rec.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestContextRecord_EmbeddingText(t *testing.T) {
	rec := ContextRecord{
		Kind:    KindOnboarding,
		Name:    "Initial intake",
		Summary: "Looking for analytics tooling",
		Data: map[string]any{
			"preferences":  "self-hosted",
			"goals":        []string{"reduce costs", "scale"},
			"internal_ref": "ticket-42",
		},
	}

	text := rec.EmbeddingText()

	if !strings.HasPrefix(text, "Type: onboarding") {
		t.Errorf("text should start with kind, got %q", text)
	}
	for _, want := range []string{
		"Name: Initial intake",
		"Summary: Looking for analytics tooling",
		"Preferences: self-hosted",
		"Goals: reduce costs, scale",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}

	// Arbitrary keys are noise and must be excluded.
	if strings.Contains(text, "ticket-42") {
		t.Errorf("text should exclude non-curated keys:\n%s", text)
	}
}

func TestContextRecord_EmbeddingText_Deterministic(t *testing.T) {
	make := func() ContextRecord {
		return ContextRecord{
			Kind:    KindConversation,
			Name:    "Chat",
			Summary: "Discussed pricing",
			Data: map[string]any{
				"requirements": map[string]any{"b": "two", "a": "one", "c": "three"},
				"interests":    []any{"devops", "security"},
			},
		}
	}

	first := make().EmbeddingText()
	for i := 0; i < 20; i++ {
		if got := make().EmbeddingText(); got != first {
			t.Fatalf("canonical text not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestContextRecord_EmbeddingText_SkipsEmptyFields(t *testing.T) {
	rec := ContextRecord{Kind: KindProductSearch}
	text := rec.EmbeddingText()

	if text != "Type: product_search" {
		t.Errorf("text = %q, want only the kind part", text)
	}
}

func TestContextRecord_Touch(t *testing.T) {
	rec := ContextRecord{}
	rec.Touch()
	if rec.LastActivity == 0 {
		t.Error("Touch() did not set LastActivity")
	}
}

func TestContextRecord_IncrementMessageCount(t *testing.T) {
	rec := ContextRecord{}
	rec.IncrementMessageCount()
	rec.IncrementMessageCount()
	if rec.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", rec.MessageCount)
	}
}
