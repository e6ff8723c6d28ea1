// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Verifies truncation, validation, and data flag parsing
package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/adapta/recommender/internal/embedding"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "abc", 10, "abc"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long string truncated", "abcdefghij", 6, "abc..."},
		{"tiny maxLen", "abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "top"); err != nil {
		t.Errorf("validatePositiveInt(5) error = %v", err)
	}
	if err := validatePositiveInt(0, "top"); err == nil {
		t.Error("validatePositiveInt(0) should fail")
	}
	if err := validatePositiveInt(-3, "top"); err == nil {
		t.Error("validatePositiveInt(-3) should fail")
	}
}

func TestParseDataFlags(t *testing.T) {
	data, err := parseDataFlags([]string{"preferences=open source", "goals=scale"})
	if err != nil {
		t.Fatalf("parseDataFlags() error = %v", err)
	}
	if data["preferences"] != "open source" {
		t.Errorf("preferences = %v", data["preferences"])
	}
	if data["goals"] != "scale" {
		t.Errorf("goals = %v", data["goals"])
	}

	if _, err := parseDataFlags([]string{"no-equals-sign"}); err == nil {
		t.Error("parseDataFlags() should reject entries without =")
	}
	if _, err := parseDataFlags([]string{"=value"}); err == nil {
		t.Error("parseDataFlags() should reject empty keys")
	}

	data, err = parseDataFlags(nil)
	if err != nil {
		t.Fatalf("parseDataFlags(nil) error = %v", err)
	}
	if data != nil {
		t.Errorf("parseDataFlags(nil) = %v, want nil", data)
	}
}

func TestIsTransient(t *testing.T) {
	wrapped := fmt.Errorf("recommending: %w", embedding.ErrProviderUnavailable)
	if !isTransient(wrapped) {
		t.Error("wrapped ErrProviderUnavailable should be transient")
	}
	if isTransient(errors.New("bad input")) {
		t.Error("arbitrary errors should not be transient")
	}
}
