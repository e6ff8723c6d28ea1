// ABOUTME: Tests for the recommend CLI command
// ABOUTME: Verifies flag validation and offline failure paths
package commands

import (
	"strings"
	"testing"
)

func TestNewRecommendCmd(t *testing.T) {
	cmd := NewRecommendCmd()

	if !strings.HasPrefix(cmd.Use, "recommend") {
		t.Errorf("Use = %q, want recommend <user-id>", cmd.Use)
	}
	if cmd.Flags().Lookup("top") == nil {
		t.Error("--top flag not found")
	}
}

func TestRecommend_RequiresUserID(t *testing.T) {
	db := testDBPath(t)

	if _, err := runCLI(t, "recommend", "--db", db); err == nil {
		t.Fatal("recommend without user-id should fail")
	}
}

func TestRecommend_InvalidTop(t *testing.T) {
	db := testDBPath(t)

	defer func() { recommendTopK = 0 }()

	if _, err := runCLI(t, "recommend", "--db", db, "--top", "-1", "u1"); err == nil {
		t.Fatal("recommend with negative --top should fail")
	}
}

func TestRecommend_RequiresAPIKey(t *testing.T) {
	db := testDBPath(t)

	out, err := runCLI(t, "recommend", "--db", db, "u1")
	if err == nil {
		t.Fatalf("recommend without OPENAI_API_KEY should fail, output:\n%s", out)
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("error = %v, want API key message", err)
	}
}
