package localdb

import (
	"math"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	if DBClient != nil {
		_ = Close()
	}

	dbPath := filepath.Join(t.TempDir(), "lucky.db")
	if _, err := SetupDB(dbPath); err != nil {
		t.Fatalf("SetupDB failed: %v", err)
	}

	t.Cleanup(func() {
		_ = Close()
	})
}

func TestOpenAIUsage_AddAndSummarize(t *testing.T) {
	setupTestDB(t)

	if err := AddOpenAIUsage("gpt-4o-mini", 100, 200, 0.5); err != nil {
		t.Fatalf("AddOpenAIUsage failed: %v", err)
	}
	if err := AddOpenAIUsage("gpt-4o-mini", 10, 20, 0.25); err != nil {
		t.Fatalf("AddOpenAIUsage failed: %v", err)
	}
	if err := AddOpenAIUsage("gpt-4o", 1, 2, 0); err != nil {
		t.Fatalf("AddOpenAIUsage failed: %v", err)
	}

	summary, err := GetOpenAIUsage()
	if err != nil {
		t.Fatalf("GetOpenAIUsage failed: %v", err)
	}

	if summary.Requests != 3 {
		t.Fatalf("unexpected requests: got=%d want=3", summary.Requests)
	}
	if summary.InputTokens != 111 || summary.OutputTokens != 222 {
		t.Fatalf("unexpected tokens: got=%d/%d want=111/222", summary.InputTokens, summary.OutputTokens)
	}
	if math.Abs(summary.CostUSD-0.75) > 1e-9 {
		t.Fatalf("unexpected cost: got=%f want=0.75", summary.CostUSD)
	}
	if len(summary.Models) != 2 {
		t.Fatalf("unexpected model count: got=%d want=2", len(summary.Models))
	}
	if summary.Models[1].Model != "gpt-4o-mini" || summary.Models[1].Requests != 2 {
		t.Fatalf("unexpected model row: %+v", summary.Models[1])
	}
}

func TestOpenAIUsage_Reset(t *testing.T) {
	setupTestDB(t)

	if err := AddOpenAIUsage("gpt-4o-mini", 1, 1, 0); err != nil {
		t.Fatalf("AddOpenAIUsage failed: %v", err)
	}
	if err := ResetOpenAIUsage(); err != nil {
		t.Fatalf("ResetOpenAIUsage failed: %v", err)
	}

	summary, err := GetOpenAIUsage()
	if err != nil {
		t.Fatalf("GetOpenAIUsage failed: %v", err)
	}
	if summary.Requests != 0 || len(summary.Models) != 0 {
		t.Fatalf("usage should be empty after reset: %+v", summary)
	}
}

func TestOpenAIUsage_NoDatabase(t *testing.T) {
	_ = Close()

	if err := AddOpenAIUsage("gpt-4o-mini", 1, 1, 0); err == nil {
		t.Fatalf("expected error without database")
	}
	if _, err := GetOpenAIUsage(); err == nil {
		t.Fatalf("expected error without database")
	}
}
