package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAgentData(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestPredictionContextInventoryOnly(t *testing.T) {
	dir := t.TempDir()
	writeAgentData(t, dir, "inventory.csv",
		"item_id,item_name,stock,reorder_point\nA,Widget,5,2\n")

	got := NewPredictionAgent(dir).Context(context.Background())

	if !strings.Contains(got, "Inventory: 1 items") {
		t.Errorf("context missing inventory line: %q", got)
	}
	// No sales history means the global fallback unit price applies.
	if !strings.Contains(got, "valuation 250.00") {
		t.Errorf("context missing fallback valuation: %q", got)
	}
}

func TestPredictionContextSalesAndInventory(t *testing.T) {
	dir := t.TempDir()
	writeAgentData(t, dir, "inventory.csv",
		"item_id,item_name,stock,reorder_point\nA,Widget,5,2\n")
	writeAgentData(t, dir, "sales.csv",
		"date,item_id,quantity,price\n2024-01-05,A,2,10\n")

	got := NewPredictionAgent(dir).Context(context.Background())

	if !strings.Contains(got, "Total revenue: 20.00 across 1 orders") {
		t.Errorf("context missing revenue baseline: %q", got)
	}
	if !strings.Contains(got, "valuation 50.00") {
		t.Errorf("context missing sales-priced valuation: %q", got)
	}
}

func TestPredictionContextNoData(t *testing.T) {
	got := NewPredictionAgent(t.TempDir()).Context(context.Background())
	if !strings.Contains(got, "No data uploaded") {
		t.Errorf("context = %q, want the no-data fallback", got)
	}
}
