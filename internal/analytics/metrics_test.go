package analytics

import (
	"testing"

	"github.com/biznexus-ai/backend/internal/dataset"
)

func inventoryTable(columns []string, rows [][]string) (*dataset.Table, dataset.Mapping) {
	t := dataset.New(columns, rows)
	return t, dataset.Resolve(columns)
}

func TestInventoryItems(t *testing.T) {
	tbl, m := inventoryTable(
		[]string{"item_id", "item_name", "stock", "reorder_point", "category", "lead_time"},
		[][]string{
			{"A", "Widget", "10", "5", "Toys", "3"},
			{"", "Nameless", "4", "2", "", ""},
			{"B", "", "-7", "2", "", "0"},
		},
	)

	items := InventoryItems(tbl, m)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (row without id dropped)", len(items))
	}

	a := items[0]
	if a.Name != "Widget" || a.Stock != 10 || a.Reorder != 5 || a.Category != "Toys" || a.LeadTime != 3 {
		t.Errorf("unexpected first item: %+v", a)
	}

	b := items[1]
	if b.Name != "B" {
		t.Errorf("item without name should fall back to id, got %q", b.Name)
	}
	if b.Stock != 0 {
		t.Errorf("negative stock should clamp to 0, got %v", b.Stock)
	}
	if b.LeadTime != 7 {
		t.Errorf("zero lead time should fall back to the 7 day default, got %v", b.LeadTime)
	}
}

func TestHealthScore(t *testing.T) {
	cases := []struct {
		name  string
		items []InventoryItem
		want  float64
	}{
		{"empty", nil, 100},
		{"all healthy", []InventoryItem{{Stock: 10, Reorder: 5}}, 100},
		{"one critical of four", []InventoryItem{
			{Stock: 1, Reorder: 5},
			{Stock: 10, Reorder: 5},
			{Stock: 10, Reorder: 5},
			{Stock: 10, Reorder: 5},
		}, 75},
		{"overstock half weight", []InventoryItem{
			{Stock: 100, Reorder: 5},
			{Stock: 10, Reorder: 5},
		}, 75},
		{"overstock needs reorder point", []InventoryItem{
			{Stock: 100, Reorder: 0},
		}, 100},
		{"floor at zero", []InventoryItem{
			{Stock: 0, Reorder: 5},
		}, 0},
	}

	for _, tc := range cases {
		if got := HealthScore(tc.items); got != tc.want {
			t.Errorf("%s: HealthScore = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestComputeKPIsEmptyDataset(t *testing.T) {
	idx := BuildSalesIndex(nil, dataset.Mapping{})
	kpis := ComputeKPIs(idx, nil, 0)

	if kpis.HealthScore != 100 {
		t.Errorf("health score = %v, want 100 on empty data", kpis.HealthScore)
	}
	if kpis.Revenue != 0 || kpis.Orders != 0 || kpis.AOV != 0 {
		t.Errorf("expected zeroed sales KPIs, got %+v", kpis)
	}
}

func TestComputeKPIs(t *testing.T) {
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price", "profit"},
		[][]string{
			{"2024-01-01", "A", "2", "10", "4"},
			{"2024-01-02", "A", "2", "10", "4"},
		},
	)
	idx := BuildSalesIndex(tbl, m)
	items := []InventoryItem{{ID: "A", Stock: 10, Reorder: 2}}

	kpis := ComputeKPIs(idx, items, 0)
	if kpis.Revenue != 40 {
		t.Errorf("revenue = %v, want 40", kpis.Revenue)
	}
	if kpis.NetProfit != 8 {
		t.Errorf("net profit = %v, want 8", kpis.NetProfit)
	}
	if kpis.NetMargin != 20 {
		t.Errorf("net margin = %v, want 20", kpis.NetMargin)
	}
	if kpis.AOV != 20 {
		t.Errorf("aov = %v, want 20", kpis.AOV)
	}
	if kpis.InventoryValuation != 100 {
		t.Errorf("valuation = %v, want 10 x 10", kpis.InventoryValuation)
	}
	if kpis.TurnoverRate != 0.4 {
		t.Errorf("turnover = %v, want 0.4", kpis.TurnoverRate)
	}
}

func TestComputeKPIsNoProfitColumn(t *testing.T) {
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price"},
		[][]string{{"2024-01-01", "A", "2", "10"}},
	)
	idx := BuildSalesIndex(tbl, m)

	kpis := ComputeKPIs(idx, nil, 0)
	if kpis.NetProfit != 0 || kpis.NetMargin != 0 {
		t.Errorf("profit must never be derived without an explicit column, got %+v", kpis)
	}
}
