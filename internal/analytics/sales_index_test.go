package analytics

import (
	"math"
	"testing"

	"github.com/biznexus-ai/backend/internal/dataset"
)

func salesTable(columns []string, rows [][]string) (*dataset.Table, dataset.Mapping) {
	t := dataset.New(columns, rows)
	return t, dataset.Resolve(columns)
}

func TestCanonicalID(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"A-100", "A-100"},
		{" A-100 ", "A-100"},
		{"12", "12"},
		{"12.0", "12"},
		{"12.5", "12.5"},
		{"", ""},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := CanonicalID(tc.raw); got != tc.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestBuildSalesIndexQuantityTimesPrice(t *testing.T) {
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price"},
		[][]string{
			{"2024-01-01", "A", "2", "10"},
			{"2024-01-02", "A", "3", "10"},
			{"2024-01-03", "B", "1", "40"},
		},
	)

	idx := BuildSalesIndex(tbl, m)
	if idx.TotalRevenue != 90 {
		t.Errorf("total revenue = %v, want 90", idx.TotalRevenue)
	}
	if idx.UnitsByItem["A"] != 5 {
		t.Errorf("units for A = %v, want 5", idx.UnitsByItem["A"])
	}
	if idx.RevenueByItem["B"] != 40 {
		t.Errorf("revenue for B = %v, want 40", idx.RevenueByItem["B"])
	}
	if idx.Orders != 3 {
		t.Errorf("orders = %d, want 3", idx.Orders)
	}
	if idx.HasProfit {
		t.Error("profit flagged without a profit column")
	}
}

func TestBuildSalesIndexExplicitRevenueWins(t *testing.T) {
	// Explicit revenue column present: quantity x price must be ignored.
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price", "revenue"},
		[][]string{{"2024-01-01", "A", "2", "10", "500"}},
	)

	idx := BuildSalesIndex(tbl, m)
	if idx.TotalRevenue != 500 {
		t.Errorf("total revenue = %v, want 500 from explicit column", idx.TotalRevenue)
	}
}

func TestBuildSalesIndexFallbackPrice(t *testing.T) {
	// No price signal anywhere: the constant fallback applies.
	tbl, m := salesTable(
		[]string{"date", "item_id", "units_sold"},
		[][]string{{"2024-01-01", "A", "2"}},
	)

	idx := BuildSalesIndex(tbl, m)
	if idx.FallbackPrice != 50 {
		t.Errorf("fallback price = %v, want 50", idx.FallbackPrice)
	}
	if idx.TotalRevenue != 100 {
		t.Errorf("total revenue = %v, want 2 x 50", idx.TotalRevenue)
	}
}

func TestBuildSalesIndexMeanPriceFallback(t *testing.T) {
	// Items with observed prices keep them; unsold items get the mean.
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price"},
		[][]string{
			{"2024-01-01", "A", "1", "10"},
			{"2024-01-02", "B", "1", "30"},
		},
	)

	idx := BuildSalesIndex(tbl, m)
	if got := idx.PriceFor("A"); got != 10 {
		t.Errorf("price for A = %v, want 10", got)
	}
	if got := idx.PriceFor("never-sold"); got != 20 {
		t.Errorf("price for unsold item = %v, want mean 20", got)
	}
}

func TestBuildSalesIndexProfit(t *testing.T) {
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price", "profit"},
		[][]string{
			{"2024-01-01", "A", "1", "10", "3"},
			{"2024-01-02", "B", "1", "10", "2.5"},
		},
	)

	idx := BuildSalesIndex(tbl, m)
	if !idx.HasProfit {
		t.Fatal("profit column not detected")
	}
	if idx.TotalProfit != 5.5 {
		t.Errorf("total profit = %v, want 5.5", idx.TotalProfit)
	}
}

func TestBuildSalesIndexNilTable(t *testing.T) {
	idx := BuildSalesIndex(nil, dataset.Mapping{})
	if idx.TotalRevenue != 0 || idx.Orders != 0 {
		t.Error("nil table must produce a zeroed index")
	}
	if idx.FallbackPrice != 50 {
		t.Errorf("fallback price = %v, want 50", idx.FallbackPrice)
	}
}

func TestBuildSalesIndexMalformedCells(t *testing.T) {
	tbl, m := salesTable(
		[]string{"date", "item_id", "quantity", "price"},
		[][]string{
			{"2024-01-01", "A", "oops", "$1,000"},
			{"2024-01-02", "A", "2", "NaN"},
		},
	)

	idx := BuildSalesIndex(tbl, m)
	if math.IsNaN(idx.TotalRevenue) || math.IsInf(idx.TotalRevenue, 0) {
		t.Fatal("total revenue must stay finite")
	}
	// Row 1: qty 0 x 1000 = 0. Row 2: qty 2 x 0 = 0.
	if idx.TotalRevenue != 0 {
		t.Errorf("total revenue = %v, want 0", idx.TotalRevenue)
	}
	if idx.UnitsByItem["A"] != 2 {
		t.Errorf("units = %v, want 2", idx.UnitsByItem["A"])
	}
}
