package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/biznexus-ai/backend/internal/dataset"
)

// defaultUnitPrice is the last-resort price estimate when a dataset carries
// no price signal at all. Better than treating the inventory as worthless.
const defaultUnitPrice = 50

// SalesIndex aggregates the window-filtered sales table per item. It is the
// shared join surface for the metrics, forecast, and ABC computations.
type SalesIndex struct {
	UnitsByItem   map[string]float64
	RevenueByItem map[string]float64
	TotalRevenue  float64
	TotalProfit   float64
	HasProfit     bool
	Orders        int

	priceSum      map[string]float64
	priceCount    map[string]float64
	FallbackPrice float64
}

// CanonicalID normalizes an item identifier for joining: trimmed, and
// integral floats ("12.0") collapsed to their integer spelling, since IDs
// arrive as numbers from spreadsheet and JSON sources.
func CanonicalID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// BuildSalesIndex walks the sales table once and accumulates per-item units,
// revenue, and observed prices.
//
// Revenue preference order: an explicit revenue column when resolved,
// otherwise quantity x price, otherwise quantity x fallback price.
func BuildSalesIndex(sales *dataset.Table, m dataset.Mapping) *SalesIndex {
	idx := &SalesIndex{
		UnitsByItem:   make(map[string]float64),
		RevenueByItem: make(map[string]float64),
		priceSum:      make(map[string]float64),
		priceCount:    make(map[string]float64),
		HasProfit:     m.Has(dataset.RoleProfit),
	}
	if sales == nil {
		idx.FallbackPrice = defaultUnitPrice
		return idx
	}

	idx.Orders = sales.Len()

	var priceTotal, priceN float64
	for i := 0; i < sales.Len(); i++ {
		id := CanonicalID(sales.Value(i, m.Column(dataset.RoleItemID)))
		qty := sales.Float(i, m.Column(dataset.RoleQuantity))
		price := sales.Float(i, m.Column(dataset.RolePrice))

		if id != "" {
			idx.UnitsByItem[id] += qty
			if price > 0 {
				idx.priceSum[id] += price
				idx.priceCount[id]++
			}
		}
		if price > 0 {
			priceTotal += price
			priceN++
		}
	}

	idx.FallbackPrice = defaultUnitPrice
	if priceN > 0 {
		idx.FallbackPrice = priceTotal / priceN
	}

	for i := 0; i < sales.Len(); i++ {
		id := CanonicalID(sales.Value(i, m.Column(dataset.RoleItemID)))
		rev := rowRevenue(sales, m, i, idx.FallbackPrice)
		idx.TotalRevenue += rev
		if id != "" {
			idx.RevenueByItem[id] += rev
		}
		if idx.HasProfit {
			idx.TotalProfit += sales.Float(i, m.Column(dataset.RoleProfit))
		}
	}

	return idx
}

// rowRevenue computes one transaction's revenue using the preference chain.
func rowRevenue(sales *dataset.Table, m dataset.Mapping, row int, fallbackPrice float64) float64 {
	if m.Has(dataset.RoleRevenue) {
		return sales.Float(row, m.Column(dataset.RoleRevenue))
	}
	qty := sales.Float(row, m.Column(dataset.RoleQuantity))
	if m.Has(dataset.RolePrice) {
		return qty * sales.Float(row, m.Column(dataset.RolePrice))
	}
	return qty * fallbackPrice
}

// PriceFor estimates an item's unit price from its sales history, falling
// back to the dataset-wide fallback price for items never sold.
func (s *SalesIndex) PriceFor(itemID string) float64 {
	if n := s.priceCount[itemID]; n > 0 {
		return s.priceSum[itemID] / n
	}
	return s.FallbackPrice
}
