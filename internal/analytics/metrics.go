package analytics

import (
	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/domain"
)

// defaultLeadTimeDays is assumed when an inventory export carries no usable
// lead-time column.
const defaultLeadTimeDays = 7

// InventoryItem is one resolved inventory row, ready for metric and
// forecast computations.
type InventoryItem struct {
	ID       string
	Name     string
	Category string
	Stock    float64
	Reorder  float64
	LeadTime float64
}

// InventoryItems materializes the normalized inventory table through its
// column mapping. Rows without a resolvable item id are dropped; malformed
// numerics come through as zero via the table's defensive accessors.
func InventoryItems(inv *dataset.Table, m dataset.Mapping) []InventoryItem {
	if inv == nil || !m.Has(dataset.RoleItemID) {
		return nil
	}

	items := make([]InventoryItem, 0, inv.Len())
	for i := 0; i < inv.Len(); i++ {
		id := CanonicalID(inv.Value(i, m.Column(dataset.RoleItemID)))
		if id == "" {
			continue
		}

		item := InventoryItem{ID: id, Name: id, LeadTime: defaultLeadTimeDays}
		if m.Has(dataset.RoleItemName) {
			if name := inv.Value(i, m.Column(dataset.RoleItemName)); name != "" {
				item.Name = name
			}
		}
		if m.Has(dataset.RoleCategory) {
			item.Category = inv.Value(i, m.Column(dataset.RoleCategory))
		}
		if m.Has(dataset.RoleStock) {
			item.Stock = inv.Float(i, m.Column(dataset.RoleStock))
			if item.Stock < 0 {
				item.Stock = 0
			}
		}
		if m.Has(dataset.RoleReorder) {
			item.Reorder = inv.Float(i, m.Column(dataset.RoleReorder))
		}
		if m.Has(dataset.RoleLeadTime) {
			if lt := inv.Float(i, m.Column(dataset.RoleLeadTime)); lt > 0 {
				item.LeadTime = lt
			}
		}
		items = append(items, item)
	}
	return items
}

// Valuation estimates total inventory value: stock times the sales-derived
// unit price, with the global fallback for items that never sold.
func Valuation(items []InventoryItem, idx *SalesIndex) float64 {
	var total float64
	for _, item := range items {
		total += item.Stock * idx.PriceFor(item.ID)
	}
	return Finite(total)
}

// HealthScore starts from 100 and penalizes one point per percentage point
// of critical items (stock below reorder) and half a point per percentage
// point of overstocked items (stock above 3x reorder). Stockout risk is
// deliberately weighted twice as heavily as overstock.
func HealthScore(items []InventoryItem) float64 {
	if len(items) == 0 {
		return 100
	}

	var critical, overstocked int
	for _, item := range items {
		if item.Stock < item.Reorder {
			critical++
		} else if item.Reorder > 0 && item.Stock > 3*item.Reorder {
			overstocked++
		}
	}

	criticalPct := float64(critical) / float64(len(items)) * 100
	overstockPct := float64(overstocked) / float64(len(items)) * 100

	score := 100 - criticalPct - 0.5*overstockPct
	if score < 0 {
		score = 0
	}
	return Round1(score)
}

// LowStockCount counts items currently below their reorder point.
func LowStockCount(items []InventoryItem) int {
	count := 0
	for _, item := range items {
		if item.Stock < item.Reorder {
			count++
		}
	}
	return count
}

// ComputeKPIs assembles the KPI block. deadStockValue is computed by the
// forecast module over the full qualifying set and passed through here.
func ComputeKPIs(idx *SalesIndex, items []InventoryItem, deadStockValue float64) domain.KPIBlock {
	kpis := domain.KPIBlock{
		Revenue:        Round2(idx.TotalRevenue),
		Orders:         idx.Orders,
		HealthScore:    HealthScore(items),
		LowStockAlerts: LowStockCount(items),
		DeadStockValue: Round2(deadStockValue),
	}

	// Profit is only ever taken from an explicit profit column, never
	// derived from revenue and cost.
	if idx.HasProfit {
		kpis.NetProfit = Round2(idx.TotalProfit)
		if kpis.Revenue > 0 {
			kpis.NetMargin = Round1(idx.TotalProfit / idx.TotalRevenue * 100)
		}
	}

	if idx.Orders > 0 {
		kpis.AOV = Round2(idx.TotalRevenue / float64(idx.Orders))
	}

	kpis.InventoryValuation = Round2(Valuation(items, idx))
	if kpis.InventoryValuation > 0 {
		kpis.TurnoverRate = Round2(idx.TotalRevenue / kpis.InventoryValuation)
	}

	return kpis
}
