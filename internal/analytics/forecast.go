package analytics

import (
	"math"
	"sort"

	"github.com/biznexus-ai/backend/internal/domain"
)

const (
	// stockoutHorizonDays is the forecast window: only items projected to
	// run out sooner than this are reported.
	stockoutHorizonDays = 30

	// unlimitedRunway is the sentinel for items with stock but no sales
	// history above their reorder point.
	unlimitedRunway = 999

	// restockSafetyDays pads the lead time when sizing a restock order.
	restockSafetyDays = 14

	// maxListEntries bounds every per-item response list.
	maxListEntries = 50
)

// ForecastResult carries the three risk lists plus the aggregate dead-stock
// value, which always covers the full qualifying set even when the display
// list is truncated.
type ForecastResult struct {
	Stockouts      []domain.StockoutForecast
	DeadStock      []domain.DeadStockEntry
	DeadStockValue float64
	Restock        []domain.RestockRecommendation
}

// Forecast runs the per-item sales-velocity model over the inventory set.
// windowDays is the observed sales window and is clamped to at least one day.
func Forecast(items []InventoryItem, idx *SalesIndex, windowDays int) ForecastResult {
	if windowDays < 1 {
		windowDays = 1
	}

	var result ForecastResult
	for _, item := range items {
		sold := idx.UnitsByItem[item.ID]
		velocity := sold / float64(windowDays)

		daysLeft := runwayDays(item, velocity)
		if daysLeft < stockoutHorizonDays {
			result.Stockouts = append(result.Stockouts, domain.StockoutForecast{
				ItemID:   item.ID,
				Name:     item.Name,
				Stock:    item.Stock,
				Velocity: Round2(velocity),
				DaysLeft: daysLeft,
			})
		}

		if sold == 0 && item.Stock > 0 {
			value := item.Stock * idx.PriceFor(item.ID)
			result.DeadStockValue += value
			result.DeadStock = append(result.DeadStock, domain.DeadStockEntry{
				ItemID: item.ID,
				Name:   item.Name,
				Stock:  item.Stock,
				Value:  Round2(value),
			})
		}

		if rec, ok := restockFor(item, velocity, daysLeft); ok {
			result.Restock = append(result.Restock, rec)
		}
	}

	sort.SliceStable(result.Stockouts, func(i, j int) bool {
		return result.Stockouts[i].DaysLeft < result.Stockouts[j].DaysLeft
	})
	sort.SliceStable(result.DeadStock, func(i, j int) bool {
		return result.DeadStock[i].Value > result.DeadStock[j].Value
	})
	sort.SliceStable(result.Restock, func(i, j int) bool {
		return result.Restock[i].OrderQty > result.Restock[j].OrderQty
	})

	result.Stockouts = truncate(result.Stockouts)
	result.DeadStock = truncate(result.DeadStock)
	result.Restock = truncate(result.Restock)
	result.DeadStockValue = Finite(result.DeadStockValue)

	return result
}

// runwayDays projects how many days of stock remain. Zero velocity below
// the reorder point is treated as immediately critical: no sales history is
// not evidence of safety when stock is already short.
func runwayDays(item InventoryItem, velocity float64) int {
	if velocity > 0 {
		return int(math.Floor(item.Stock / velocity))
	}
	if item.Stock < item.Reorder {
		return 0
	}
	return unlimitedRunway
}

func restockFor(item InventoryItem, velocity float64, daysLeft int) (domain.RestockRecommendation, bool) {
	if velocity > 0 {
		target := velocity * (item.LeadTime + restockSafetyDays)
		needed := target - item.Stock
		if needed <= 0 {
			return domain.RestockRecommendation{}, false
		}
		urgency := "Medium"
		if float64(daysLeft) < item.LeadTime {
			urgency = "High"
		}
		return domain.RestockRecommendation{
			ItemID:   item.ID,
			Name:     item.Name,
			Stock:    item.Stock,
			OrderQty: int(math.Ceil(needed)),
			Urgency:  urgency,
			Reason:   "projected stockout",
		}, true
	}

	if item.Stock < item.Reorder {
		qty := math.Max(1.5*item.Reorder, 10)
		return domain.RestockRecommendation{
			ItemID:   item.ID,
			Name:     item.Name,
			Stock:    item.Stock,
			OrderQty: int(math.Ceil(qty)),
			Urgency:  "High",
			Reason:   "below reorder limit",
		}, true
	}

	return domain.RestockRecommendation{}, false
}

func truncate[T any](list []T) []T {
	if len(list) > maxListEntries {
		return list[:maxListEntries]
	}
	return list
}
