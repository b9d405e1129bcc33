package analytics

import (
	"fmt"
	"sort"

	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/domain"
)

// weeklyGroupingMaxDays: lookback windows at or under this size bucket the
// trend charts by ISO week; anything larger groups by month.
const weeklyGroupingMaxDays = 32

// GroupWeekly reports whether the window should bucket trends by week.
func GroupWeekly(windowDays int) bool {
	return windowDays <= weeklyGroupingMaxDays
}

// BuildCharts assembles every chart payload from the filtered sales table
// and the materialized inventory set.
func BuildCharts(sales *dataset.Table, m dataset.Mapping, idx *SalesIndex, items []InventoryItem, weekly bool) domain.ChartBlock {
	block := domain.ChartBlock{
		SalesTrend:           trend(sales, m, idx, weekly, false),
		ProfitTrend:          trend(sales, m, idx, weekly, true),
		InventoryLevels:      inventoryLevels(items),
		TopProducts:          topProducts(idx, items),
		RecentTransactions:   recentTransactions(sales, m, idx),
		CategoryDistribution: categoryDistribution(items, idx),
		ABCAnalysis:          ClassifyABC(idx.RevenueByItem),
	}
	return block
}

// trend groups per-row revenue (or profit) into week or month buckets.
// Rows without a parseable date are excluded; profit trends are empty when
// no explicit profit column exists.
func trend(sales *dataset.Table, m dataset.Mapping, idx *SalesIndex, weekly, profit bool) []domain.TrendPoint {
	points := []domain.TrendPoint{}
	if sales == nil || len(sales.Dates) == 0 {
		return points
	}
	if profit && !m.Has(dataset.RoleProfit) {
		return points
	}

	buckets := make(map[string]float64)
	for i := 0; i < sales.Len(); i++ {
		date, ok := sales.Date(i)
		if !ok {
			continue
		}

		var key string
		if weekly {
			year, week := date.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		} else {
			key = date.Format("2006-01")
		}

		if profit {
			buckets[key] += sales.Float(i, m.Column(dataset.RoleProfit))
		} else {
			buckets[key] += rowRevenue(sales, m, i, idx.FallbackPrice)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		points = append(points, domain.TrendPoint{Period: key, Value: Round2(buckets[key])})
	}
	return points
}

func inventoryLevels(items []InventoryItem) []domain.InventoryLevel {
	sorted := make([]InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stock > sorted[j].Stock })
	if len(sorted) > 15 {
		sorted = sorted[:15]
	}

	levels := make([]domain.InventoryLevel, 0, len(sorted))
	for _, item := range sorted {
		levels = append(levels, domain.InventoryLevel{
			Name:    item.Name,
			Stock:   item.Stock,
			Reorder: item.Reorder,
		})
	}
	return levels
}

func topProducts(idx *SalesIndex, items []InventoryItem) []domain.ProductSales {
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	products := make([]domain.ProductSales, 0, len(idx.RevenueByItem))
	for id, revenue := range idx.RevenueByItem {
		name := names[id]
		if name == "" {
			name = id
		}
		products = append(products, domain.ProductSales{
			Name:    name,
			Units:   idx.UnitsByItem[id],
			Revenue: Round2(revenue),
		})
	}

	sort.SliceStable(products, func(i, j int) bool { return products[i].Revenue > products[j].Revenue })
	if len(products) > 5 {
		products = products[:5]
	}
	return products
}

func recentTransactions(sales *dataset.Table, m dataset.Mapping, idx *SalesIndex) []domain.Transaction {
	if sales == nil || len(sales.Dates) == 0 {
		return []domain.Transaction{}
	}

	rows := make([]int, 0, sales.Len())
	for i := 0; i < sales.Len(); i++ {
		if _, ok := sales.Date(i); ok {
			rows = append(rows, i)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return sales.Dates[rows[a]].After(sales.Dates[rows[b]])
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for _, i := range rows {
		txs = append(txs, domain.Transaction{
			Date:     sales.Dates[i].Format("2006-01-02"),
			ItemID:   CanonicalID(sales.Value(i, m.Column(dataset.RoleItemID))),
			Quantity: sales.Float(i, m.Column(dataset.RoleQuantity)),
			Revenue:  Round2(rowRevenue(sales, m, i, idx.FallbackPrice)),
		})
	}
	return txs
}

// categoryDistribution splits inventory valuation across categories. Items
// without a category are grouped under "Uncategorized"; the list is empty
// when the category column never resolved.
func categoryDistribution(items []InventoryItem, idx *SalesIndex) []domain.CategoryValue {
	byCategory := make(map[string]float64)
	hasCategory := false
	for _, item := range items {
		category := item.Category
		if category != "" {
			hasCategory = true
		} else {
			category = "Uncategorized"
		}
		byCategory[category] += item.Stock * idx.PriceFor(item.ID)
	}
	if !hasCategory {
		return []domain.CategoryValue{}
	}

	values := make([]domain.CategoryValue, 0, len(byCategory))
	for name, value := range byCategory {
		values = append(values, domain.CategoryValue{Name: name, Value: Round2(value)})
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value > values[j].Value })
	return values
}
