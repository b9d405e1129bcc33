package analytics

import (
	"sort"

	"github.com/biznexus-ai/backend/internal/domain"
)

// ABC classification tiers by cumulative revenue share.
const (
	abcTierA = 0.80
	abcTierB = 0.95
)

// ClassifyABC ranks items by revenue contribution and buckets them into A
// (top 80% of cumulative revenue), B (next 15%), and C (rest). The contract
// is aggregate-only: counts per tier, never per-item grades. With zero total
// revenue every item lands in C.
func ClassifyABC(revenueByItem map[string]float64) domain.ABCBreakdown {
	var breakdown domain.ABCBreakdown
	if len(revenueByItem) == 0 {
		return breakdown
	}

	var total float64
	revenues := make([]float64, 0, len(revenueByItem))
	for _, rev := range revenueByItem {
		revenues = append(revenues, rev)
		total += rev
	}

	if total <= 0 {
		breakdown.C = len(revenues)
		return breakdown
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(revenues)))

	var cumulative float64
	for _, rev := range revenues {
		cumulative += rev
		share := cumulative / total
		switch {
		case share <= abcTierA:
			breakdown.A++
		case share <= abcTierB:
			breakdown.B++
		default:
			breakdown.C++
		}
	}

	return breakdown
}
