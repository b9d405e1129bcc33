package analytics

import "github.com/biznexus-ai/backend/internal/domain"

// Demo placeholders keep the dashboard from rendering empty panels when no
// real item qualifies. They are injected only at response assembly, carry a
// "(Demo)" name marker and the demo flag, and are never mixed into computed
// data structures.

// DemoRestock returns placeholder restock recommendations.
func DemoRestock() []domain.RestockRecommendation {
	return []domain.RestockRecommendation{
		{ItemID: "DEMO-1", Name: "Wireless Mouse (Demo)", Stock: 8, OrderQty: 40, Urgency: "High", Reason: "below reorder limit", Demo: true},
		{ItemID: "DEMO-2", Name: "USB-C Cable (Demo)", Stock: 15, OrderQty: 25, Urgency: "Medium", Reason: "projected stockout", Demo: true},
	}
}

// DemoDeadStock returns placeholder dead-stock entries.
func DemoDeadStock() []domain.DeadStockEntry {
	return []domain.DeadStockEntry{
		{ItemID: "DEMO-3", Name: "Desk Organizer (Demo)", Stock: 42, Value: 1260, Demo: true},
		{ItemID: "DEMO-4", Name: "Phone Stand (Demo)", Stock: 30, Value: 450, Demo: true},
	}
}
