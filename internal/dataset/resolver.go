package dataset

import (
	"github.com/rs/zerolog/log"
)

// Role is a canonical semantic column role. Uploaded files rarely agree on
// header names, so every computation resolves roles to real columns first.
type Role string

const (
	RoleStock    Role = "stock"
	RoleReorder  Role = "reorder"
	RolePrice    Role = "price"
	RoleDate     Role = "date"
	RoleItemID   Role = "item_id"
	RoleItemName Role = "item_name"
	RoleCategory Role = "category"
	RoleLeadTime Role = "lead_time"
	RoleQuantity Role = "quantity"
	RoleRevenue  Role = "revenue"
	RoleProfit   Role = "profit"
)

// roleAliases lists known header spellings per role, in priority order: the
// first alias present in the header set wins. Kept as a constant table so
// resolution stays deterministic and testable.
var roleAliases = map[Role][]string{
	RoleStock:    {"stock_level", "current_stock", "stock", "quantity", "qty", "on_hand", "units_in_stock"},
	RoleReorder:  {"reorder_point", "reorder_level", "reorder", "reorder_limit", "min_stock", "minimum_stock"},
	RolePrice:    {"price_per_unit", "unit_price", "price", "selling_price", "unit_cost", "cost"},
	RoleDate:     {"date", "order_date", "transaction_date", "sale_date", "sold_at", "timestamp", "created_at"},
	RoleItemID:   {"item_id", "product_id", "sku", "item", "product_code", "id"},
	RoleItemName: {"item_name", "product_name", "name", "product", "description"},
	RoleCategory: {"category", "product_category", "segment", "type"},
	RoleLeadTime: {"lead_time_days", "lead_time", "supplier_lead_time", "delivery_days"},
	RoleQuantity: {"quantity", "qty", "units_sold", "quantity_sold", "units"},
	RoleRevenue:  {"total_revenue", "revenue", "sales_amount", "total", "amount"},
	RoleProfit:   {"profit", "total_profit", "net_profit"},
}

// Positional fallback for inventory exports with unrecognized headers: by
// convention the 3rd column is stock and the 4th the reorder point.
const (
	positionalStockIdx   = 2
	positionalReorderIdx = 3
)

// Mapping records the resolved real column name per role. Absent roles stay
// unmapped and downstream computations gated on them are skipped.
type Mapping map[Role]string

// Has reports whether the role was resolved.
func (m Mapping) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// Column returns the resolved column name for the role, or "".
func (m Mapping) Column(role Role) string {
	return m[role]
}

// Describe renders the mapping for the dashboard debug block.
func (m Mapping) Describe() map[string]string {
	out := make(map[string]string, len(m))
	for role, col := range m {
		out[string(role)] = col
	}
	return out
}

// Resolve maps a header list to canonical roles. Pure over its input:
// identical headers always yield an identical mapping.
func Resolve(columns []string) Mapping {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}

	mapping := make(Mapping)
	for role, aliases := range roleAliases {
		for _, alias := range aliases {
			if _, ok := present[alias]; ok {
				mapping[role] = alias
				log.Debug().Str("role", string(role)).Str("column", alias).
					Str("path", "alias").Msg("column resolved")
				break
			}
		}
	}

	// Positional fallback only for the two inventory-critical roles.
	if !mapping.Has(RoleStock) && len(columns) > positionalStockIdx {
		mapping[RoleStock] = columns[positionalStockIdx]
		log.Debug().Str("role", string(RoleStock)).Str("column", mapping[RoleStock]).
			Str("path", "positional").Msg("column resolved")
	}
	if !mapping.Has(RoleReorder) && len(columns) > positionalReorderIdx {
		mapping[RoleReorder] = columns[positionalReorderIdx]
		log.Debug().Str("role", string(RoleReorder)).Str("column", mapping[RoleReorder]).
			Str("path", "positional").Msg("column resolved")
	}

	return mapping
}
