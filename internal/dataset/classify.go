package dataset

// Kind is the detected category of an uploaded file.
type Kind string

const (
	KindSales     Kind = "sales"
	KindInventory Kind = "inventory"
	KindUnknown   Kind = "unknown"
)

// Classify decides whether a header set looks like a sales export or an
// inventory export. Sales is checked first; a file carrying both stock and
// revenue columns therefore lands as sales. That resolution order is
// long-standing observed behavior, kept as documented.
func Classify(columns []string) Kind {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}

	hasAny := func(aliases []string) bool {
		for _, a := range aliases {
			if _, ok := present[a]; ok {
				return true
			}
		}
		return false
	}

	hasDate := hasAny(roleAliases[RoleDate])
	hasMoney := hasAny(roleAliases[RoleRevenue]) || hasAny(roleAliases[RoleProfit]) ||
		hasAny(roleAliases[RolePrice]) || hasAny(roleAliases[RoleQuantity])
	if hasDate && hasMoney {
		return KindSales
	}

	if hasAny(roleAliases[RoleStock]) || hasAny(roleAliases[RoleReorder]) ||
		hasAny([]string{"sku", "item_id", "product_id"}) {
		return KindInventory
	}

	return KindUnknown
}
