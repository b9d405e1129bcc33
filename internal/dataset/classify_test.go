package dataset

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		columns []string
		want    Kind
	}{
		{"plain sales", []string{"date", "item_id", "quantity", "price"}, KindSales},
		{"revenue only", []string{"order_date", "sku", "total_revenue"}, KindSales},
		{"plain inventory", []string{"item_id", "stock", "reorder_point"}, KindInventory},
		{"sku only", []string{"sku", "warehouse"}, KindInventory},
		{"mixed leans sales", []string{"date", "item_id", "stock", "revenue"}, KindSales},
		{"date without money", []string{"date", "note"}, KindUnknown},
		{"unrelated", []string{"foo", "bar"}, KindUnknown},
		{"empty", nil, KindUnknown},
	}

	for _, tc := range cases {
		if got := Classify(tc.columns); got != tc.want {
			t.Errorf("%s: Classify(%v) = %v, want %v", tc.name, tc.columns, got, tc.want)
		}
	}
}
