package dataset

import (
	"reflect"
	"testing"
)

func TestResolveAliases(t *testing.T) {
	m := Resolve([]string{"date", "item_id", "stock_level", "reorder_point", "unit_price"})

	if got := m.Column(RoleStock); got != "stock_level" {
		t.Errorf("stock resolved to %q, want stock_level", got)
	}
	if got := m.Column(RoleReorder); got != "reorder_point" {
		t.Errorf("reorder resolved to %q, want reorder_point", got)
	}
	if got := m.Column(RolePrice); got != "unit_price" {
		t.Errorf("price resolved to %q, want unit_price", got)
	}
	if got := m.Column(RoleDate); got != "date" {
		t.Errorf("date resolved to %q, want date", got)
	}
}

func TestResolveAliasPriority(t *testing.T) {
	// Both spellings present: the earlier alias in the table wins.
	m := Resolve([]string{"stock", "stock_level"})
	if got := m.Column(RoleStock); got != "stock_level" {
		t.Errorf("stock resolved to %q, want stock_level (higher priority alias)", got)
	}
}

func TestResolvePositionalFallback(t *testing.T) {
	m := Resolve([]string{"widget", "thing", "col_c", "col_d"})

	if got := m.Column(RoleStock); got != "col_c" {
		t.Errorf("positional stock resolved to %q, want col_c", got)
	}
	if got := m.Column(RoleReorder); got != "col_d" {
		t.Errorf("positional reorder resolved to %q, want col_d", got)
	}
}

func TestResolveNoPositionalWhenTooNarrow(t *testing.T) {
	m := Resolve([]string{"widget", "thing"})

	if m.Has(RoleStock) {
		t.Error("stock should not resolve with only two unrecognized columns")
	}
	if m.Has(RoleReorder) {
		t.Error("reorder should not resolve with only two unrecognized columns")
	}
}

func TestResolveAliasBeatsPosition(t *testing.T) {
	// stock alias sits at index 0; positional fallback must not override it.
	m := Resolve([]string{"current_stock", "a", "b", "c"})
	if got := m.Column(RoleStock); got != "current_stock" {
		t.Errorf("stock resolved to %q, want current_stock", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	headers := []string{"date", "sku", "qty", "price", "stock", "reorder_level"}
	first := Resolve(headers)
	for i := 0; i < 20; i++ {
		if got := Resolve(headers); !reflect.DeepEqual(got, first) {
			t.Fatalf("resolution differs across runs: %v vs %v", got, first)
		}
	}
}

func TestMappingDescribe(t *testing.T) {
	m := Mapping{RoleStock: "stock", RoleDate: "date"}
	desc := m.Describe()
	if desc["stock"] != "stock" || desc["date"] != "date" {
		t.Errorf("unexpected describe output: %v", desc)
	}
}
