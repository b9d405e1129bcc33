package sqlstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biznexus-ai/backend/internal/config"
	"github.com/biznexus-ai/backend/internal/dataset"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.StoreConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadTableAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	table := dataset.New(
		[]string{"item_id", "stock"},
		[][]string{{"A", "10"}, {"B", "4"}},
	)
	if err := s.LoadTable(ctx, "upload_inventory", table); err != nil {
		t.Fatalf("load table: %v", err)
	}

	cols, rows, err := s.Query(ctx, `SELECT item_id, stock FROM upload_inventory ORDER BY item_id`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(cols) != 2 || cols[0] != "item_id" {
		t.Errorf("columns = %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "A" || rows[1][1] != "4" {
		t.Errorf("rows = %v", rows)
	}
}

func TestLoadTableReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := dataset.New([]string{"a"}, [][]string{{"1"}, {"2"}})
	if err := s.LoadTable(ctx, "t", first); err != nil {
		t.Fatalf("first load: %v", err)
	}

	second := dataset.New([]string{"a"}, [][]string{{"9"}})
	if err := s.LoadTable(ctx, "t", second); err != nil {
		t.Fatalf("second load: %v", err)
	}

	_, rows, err := s.Query(ctx, `SELECT a FROM t`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "9" {
		t.Errorf("rows = %v, want the replacement data only", rows)
	}
}

func TestSchemaInfo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	table := dataset.New([]string{"date", "revenue"}, [][]string{{"2024-01-01", "10"}})
	if err := s.LoadTable(ctx, "upload_sales", table); err != nil {
		t.Fatalf("load table: %v", err)
	}

	info, err := s.SchemaInfo(ctx)
	if err != nil {
		t.Fatalf("schema info: %v", err)
	}
	if !strings.Contains(info, "AVAILABLE DATA TABLES:") {
		t.Errorf("missing header: %q", info)
	}
	if !strings.Contains(info, "upload_sales") || !strings.Contains(info, "revenue") {
		t.Errorf("missing table details: %q", info)
	}
}

func TestSchemaInfoEmpty(t *testing.T) {
	s := openTestStore(t)

	info, err := s.SchemaInfo(context.Background())
	if err != nil {
		t.Fatalf("schema info: %v", err)
	}
	if !strings.Contains(info, "No uploaded data tables") {
		t.Errorf("got %q", info)
	}
}

func TestLoadTableRejectsEmpty(t *testing.T) {
	s := openTestStore(t)

	if err := s.LoadTable(context.Background(), "x", dataset.New(nil, nil)); err == nil {
		t.Fatal("expected error for a table without columns")
	}
	if err := s.LoadTable(context.Background(), "!!!", dataset.New([]string{"a"}, nil)); err == nil {
		t.Fatal("expected error for an unsanitizable table name")
	}
}

func TestSanitizeIdent(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"Sales Q3.csv", "salesq3csv"},
		{"upload_2024", "upload_2024"},
		{"DROP TABLE x;--", "droptablex"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeIdent(tc.raw); got != tc.want {
			t.Errorf("SanitizeIdent(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
