package dataset

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when coercing a date column. Anything that
// matches none of them becomes the zero time and drops out of date-range
// filtering only.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// Normalize produces a cleaned copy of the table: lower-cased and trimmed
// headers, exact-duplicate rows removed. The input table is not modified.
func Normalize(t *Table) *Table {
	if t == nil {
		return New(nil, nil)
	}

	columns := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = strings.ToLower(strings.TrimSpace(col))
	}

	seen := make(map[string]struct{}, len(t.Rows))
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}

	return New(columns, rows)
}

// ParseDates coerces the given column into per-row dates. Unparseable cells
// become the zero time.
func ParseDates(t *Table, col string) {
	t.Dates = make([]time.Time, len(t.Rows))
	if _, ok := t.Col(col); !ok {
		return
	}
	for i := range t.Rows {
		t.Dates[i] = parseDate(t.Value(i, col))
	}
}

func parseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// FilterWindow keeps rows whose parsed date falls within [now-days, now].
// Tables without a parsed date column are returned unchanged: no date
// signal means no filtering, not an empty result.
func FilterWindow(t *Table, days int, now time.Time) *Table {
	if t == nil {
		return New(nil, nil)
	}
	if len(t.Dates) == 0 {
		return t
	}
	cutoff := now.AddDate(0, 0, -days)

	rows := make([][]string, 0, len(t.Rows))
	dates := make([]time.Time, 0, len(t.Rows))
	for i, row := range t.Rows {
		d := t.Dates[i]
		if d.IsZero() || d.Before(cutoff) || d.After(now) {
			continue
		}
		rows = append(rows, row)
		dates = append(dates, d)
	}

	out := New(t.Columns, rows)
	out.Dates = dates
	return out
}

// EmptySales returns a zero-row table with the canonical sales columns, so
// downstream code never branches on "does this dataset exist".
func EmptySales() *Table {
	return New([]string{"date", "item_id", "quantity", "price", "profit"}, nil)
}

// EmptyInventory returns a zero-row table with the canonical inventory columns.
func EmptyInventory() *Table {
	return New([]string{"item_id", "stock", "reorder_point", "cost"}, nil)
}
