package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Table is an in-memory tabular dataset: a header plus string rows. All
// uploaded files (CSV, XLSX, JSON) are converted into this shape before any
// analytics run. Cell access is defensive: out-of-range or malformed cells
// degrade to zero values instead of failing.
type Table struct {
	Columns []string
	Rows    [][]string

	// Dates holds the parsed date per row once ParseDates has run. The zero
	// time marks an unparseable cell; such rows are skipped by date-range
	// filtering but still feed non-date aggregates.
	Dates []time.Time

	index map[string]int
}

// New builds a table from a header and rows. Rows shorter than the header
// are padded, longer ones truncated, so downstream access never bounds-checks.
func New(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns}
	t.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		} else if len(row) > len(columns) {
			row = row[:len(columns)]
		}
		t.Rows = append(t.Rows, row)
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		t.index[col] = i
	}
}

// Col returns the position of a column, or false when it is absent.
func (t *Table) Col(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the raw cell at (row, column name), or "" when either is
// out of range.
func (t *Table) Value(row int, col string) string {
	idx, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// Float parses the cell as a number, tolerating currency symbols, thousands
// separators and blanks. Anything unparseable (including NaN and Inf
// literals) comes back as 0.
func (t *Table) Float(row int, col string) float64 {
	return ParseNumber(t.Value(row, col))
}

// ParseNumber is the single numeric-coercion path for cell values.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', '₹', '€', '£', ' ':
			return -1
		}
		return r
	}, s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Date returns the parsed date for a row and whether it was parseable.
func (t *Table) Date(row int) (time.Time, bool) {
	if row < 0 || row >= len(t.Dates) {
		return time.Time{}, false
	}
	if t.Dates[row].IsZero() {
		return time.Time{}, false
	}
	return t.Dates[row], true
}
