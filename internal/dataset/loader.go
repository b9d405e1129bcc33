package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a tabular file into a Table based on its extension. Supported
// formats: delimited text (.csv), spreadsheet (.xlsx/.xls), and
// record-oriented JSON (.json).
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xls":
		return loadXLSX(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Base(path))
	}
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return New(nil, nil), nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line; skip it rather than losing the whole file.
			continue
		}
		rows = append(rows, record)
	}

	return New(header, rows), nil
}

// loadXLSX reads the first sheet of a spreadsheet, header row first.
func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return New(nil, nil), nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return New(nil, nil), nil
	}

	return New(rows[0], rows[1:]), nil
}

// loadJSON accepts an array of flat objects. Columns are the union of keys
// in first-seen order so partially filled records still line up.
func loadJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records in %s: %w", path, err)
	}

	records := make([]map[string]any, 0, len(raw))
	var columns []string
	seen := make(map[string]struct{})
	for _, msg := range raw {
		var rec map[string]any
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		records = append(records, rec)
		// Go maps don't keep key order, so recover the declared column
		// order from the raw object. Order matters for positional fallback.
		for _, key := range objectKeys(msg) {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = stringifyCell(rec[col])
		}
		rows = append(rows, row)
	}

	return New(columns, rows), nil
}

// objectKeys walks a raw JSON object and returns its top-level keys in
// declaration order.
func objectKeys(msg json.RawMessage) []string {
	dec := json.NewDecoder(strings.NewReader(string(msg)))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		keys = append(keys, key)
		// Skip the value belonging to this key.
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			break
		}
	}
	return keys
}

func stringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
