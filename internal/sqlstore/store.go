package sqlstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/biznexus-ai/backend/internal/config"
	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// maxQueryRows bounds ad-hoc query results fed back into prompts.
const maxQueryRows = 200

// Store holds uploaded tables in a relational database so agents can answer
// questions with real SQL. The default backend is a local SQLite file; a
// Postgres DSN switches drivers.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the configured backend.
func Open(cfg config.StoreConfig) (*Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite"
	}

	db, err := sqlx.Connect(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", driver, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	log := logger.Component("sqlstore")
	log.Info().Str("driver", driver).Msg("store opened")
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadTable replaces tableName with the given dataset, all columns typed as
// TEXT. Table and column names are sanitized to identifier-safe form.
func (s *Store) LoadTable(ctx context.Context, tableName string, t *dataset.Table) error {
	name := SanitizeIdent(tableName)
	if name == "" {
		return fmt.Errorf("invalid table name %q", tableName)
	}
	if t == nil || len(t.Columns) == 0 {
		return fmt.Errorf("dataset for table %q has no columns", tableName)
	}

	cols := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		ident := SanitizeIdent(col)
		if ident == "" {
			ident = fmt.Sprintf("col_%d", i)
		}
		cols[i] = ident
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, name)); err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}

	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = fmt.Sprintf("%q TEXT", col)
	}
	createStmt := fmt.Sprintf(`CREATE TABLE %q (%s)`, name, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = s.placeholder(i + 1)
	}
	insertStmt := fmt.Sprintf(`INSERT INTO %q VALUES (%s)`, name, strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("prepare insert for %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, len(cols))
		for i := range cols {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load for %s: %w", name, err)
	}
	return nil
}

// Query executes a raw SQL string and returns column names plus stringified
// rows, capped at maxQueryRows.
func (s *Store) Query(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read query columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		if len(out) >= maxQueryRows {
			break
		}
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, nil, fmt.Errorf("scan query row: %w", err)
		}
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = stringify(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate query rows: %w", err)
	}

	return cols, out, nil
}

// SchemaInfo summarizes all uploaded tables and their columns as a prompt
// block for the SQL-capable agents.
func (s *Store) SchemaInfo(ctx context.Context) (string, error) {
	tables, err := s.listTables(ctx)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "No uploaded data tables found.", nil
	}

	var b strings.Builder
	b.WriteString("AVAILABLE DATA TABLES:\n")
	for _, table := range tables {
		cols, err := s.tableColumns(ctx, table)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "- Table `%s` has columns: %s\n", table, strings.Join(cols, ", "))
	}
	return b.String(), nil
}

func (s *Store) listTables(ctx context.Context) ([]string, error) {
	var query string
	switch s.driver {
	case "postgres":
		query = `SELECT tablename FROM pg_tables WHERE schemaname = 'public'`
	default:
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	}

	var tables []string
	if err := s.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(tables)
	return tables, nil
}

func (s *Store) tableColumns(ctx context.Context, table string) ([]string, error) {
	name := SanitizeIdent(table)

	if s.driver == "postgres" {
		var cols []string
		err := s.db.SelectContext(ctx, &cols,
			`SELECT column_name FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position`, name)
		if err != nil {
			return nil, fmt.Errorf("columns for %s: %w", name, err)
		}
		return cols, nil
	}

	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, name))
	if err != nil {
		return nil, fmt.Errorf("columns for %s: %w", name, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan column info for %s: %w", name, err)
		}
		// PRAGMA table_info rows are (cid, name, type, notnull, dflt, pk).
		if len(raw) > 1 {
			if colName := stringify(raw[1]); colName != "" {
				cols = append(cols, colName)
			}
		}
	}
	return cols, rows.Err()
}

// SanitizeIdent keeps lower-case letters, digits, and underscores so names
// taken from uploaded filenames can't break out of an identifier position.
func SanitizeIdent(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *Store) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
