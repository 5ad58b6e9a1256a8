// Package sqlite reads table structure and row data from a SQLite
// database file. It is the only package that talks to the source
// database; everything downstream works from the metadata and row
// values it produces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/dbconvert/sqlite2mysql/internal/logging"
	"github.com/dbconvert/sqlite2mysql/internal/schema"
)

// Reader reads schema metadata and rows from one SQLite database file.
// It owns the connection for its whole lifetime; Close releases it.
type Reader struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite database at path. The file must already exist:
// the driver would otherwise create an empty database and the export
// would silently produce nothing.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	// One connection is enough for a strictly sequential export and
	// avoids SQLITE_BUSY between metadata and row queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logging.Debug("Connected to SQLite source: %s", path)

	return &Reader{db: db, path: path}, nil
}

// Close closes the underlying connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Path returns the source file path.
func (r *Reader) Path() string {
	return r.path
}

// ListTables returns the names of all user tables sorted
// lexicographically. Internal sqlite_* tables are excluded. The
// ordering is part of the output contract, not an accident of the
// catalog scan.
func (r *Reader) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns returns column metadata for table in declaration order.
func (r *Reader) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	// PRAGMA cannot take bound parameters, so the name is validated
	// before interpolation even though it came from sqlite_master.
	if err := schema.ValidateIdentifier(table); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("querying columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			cid      int
			name     string
			declType string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column for %s: %w", table, err)
		}

		col := schema.Column{
			OrdinalPos:   cid,
			Name:         name,
			DeclaredType: declType,
			NotNull:      notNull != 0,
			IsPrimaryKey: pk > 0,
		}
		if dflt.Valid {
			col.Default = dflt.String
			col.HasDefault = true
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading columns for %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s: no columns (table dropped?)", table)
	}
	return columns, nil
}

// Table reads the full metadata for one table, including its row count.
func (r *Reader) Table(ctx context.Context, name string) (*schema.Table, error) {
	cols, err := r.Columns(ctx, name)
	if err != nil {
		return nil, err
	}

	count, err := r.RowCount(ctx, name)
	if err != nil {
		return nil, err
	}

	return &schema.Table{Name: name, Columns: cols, RowCount: count}, nil
}

// RowCount returns the number of rows in table.
func (r *Reader) RowCount(ctx context.Context, table string) (int64, error) {
	if err := schema.ValidateIdentifier(table); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdentifier(table))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", table, err)
	}
	return count, nil
}

// Rows starts a full scan of table in storage order, selecting exactly
// the given columns. The returned iterator is single-pass and must be
// fully consumed (or closed) before the next table is read.
func (r *Reader) Rows(ctx context.Context, table string, columns []schema.Column) (*RowIter, error) {
	if err := schema.ValidateIdentifier(table); err != nil {
		return nil, err
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		if err := schema.ValidateIdentifier(col.Name); err != nil {
			return nil, err
		}
		quoted[i] = quoteIdentifier(col.Name)
	}

	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(quoted, ", "), quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("scanning rows of %s: %w", table, err)
	}

	return &RowIter{rows: rows, width: len(columns), table: table}, nil
}

// RowIter streams the rows of one table. Each cell carries its runtime
// type as stored (nil, int64, float64, string or []byte), independent
// of the column's declared type.
type RowIter struct {
	rows  *sql.Rows
	width int
	table string
	err   error
}

// Next returns the next row, or nil when the scan is exhausted or
// fails. Check Err after a nil return.
func (it *RowIter) Next() []any {
	if it.err != nil || !it.rows.Next() {
		if err := it.rows.Err(); err != nil && it.err == nil {
			it.err = fmt.Errorf("scanning rows of %s: %w", it.table, err)
		}
		return nil
	}

	vals := make([]any, it.width)
	ptrs := make([]any, it.width)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := it.rows.Scan(ptrs...); err != nil {
		it.err = fmt.Errorf("scanning row of %s: %w", it.table, err)
		return nil
	}

	for i, v := range vals {
		vals[i] = normalizeValue(v)
	}
	return vals
}

// Err returns the first error hit during iteration, if any.
func (it *RowIter) Err() error {
	return it.err
}

// Close releases the underlying cursor.
func (it *RowIter) Close() error {
	return it.rows.Close()
}

// normalizeValue collapses driver-specific scan types into the five
// value kinds the renderer understands.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		// Declared DATE/DATETIME columns may scan as time.Time.
		return val.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}

// quoteIdentifier wraps a SQLite identifier in double quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
