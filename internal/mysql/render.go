package mysql

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dbconvert/sqlite2mysql/internal/schema"
)

// QuoteIdentifier wraps a MySQL identifier in backticks, doubling any
// embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// ColumnList renders a quoted, comma-separated column name list.
func ColumnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

// CreateTable renders the CREATE TABLE statement for a table.
func CreateTable(t *schema.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", QuoteIdentifier(t.Name))

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		defs[i] = "  " + columnDef(col)
	}
	b.WriteString(strings.Join(defs, ",\n"))
	b.WriteString("\n);")
	return b.String()
}

// columnDef renders one column definition line.
func columnDef(col schema.Column) string {
	var b strings.Builder
	b.WriteString(QuoteIdentifier(col.Name))
	b.WriteByte(' ')
	b.WriteString(MapType(col.DeclaredType))

	if col.NotNull && !col.IsPrimaryKey {
		b.WriteString(" NOT NULL")
	}
	if col.IsPrimaryKey {
		b.WriteString(" PRIMARY KEY")
		if col.IsIntegerType() {
			b.WriteString(" AUTO_INCREMENT")
		}
	}
	if col.HasDefault {
		// The default is emitted exactly as SQLite reported it.
		b.WriteString(" DEFAULT ")
		b.WriteString(col.Default)
	}
	return b.String()
}

// Insert renders one INSERT statement. The column list comes from the
// table's authoritative metadata, never from the row itself, so every
// INSERT for a table names the same columns in the same order. values
// must be positional matches for t.Columns.
func Insert(t *schema.Table, values []any) string {
	literals := make([]string, len(values))
	for i, v := range values {
		literals[i] = Literal(v)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		QuoteIdentifier(t.Name), ColumnList(t.ColumnNames()), strings.Join(literals, ", "))
}

// Literal renders one cell as a MySQL literal. Rendering follows the
// cell's runtime type, not the column's declared type: SQLite lets the
// two disagree per row.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return quoteString(val)
	case []byte:
		// Hex literal keeps binary data reversible on import.
		return "X'" + strings.ToUpper(hex.EncodeToString(val)) + "'"
	default:
		return quoteString(fmt.Sprintf("%v", val))
	}
}

// quoteString single-quotes s, doubling embedded single quotes.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
