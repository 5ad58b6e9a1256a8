// Package schema holds the source table metadata read from a SQLite
// database and used to generate the target DDL.
package schema

import (
	"fmt"
	"strings"
)

// Table represents a source table's metadata.
type Table struct {
	Name     string   `json:"name"`
	Columns  []Column `json:"columns"`
	RowCount int64    `json:"row_count"`
}

// HasPK returns true if the table has a primary key column.
func (t *Table) HasPK() bool {
	for _, col := range t.Columns {
		if col.IsPrimaryKey {
			return true
		}
	}
	return false
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column represents a table column's metadata as reported by
// PRAGMA table_info. DeclaredType is advisory only: SQLite does not
// enforce a physical type per column, so runtime values may disagree
// with it. Value rendering never consults DeclaredType.
type Column struct {
	OrdinalPos   int    `json:"ordinal_position"`
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type"`
	NotNull      bool   `json:"not_null"`
	Default      string `json:"default,omitempty"`
	HasDefault   bool   `json:"has_default"`
	IsPrimaryKey bool   `json:"is_primary_key"`
}

// IsIntegerType returns true if the declared type carries SQLite
// integer affinity ("INT" appearing anywhere in the type name).
func (c *Column) IsIntegerType() bool {
	return strings.Contains(strings.ToLower(c.DeclaredType), "int")
}

// ValidateIdentifier checks that a catalog-reported table or column
// name can be embedded in a quoted identifier. SQLite accepts nearly
// any name (spaces, leading digits, unicode), and both the source
// queries and the rendered MySQL quote identifiers with embedded-quote
// doubling, so only names that cannot be quoted at all are rejected.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	if len(name) > 128 {
		return fmt.Errorf("identifier too long: %d characters (max 128)", len(name))
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("identifier contains NUL byte: %q", name)
	}

	return nil
}
