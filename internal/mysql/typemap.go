// Package mysql renders MySQL DDL and DML from SQLite table metadata
// and row values.
package mysql

import "strings"

// MapType converts a SQLite declared column type to a MySQL type name.
// SQLite declared types are free-form, so classification is by
// case-insensitive substring with a fixed priority; the first match
// wins. The ordering matters: "varchar" contains "char" but none of
// the earlier keywords, so the char rule stays reachable.
func MapType(declared string) string {
	t := strings.ToLower(declared)
	switch {
	case strings.Contains(t, "int"):
		return "INT"
	case strings.Contains(t, "text"):
		return "TEXT"
	case strings.Contains(t, "real"), strings.Contains(t, "float"), strings.Contains(t, "double"):
		// Fixed scale: SQLite carries no precision to transfer.
		return "DECIMAL(10,2)"
	case strings.Contains(t, "blob"):
		return "BLOB"
	case strings.Contains(t, "char"):
		// Preserve length qualifiers, e.g. varchar(50) -> VARCHAR(50).
		return strings.ToUpper(declared)
	default:
		// Untyped and unrecognized columns are legal in SQLite.
		return "TEXT"
	}
}
