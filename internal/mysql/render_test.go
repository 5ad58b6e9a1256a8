package mysql

import (
	"strings"
	"testing"

	"github.com/dbconvert/sqlite2mysql/internal/schema"
)

func itemsTable() *schema.Table {
	return &schema.Table{
		Name: "items",
		Columns: []schema.Column{
			{OrdinalPos: 0, Name: "id", DeclaredType: "INTEGER", IsPrimaryKey: true},
			{OrdinalPos: 1, Name: "name", DeclaredType: "TEXT", NotNull: true},
			{OrdinalPos: 2, Name: "price", DeclaredType: "REAL"},
		},
	}
}

func TestCreateTable(t *testing.T) {
	want := "CREATE TABLE `items` (\n" +
		"  `id` INT PRIMARY KEY AUTO_INCREMENT,\n" +
		"  `name` TEXT NOT NULL,\n" +
		"  `price` DECIMAL(10,2)\n" +
		");"

	if got := CreateTable(itemsTable()); got != want {
		t.Errorf("CreateTable mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCreateTableNoAutoIncrementForTextPK(t *testing.T) {
	tbl := &schema.Table{
		Name: "tags",
		Columns: []schema.Column{
			{Name: "slug", DeclaredType: "TEXT", IsPrimaryKey: true},
		},
	}

	got := CreateTable(tbl)
	if !strings.Contains(got, "PRIMARY KEY") {
		t.Errorf("expected PRIMARY KEY in:\n%s", got)
	}
	if strings.Contains(got, "AUTO_INCREMENT") {
		t.Errorf("non-integer PK must not get AUTO_INCREMENT:\n%s", got)
	}
}

func TestCreateTableNotNullSuppressedOnPK(t *testing.T) {
	tbl := &schema.Table{
		Name: "events",
		Columns: []schema.Column{
			{Name: "id", DeclaredType: "INTEGER", NotNull: true, IsPrimaryKey: true},
		},
	}

	got := CreateTable(tbl)
	if strings.Contains(got, "NOT NULL") {
		t.Errorf("primary key column must not repeat NOT NULL:\n%s", got)
	}
}

func TestCreateTableDefault(t *testing.T) {
	tbl := &schema.Table{
		Name: "settings",
		Columns: []schema.Column{
			{Name: "retries", DeclaredType: "INTEGER", HasDefault: true, Default: "3"},
			{Name: "created_at", DeclaredType: "DATETIME", HasDefault: true, Default: "CURRENT_TIMESTAMP"},
		},
	}

	got := CreateTable(tbl)
	if !strings.Contains(got, "`retries` INT DEFAULT 3") {
		t.Errorf("expected verbatim numeric default in:\n%s", got)
	}
	if !strings.Contains(got, "DEFAULT CURRENT_TIMESTAMP") {
		t.Errorf("expected verbatim default literal in:\n%s", got)
	}
}

func TestInsert(t *testing.T) {
	tbl := itemsTable()

	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{
			"plain row",
			[]any{int64(1), "Tea", 3.5},
			"INSERT INTO `items` (`id`, `name`, `price`) VALUES (1, 'Tea', 3.5);",
		},
		{
			"quote escaping and null",
			[]any{int64(2), "O'Brien's Mug", nil},
			"INSERT INTO `items` (`id`, `name`, `price`) VALUES (2, 'O''Brien''s Mug', NULL);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Insert(tbl, tt.values); got != tt.want {
				t.Errorf("Insert mismatch:\ngot:  %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"int64", int64(42), "42"},
		{"negative int64", int64(-7), "-7"},
		{"float", 3.5, "3.5"},
		{"float no trailing zeros", 2.0, "2"},
		{"string", "hello", "'hello'"},
		{"string with quote", "it's", "'it''s'"},
		{"string all quotes", "'''", "''''''''"},
		{"empty string", "", "''"},
		{"blob", []byte{0xde, 0xad, 0xbe, 0xef}, "X'DEADBEEF'"},
		{"empty blob", []byte{}, "X''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Literal(tt.value); got != tt.want {
				t.Errorf("Literal(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestLiteralQuoteRoundTrip(t *testing.T) {
	inputs := []string{"O'Brien", "''", "a'b'c", "no quotes", "'"}
	for _, in := range inputs {
		lit := Literal(in)
		if !strings.HasPrefix(lit, "'") || !strings.HasSuffix(lit, "'") {
			t.Fatalf("literal %q not quoted", lit)
		}
		// Reverse the escaping: strip outer quotes, halve doubled quotes.
		back := strings.ReplaceAll(lit[1:len(lit)-1], "''", "'")
		if back != in {
			t.Errorf("round trip failed: %q -> %q -> %q", in, lit, back)
		}
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := QuoteIdentifier("users"); got != "`users`" {
		t.Errorf("QuoteIdentifier = %q", got)
	}
	if got := QuoteIdentifier("odd`name"); got != "`odd``name`" {
		t.Errorf("embedded backtick not doubled: %q", got)
	}
}
