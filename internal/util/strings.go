// Package util provides small helpers shared across the codebase.
package util

import "strings"

// SplitCSV splits a comma-separated flag value into its entries,
// trimming whitespace and dropping empty entries. Returns nil for an
// empty input.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
