package silver

import (
	"strings"

	"medallion/pkg/schema"
)

// Dedupe removes rows that are byte-for-byte identical across all fields,
// keeping the first occurrence in original row order. It returns the number
// of rows dropped.
func Dedupe(t *schema.Table) (*schema.Table, int) {
	out := schema.NewTable(t.Columns)
	seen := make(map[string]bool, len(t.Rows))
	removed := 0

	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		copied := make([]string, len(row))
		copy(copied, row)
		out.Rows = append(out.Rows, copied)
	}

	return out, removed
}
