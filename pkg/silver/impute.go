package silver

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// UnknownSentinel fills a categorical column that has no non-missing values.
const UnknownSentinel = "Unknown"

// ImputeMissing fills empty cells column by column and reports the number of
// fills per column. The strategy is fixed by the declared schema, never
// inferred from the data:
//   - numeric columns take the column median over non-missing parseable
//     values, computed before any other numeric mutation
//   - categorical columns take the column mode (ties resolve to the
//     lexicographically smallest value), or "Unknown" when the column is
//     entirely missing
//
// A numeric column whose non-missing values are all unparseable is left
// unfilled; the coercion step audits those rows individually.
func ImputeMissing(t *schema.Table) (*schema.Table, map[string]int) {
	out := t.Clone()
	fills := make(map[string]int)

	for colIdx, col := range out.Columns {
		missing := 0
		for _, row := range out.Rows {
			if row[colIdx] == "" {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		colType, ok := schema.ColumnType(col)
		if !ok {
			colType = schema.TypeCategorical
		}

		var fill string
		var haveFill bool
		if colType == schema.TypeNumeric {
			fill, haveFill = columnMedian(out, colIdx)
		} else {
			fill = columnMode(out, colIdx)
			haveFill = true
		}
		if !haveFill {
			continue
		}

		for _, row := range out.Rows {
			if row[colIdx] == "" {
				row[colIdx] = fill
				fills[col]++
			}
		}
	}

	return out, fills
}

// columnMedian computes the median of the parseable non-missing values in a
// column and renders it in its shortest form ("40", or "35.5" for an
// even-count midpoint).
func columnMedian(t *schema.Table, colIdx int) (string, bool) {
	var values []float64
	for _, row := range t.Rows {
		cell := row[colIdx]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return "", false
	}

	sort.Float64s(values)
	mid := len(values) / 2
	var median float64
	if len(values)%2 == 1 {
		median = values[mid]
	} else {
		median = (values[mid-1] + values[mid]) / 2
	}

	return decimal.NewFromFloat(median).String(), true
}

// columnMode returns the most frequent non-missing value in a column, the
// lexicographically smallest on ties, or "Unknown" for an all-missing column.
func columnMode(t *schema.Table, colIdx int) string {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if cell := row[colIdx]; cell != "" {
			counts[cell]++
		}
	}
	if len(counts) == 0 {
		return UnknownSentinel
	}

	mode := ""
	best := 0
	for value, n := range counts {
		if n > best || (n == best && value < mode) {
			mode = value
			best = n
		}
	}
	return mode
}
