// Package silver turns an arbitrary raw employee-shaped table into a table
// guaranteed to satisfy the business invariants: no empty fields, age >= 18,
// salary > 0, experience_years >= 0, no exact-duplicate rows, and integer
// fields that are really integers.
//
// The steps run in a fixed order because later steps depend on earlier
// guarantees: header normalization, schema projection, missing-value
// imputation, exact-duplicate removal, type coercion, business-rule
// validation. Every step is a pure function returning its output and its own
// statistics; Clean composes them.
package silver

import (
	"medallion/pkg/schema"
)

// Result is the output contract of a cleaning run: the cleaned table, the
// typed records it renders, composed statistics, and the full audit trail of
// what was renamed, dropped and rejected.
type Result struct {
	Table         *schema.Table     `json:"-"`
	Employees     []schema.Employee `json:"-"`
	Stats         CleanStats        `json:"stats"`
	HeaderRenames map[string]string `json:"headerRenames,omitempty"`
	CoercionDrops []CoercionDrop    `json:"coercionDrops,omitempty"`
	Rejections    []Rejection       `json:"rejections,omitempty"`
}

// Clean runs the full cleaning sequence over a raw table. It fails fast with
// schema.ErrSchemaMismatch when a required column is absent after header
// normalization; record-level problems (unparseable numerics, rule
// violations) drop only the offending record and are reported individually.
func Clean(raw *schema.Table) (*Result, error) {
	normalized, renames := schema.NormalizeHeaders(raw)

	// Columns outside the employee schema are ignored; a required column
	// missing here would poison every downstream coercion, so it aborts the
	// stage before any imputation runs.
	projected, err := normalized.Project(schema.ColumnNames())
	if err != nil {
		return nil, err
	}

	imputed, fills := ImputeMissing(projected)
	deduped, duplicatesRemoved := Dedupe(imputed)
	employees, coercionDrops := Coerce(deduped)
	valid, rejections := Validate(employees)

	cleaned := schema.NewTable(schema.ColumnNames())
	cleaned.Rows = make([][]string, len(valid))
	for i, emp := range valid {
		cleaned.Rows[i] = emp.Fields()
	}

	stats := CleanStats{
		OriginalCount:       len(raw.Rows),
		DuplicatesRemoved:   duplicatesRemoved,
		InvalidRemoved:      len(rejections),
		CoercionDropped:     len(coercionDrops),
		MissingValuesFilled: fills,
		FinalCount:          len(valid),
	}
	if stats.OriginalCount > 0 {
		stats.RetentionRate = float64(stats.FinalCount) / float64(stats.OriginalCount)
	}

	return &Result{
		Table:         cleaned,
		Employees:     valid,
		Stats:         stats,
		HeaderRenames: renames,
		CoercionDrops: coercionDrops,
		Rejections:    rejections,
	}, nil
}
