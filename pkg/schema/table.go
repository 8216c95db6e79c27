package schema

import "fmt"

// Table is an ordered tabular snapshot: a column list plus rows whose cells
// align with the columns positionally. Transformation steps never mutate a
// table in place; they clone and return a new one.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable constructs an empty table with the given columns.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Project returns a new table containing exactly the requested columns, in
// the requested order. Columns outside the list are dropped; a missing
// required column is a schema mismatch.
func (t *Table) Project(columns []string) (*Table, error) {
	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			return nil, fmt.Errorf("%w: required column %q absent from input", ErrSchemaMismatch, col)
		}
		indexes[i] = idx
	}

	out := NewTable(columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		projected := make([]string, len(indexes))
		for j, idx := range indexes {
			if idx < len(row) {
				projected[j] = row[idx]
			}
		}
		out.Rows[i] = projected
	}
	return out, nil
}
