package silver

import (
	"strconv"

	"medallion/pkg/schema"
)

// CoercionDrop records one row excluded because a required numeric field
// could not be converted to an integer. Dropped rows are never silent: every
// drop carries the offending column and raw value for the audit trail.
type CoercionDrop struct {
	Row      int    `json:"row"`
	Column   string `json:"column"`
	RawValue string `json:"rawValue"`
}

// Coerce converts table rows into typed employee records: id, age, salary
// and experience_years become integers, the remaining fields stay text. A
// fractional numeric value (an even-count median fill such as "35.5") is
// truncated toward zero. A value that is not numeric at all drops the record
// with an audit entry; the run continues.
func Coerce(t *schema.Table) ([]schema.Employee, []CoercionDrop) {
	idx := func(name string) int { return t.ColumnIndex(name) }
	colID := idx(schema.ColID)
	colName := idx(schema.ColName)
	colAge := idx(schema.ColAge)
	colDepartment := idx(schema.ColDepartment)
	colRole := idx(schema.ColRole)
	colSalary := idx(schema.ColSalary)
	colExperience := idx(schema.ColExperienceYears)
	colCity := idx(schema.ColCity)

	employees := make([]schema.Employee, 0, len(t.Rows))
	var drops []CoercionDrop

	for i, row := range t.Rows {
		rowNum := i + 1
		emp := schema.Employee{
			Name:       row[colName],
			Department: row[colDepartment],
			Role:       row[colRole],
			City:       row[colCity],
		}

		dropped := false
		for _, field := range []struct {
			column string
			cell   string
			target *int
		}{
			{schema.ColID, row[colID], &emp.ID},
			{schema.ColAge, row[colAge], &emp.Age},
			{schema.ColSalary, row[colSalary], &emp.Salary},
			{schema.ColExperienceYears, row[colExperience], &emp.ExperienceYears},
		} {
			value, ok := coerceInt(field.cell)
			if !ok {
				drops = append(drops, CoercionDrop{
					Row:      rowNum,
					Column:   field.column,
					RawValue: field.cell,
				})
				dropped = true
				break
			}
			*field.target = value
		}
		if dropped {
			continue
		}

		employees = append(employees, emp)
	}

	return employees, drops
}

// coerceInt parses an integer, accepting float renderings by truncating
// toward zero.
func coerceInt(s string) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}
