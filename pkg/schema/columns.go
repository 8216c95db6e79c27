package schema

// SemanticType classifies a column for imputation and coercion purposes.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
)

// Canonical column names after header normalization.
const (
	ColID              = "id"
	ColName            = "name"
	ColAge             = "age"
	ColDepartment      = "department"
	ColRole            = "role"
	ColSalary          = "salary"
	ColExperienceYears = "experience_years"
	ColCity            = "city"
)

// Column declares one canonical column and its semantic type.
type Column struct {
	Name string       `json:"name"`
	Type SemanticType `json:"type"`
}

// EmployeeColumns is the declared schema of the employee table, in output
// order. The numeric/categorical split is fixed here rather than inferred
// from values, so the imputation strategy cannot vary between input files.
var EmployeeColumns = []Column{
	{Name: ColID, Type: TypeNumeric},
	{Name: ColName, Type: TypeCategorical},
	{Name: ColAge, Type: TypeNumeric},
	{Name: ColDepartment, Type: TypeCategorical},
	{Name: ColRole, Type: TypeCategorical},
	{Name: ColSalary, Type: TypeNumeric},
	{Name: ColExperienceYears, Type: TypeNumeric},
	{Name: ColCity, Type: TypeCategorical},
}

var columnTypes = func() map[string]SemanticType {
	m := make(map[string]SemanticType, len(EmployeeColumns))
	for _, c := range EmployeeColumns {
		m[c.Name] = c.Type
	}
	return m
}()

// ColumnType returns the declared semantic type of a canonical column.
// The second return is false for columns outside the employee schema.
func ColumnType(name string) (SemanticType, bool) {
	t, ok := columnTypes[name]
	return t, ok
}

// ColumnNames returns the canonical column names in output order.
func ColumnNames() []string {
	names := make([]string, len(EmployeeColumns))
	for i, c := range EmployeeColumns {
		names[i] = c.Name
	}
	return names
}
