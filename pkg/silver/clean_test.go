package silver

import (
	"errors"
	"reflect"
	"testing"

	"medallion/pkg/schema"
)

func employeeTable(rows ...[]string) *schema.Table {
	t := schema.NewTable(schema.ColumnNames())
	t.Rows = rows
	return t
}

func row(id, name, age, dept, role, salary, exp, city string) []string {
	return []string{id, name, age, dept, role, salary, exp, city}
}

func TestCoerceTypedRecord(t *testing.T) {
	in := employeeTable(row("1", "Ada", "36", "IT", "Engineer", "95000", "12", "London"))

	employees, drops := Coerce(in)
	if len(drops) != 0 {
		t.Fatalf("unexpected drops: %v", drops)
	}
	want := schema.Employee{
		ID: 1, Name: "Ada", Age: 36, Department: "IT", Role: "Engineer",
		Salary: 95000, ExperienceYears: 12, City: "London",
	}
	if !reflect.DeepEqual(employees[0], want) {
		t.Fatalf("got %+v, want %+v", employees[0], want)
	}
}

func TestCoerceTruncatesFractionalFill(t *testing.T) {
	in := employeeTable(row("1", "Ada", "35.5", "IT", "Engineer", "95000", "12", "London"))

	employees, drops := Coerce(in)
	if len(drops) != 0 {
		t.Fatalf("unexpected drops: %v", drops)
	}
	if employees[0].Age != 35 {
		t.Fatalf("expected truncation to 35, got %d", employees[0].Age)
	}
}

func TestCoerceDropsUnparseableRecord(t *testing.T) {
	in := employeeTable(
		row("1", "Ada", "36", "IT", "Engineer", "95000", "12", "London"),
		row("2", "Grace", "not-a-number", "IT", "Analyst", "80000", "8", "Boston"),
	)

	employees, drops := Coerce(in)
	if len(employees) != 1 || employees[0].Name != "Ada" {
		t.Fatalf("expected only Ada retained, got %v", employees)
	}
	if len(drops) != 1 {
		t.Fatalf("expected 1 drop, got %v", drops)
	}
	if drops[0].Row != 2 || drops[0].Column != schema.ColAge || drops[0].RawValue != "not-a-number" {
		t.Fatalf("unexpected drop: %+v", drops[0])
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	employees := []schema.Employee{
		{ID: 1, Name: "Ada", Age: 36, Salary: 95000, ExperienceYears: 12},
		{ID: 2, Name: "Kid", Age: 15, Salary: 0, ExperienceYears: -1},
	}

	valid, rejections := Validate(employees)
	if len(valid) != 1 || valid[0].Name != "Ada" {
		t.Fatalf("expected only Ada retained, got %v", valid)
	}
	if len(rejections) != 1 {
		t.Fatalf("expected 1 rejection, got %v", rejections)
	}
	rej := rejections[0]
	if rej.EmployeeID != 2 || rej.Name != "Kid" {
		t.Fatalf("unexpected rejection identity: %+v", rej)
	}
	wantRules := []Rule{RuleMinimumAge, RulePositiveSalary, RuleNonNegativeExperience}
	if len(rej.Violations) != len(wantRules) {
		t.Fatalf("expected %d violations, got %v", len(wantRules), rej.Violations)
	}
	for i, want := range wantRules {
		if rej.Violations[i].Rule != want {
			t.Fatalf("violation %d: got %q, want %q", i, rej.Violations[i].Rule, want)
		}
	}
}

func TestCleanEndToEnd(t *testing.T) {
	raw := schema.NewTable([]string{"ID", "Name", "Age", "Department", "Role", "Salary", "experienceYears", "City"})
	raw.Rows = [][]string{
		row("1", "Ada", "30", "IT", "Engineer", "95000", "12", "London"),
		row("2", "Grace", "40", "IT", "Analyst", "80000", "8", "Boston"),
		row("3", "Linus", "50", "Sales", "Manager", "", "20", "Boston"),
		row("3", "Linus", "50", "Sales", "Manager", "", "20", "Boston"),
		row("4", "Kid", "15", "IT", "Intern", "10000", "0", "Boston"),
	}

	result, err := Clean(raw)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stats := result.Stats
	if stats.OriginalCount != 5 {
		t.Errorf("OriginalCount = %d, want 5", stats.OriginalCount)
	}
	if stats.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	if stats.InvalidRemoved != 1 {
		t.Errorf("InvalidRemoved = %d, want 1", stats.InvalidRemoved)
	}
	if stats.FinalCount != 3 {
		t.Errorf("FinalCount = %d, want 3", stats.FinalCount)
	}
	if stats.RetentionRate != 0.6 {
		t.Errorf("RetentionRate = %v, want 0.6", stats.RetentionRate)
	}

	// The missing salaries (a duplicated pair) take the column median over
	// 95000, 80000 and 10000, then the duplicate collapses. Imputation runs
	// before validation, so the later-rejected record still contributes.
	if stats.MissingValuesFilled[schema.ColSalary] != 2 {
		t.Errorf("salary fills = %d, want 2", stats.MissingValuesFilled[schema.ColSalary])
	}
	var linus *schema.Employee
	for i := range result.Employees {
		if result.Employees[i].Name == "Linus" {
			linus = &result.Employees[i]
		}
	}
	if linus == nil {
		t.Fatal("Linus missing from cleaned records")
	}
	if linus.Salary != 80000 {
		t.Errorf("median fill = %d, want 80000", linus.Salary)
	}

	if len(result.Rejections) != 1 || result.Rejections[0].Name != "Kid" {
		t.Errorf("unexpected rejections: %v", result.Rejections)
	}
	if result.HeaderRenames["experienceYears"] != schema.ColExperienceYears {
		t.Errorf("expected experienceYears rename, got %v", result.HeaderRenames)
	}
	if got := result.Table.Columns; !reflect.DeepEqual(got, schema.ColumnNames()) {
		t.Errorf("output columns = %v", got)
	}
}

func TestCleanMissingRequiredColumn(t *testing.T) {
	raw := schema.NewTable([]string{"id", "name", "age"})
	raw.Rows = [][]string{{"1", "Ada", "36"}}

	_, err := Clean(raw)
	if !errors.Is(err, schema.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	result, err := Clean(employeeTable())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Stats.FinalCount != 0 || result.Stats.RetentionRate != 0 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Table.Rows) != 0 {
		t.Fatalf("expected empty table, got %v", result.Table.Rows)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	raw := employeeTable(
		row("1", "Ada", "30", "IT", "Engineer", "95000", "12", "London"),
		row("2", "Grace", "40", "IT", "Analyst", "80000", "8", "Boston"),
	)

	first, err := Clean(raw)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Clean(first.Table)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Table, second.Table) {
		t.Fatalf("second pass changed output:\nfirst:  %v\nsecond: %v", first.Table, second.Table)
	}
	if second.Stats.DuplicatesRemoved != 0 || second.Stats.InvalidRemoved != 0 || second.Stats.TotalFilled() != 0 {
		t.Fatalf("second pass reported work: %+v", second.Stats)
	}
}
