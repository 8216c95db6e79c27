package gold

import (
	"testing"

	"medallion/pkg/schema"
)

func TestBandLabelExperienceBoundaries(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{0, "Entry (0-2yr)"},
		{2, "Entry (0-2yr)"},
		{3, "Junior (3-5yr)"},
		{5, "Junior (3-5yr)"},
		{6, "Mid (6-10yr)"},
		{10, "Mid (6-10yr)"},
		{11, "Senior (11-15yr)"},
		{15, "Senior (11-15yr)"},
		{16, "Expert (16+yr)"},
		{40, "Expert (16+yr)"},
	}
	for _, tt := range tests {
		if got := bandLabel(experienceBands, tt.years); got != tt.want {
			t.Errorf("bandLabel(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestBandLabelSalaryBoundaries(t *testing.T) {
	tests := []struct {
		salary int
		want   string
	}{
		{50000, "Entry ($50-70K)"},
		{70000, "Entry ($50-70K)"},
		{70001, "Mid ($70-90K)"},
		{90000, "Mid ($70-90K)"},
		{110000, "Senior ($90-110K)"},
		{130000, "Lead ($110-130K)"},
		{130001, "Executive ($130K+)"},
	}
	for _, tt := range tests {
		if got := bandLabel(salaryBands, tt.salary); got != tt.want {
			t.Errorf("bandLabel(%d) = %q, want %q", tt.salary, got, tt.want)
		}
	}
}

func TestTenureCategoryBoundaries(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{0, "New"},
		{3, "New"},
		{4, "Established"},
		{7, "Established"},
		{8, "Experienced"},
		{15, "Experienced"},
		{16, "Veteran"},
	}
	for _, tt := range tests {
		if got := TenureCategory(tt.years); got != tt.want {
			t.Errorf("TenureCategory(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestExperienceBandRowsPartitionInput(t *testing.T) {
	employees := []schema.Employee{
		{Salary: 50000, Age: 22, ExperienceYears: 1},
		{Salary: 60000, Age: 26, ExperienceYears: 4},
		{Salary: 80000, Age: 33, ExperienceYears: 8},
		{Salary: 110000, Age: 41, ExperienceYears: 14},
		{Salary: 140000, Age: 55, ExperienceYears: 25},
		{Salary: 65000, Age: 24, ExperienceYears: 2},
	}

	rows := ExperienceBandRows(employees)
	total := 0
	for _, r := range rows {
		total += r.TotalEmployees
	}
	if total != len(employees) {
		t.Fatalf("band counts sum to %d, want %d", total, len(employees))
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 occupied bands, got %d", len(rows))
	}
	if rows[0].Band != "Entry (0-2yr)" || rows[0].TotalEmployees != 2 {
		t.Fatalf("unexpected first band: %+v", rows[0])
	}
	if got := rows[0].AvgSalary.String(); got != "57500" {
		t.Fatalf("entry band avg salary = %s, want 57500", got)
	}
}

func TestBandRowsOmitEmptyBands(t *testing.T) {
	employees := []schema.Employee{
		{Salary: 140000, Age: 50, ExperienceYears: 20},
	}
	if rows := SalaryBandRows(employees); len(rows) != 1 || rows[0].Band != "Executive ($130K+)" {
		t.Fatalf("unexpected salary band rows: %v", rows)
	}
	if rows := ExperienceBandRows(employees); len(rows) != 1 || rows[0].Band != "Expert (16+yr)" {
		t.Fatalf("unexpected experience band rows: %v", rows)
	}
}
