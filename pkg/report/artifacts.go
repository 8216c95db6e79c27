// Package report renders pipeline results into their output artifacts: the
// Gold CSV datasets, the executive summary text report, and run-statistics
// JSON. It never recomputes a measure; it only formats what the engines
// produced.
package report

import (
	"fmt"
	"path/filepath"
	"strconv"

	"medallion/pkg/gold"
	"medallion/pkg/parser"
	"medallion/pkg/schema"
)

// Gold artifact file names.
const (
	FileDepartmentMetrics    = "department_metrics.csv"
	FileRoleMetrics          = "role_metrics.csv"
	FileCityMetrics          = "city_metrics.csv"
	FileExperienceBands      = "experience_bands.csv"
	FileSalaryBands          = "salary_bands.csv"
	FileDepartmentRoleMatrix = "department_role_matrix.csv"
	FileFeatures             = "ai_ml_features.csv"
	FileExecutiveSummary     = "executive_summary.txt"
)

// TopEarnersFile returns the ranking artifact name for a given N
// ("top_5_earners.csv" for the default).
func TopEarnersFile(n int) string {
	return fmt.Sprintf("top_%d_earners.csv", n)
}

// WriteGold writes all Gold artifacts into dir and returns the number of CSV
// datasets written. Any failure aborts without leaving a partial file.
func WriteGold(dir string, result *gold.Result, topN int) (int, error) {
	if topN <= 0 {
		topN = gold.DefaultTopN
	}

	datasets := []struct {
		name  string
		table *schema.Table
	}{
		{FileDepartmentMetrics, DepartmentTable(result.Departments)},
		{FileRoleMetrics, RoleTable(result.Roles)},
		{FileCityMetrics, CityTable(result.Cities)},
		{TopEarnersFile(topN), TopEarnerTable(result.TopEarners)},
		{FileExperienceBands, ExperienceBandTable(result.ExperienceBands)},
		{FileSalaryBands, SalaryBandTable(result.SalaryBands)},
		{FileDepartmentRoleMatrix, MatrixTable(result.DepartmentRoles)},
		{FileFeatures, FeatureTable(result.Features)},
	}

	written := 0
	for _, ds := range datasets {
		if err := parser.WriteFile(filepath.Join(dir, ds.name), ds.table); err != nil {
			return written, fmt.Errorf("write %s: %w", ds.name, err)
		}
		written++
	}

	if err := WriteExecutiveSummary(filepath.Join(dir, FileExecutiveSummary), result.Summary); err != nil {
		return written, fmt.Errorf("write %s: %w", FileExecutiveSummary, err)
	}

	return written, nil
}

// DepartmentTable renders the department view as a CSV table.
func DepartmentTable(rows []gold.DepartmentSummary) *schema.Table {
	t := schema.NewTable([]string{
		"department", "total_employees", "avg_salary", "min_salary", "max_salary",
		"total_payroll", "avg_age", "avg_experience_years", "salary_range",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Department,
			strconv.Itoa(r.TotalEmployees),
			r.AvgSalary.String(),
			strconv.Itoa(r.MinSalary),
			strconv.Itoa(r.MaxSalary),
			strconv.FormatInt(r.TotalPayroll, 10),
			r.AvgAge.String(),
			r.AvgExperienceYears.String(),
			strconv.Itoa(r.SalaryRange),
		})
	}
	return t
}

// RoleTable renders the role view as a CSV table.
func RoleTable(rows []gold.RoleSummary) *schema.Table {
	t := schema.NewTable([]string{
		"role", "total_employees", "avg_salary", "avg_experience_years", "avg_age",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Role,
			strconv.Itoa(r.TotalEmployees),
			r.AvgSalary.String(),
			r.AvgExperienceYears.String(),
			r.AvgAge.String(),
		})
	}
	return t
}

// CityTable renders the city view as a CSV table.
func CityTable(rows []gold.CitySummary) *schema.Table {
	t := schema.NewTable([]string{
		"city", "total_employees", "avg_salary", "total_payroll", "department_diversity",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.City,
			strconv.Itoa(r.TotalEmployees),
			r.AvgSalary.String(),
			strconv.FormatInt(r.TotalPayroll, 10),
			strconv.Itoa(r.DepartmentDiversity),
		})
	}
	return t
}

// TopEarnerTable renders the top-earner ranking as a CSV table.
func TopEarnerTable(rows []gold.TopEarner) *schema.Table {
	t := schema.NewTable([]string{
		"rank", "name", "role", "department", "salary", "experience_years", "city",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			r.Role,
			r.Department,
			strconv.Itoa(r.Salary),
			strconv.Itoa(r.ExperienceYears),
			r.City,
		})
	}
	return t
}

// ExperienceBandTable renders the experience band view as a CSV table.
func ExperienceBandTable(rows []gold.ExperienceBandRow) *schema.Table {
	t := schema.NewTable([]string{
		"experience_band", "total_employees", "avg_salary", "avg_age",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Band,
			strconv.Itoa(r.TotalEmployees),
			r.AvgSalary.String(),
			r.AvgAge.String(),
		})
	}
	return t
}

// SalaryBandTable renders the salary band view as a CSV table.
func SalaryBandTable(rows []gold.SalaryBandRow) *schema.Table {
	t := schema.NewTable([]string{
		"salary_band", "total_employees", "avg_salary", "avg_experience_years",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Band,
			strconv.Itoa(r.TotalEmployees),
			r.AvgSalary.String(),
			r.AvgExperienceYears.String(),
		})
	}
	return t
}

// MatrixTable renders the department x role matrix as a CSV table.
func MatrixTable(rows []gold.DepartmentRoleCell) *schema.Table {
	t := schema.NewTable([]string{
		"department", "role", "employee_count", "avg_salary",
	})
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Department,
			r.Role,
			strconv.Itoa(r.EmployeeCount),
			r.AvgSalary.String(),
		})
	}
	return t
}

// FeatureTable renders the feature-augmented records as a CSV table: the
// eight canonical columns followed by the eight derived features.
func FeatureTable(rows []gold.FeatureRecord) *schema.Table {
	columns := append(schema.ColumnNames(),
		"salary_to_experience_ratio", "age_to_experience_ratio", "is_high_performer",
		"tenure_category", "salary_percentile", "experience_percentile",
		"years_to_retirement", "is_mid_career",
	)
	t := schema.NewTable(columns)
	for _, r := range rows {
		cells := append(r.Employee.Fields(),
			r.SalaryToExperienceRatio.String(),
			r.AgeToExperienceRatio.String(),
			strconv.Itoa(r.IsHighPerformer),
			r.TenureCategory,
			r.SalaryPercentile.String(),
			r.ExperiencePercentile.String(),
			strconv.Itoa(r.YearsToRetirement),
			strconv.Itoa(r.IsMidCareer),
		)
		t.Rows = append(t.Rows, cells)
	}
	return t
}
