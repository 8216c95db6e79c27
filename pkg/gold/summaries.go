package gold

import (
	"sort"

	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// DepartmentSummary is one row of the department view.
type DepartmentSummary struct {
	Department         string          `json:"department"`
	TotalEmployees     int             `json:"totalEmployees"`
	AvgSalary          decimal.Decimal `json:"avgSalary"`
	MinSalary          int             `json:"minSalary"`
	MaxSalary          int             `json:"maxSalary"`
	TotalPayroll       int64           `json:"totalPayroll"`
	AvgAge             decimal.Decimal `json:"avgAge"`
	AvgExperienceYears decimal.Decimal `json:"avgExperienceYears"`
	SalaryRange        int             `json:"salaryRange"`
}

// RoleSummary is one row of the role view.
type RoleSummary struct {
	Role               string          `json:"role"`
	TotalEmployees     int             `json:"totalEmployees"`
	AvgSalary          decimal.Decimal `json:"avgSalary"`
	AvgExperienceYears decimal.Decimal `json:"avgExperienceYears"`
	AvgAge             decimal.Decimal `json:"avgAge"`
}

// CitySummary is one row of the city view.
type CitySummary struct {
	City                string          `json:"city"`
	TotalEmployees      int             `json:"totalEmployees"`
	AvgSalary           decimal.Decimal `json:"avgSalary"`
	TotalPayroll        int64           `json:"totalPayroll"`
	DepartmentDiversity int             `json:"departmentDiversity"`
}

// DepartmentRoleCell is one row of the department x role matrix.
type DepartmentRoleCell struct {
	Department    string          `json:"department"`
	Role          string          `json:"role"`
	EmployeeCount int             `json:"employeeCount"`
	AvgSalary     decimal.Decimal `json:"avgSalary"`
}

type groupAccum struct {
	count         int
	salarySum     int64
	salaryMin     int
	salaryMax     int
	ageSum        int64
	experienceSum int64
	departments   map[string]bool
}

func accumulate(groups map[string]*groupAccum, key string, emp schema.Employee) *groupAccum {
	g, ok := groups[key]
	if !ok {
		g = &groupAccum{salaryMin: emp.Salary, salaryMax: emp.Salary, departments: make(map[string]bool)}
		groups[key] = g
	}
	g.count++
	g.salarySum += int64(emp.Salary)
	if emp.Salary < g.salaryMin {
		g.salaryMin = emp.Salary
	}
	if emp.Salary > g.salaryMax {
		g.salaryMax = emp.Salary
	}
	g.ageSum += int64(emp.Age)
	g.experienceSum += int64(emp.ExperienceYears)
	g.departments[emp.Department] = true
	return g
}

// DepartmentSummaries groups records by department. Every distinct
// department present in the input appears exactly once, sorted by total
// payroll descending (department ascending on ties).
func DepartmentSummaries(employees []schema.Employee) []DepartmentSummary {
	groups := make(map[string]*groupAccum)
	for _, emp := range employees {
		accumulate(groups, emp.Department, emp)
	}

	summaries := make([]DepartmentSummary, 0, len(groups))
	for dept, g := range groups {
		summaries = append(summaries, DepartmentSummary{
			Department:         dept,
			TotalEmployees:     g.count,
			AvgSalary:          mean(g.salarySum, g.count),
			MinSalary:          g.salaryMin,
			MaxSalary:          g.salaryMax,
			TotalPayroll:       g.salarySum,
			AvgAge:             mean(g.ageSum, g.count),
			AvgExperienceYears: mean(g.experienceSum, g.count),
			SalaryRange:        g.salaryMax - g.salaryMin,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalPayroll != summaries[j].TotalPayroll {
			return summaries[i].TotalPayroll > summaries[j].TotalPayroll
		}
		return summaries[i].Department < summaries[j].Department
	})
	return summaries
}

// RoleSummaries groups records by role, sorted by average salary descending
// (role ascending on ties).
func RoleSummaries(employees []schema.Employee) []RoleSummary {
	groups := make(map[string]*groupAccum)
	for _, emp := range employees {
		accumulate(groups, emp.Role, emp)
	}

	summaries := make([]RoleSummary, 0, len(groups))
	for role, g := range groups {
		summaries = append(summaries, RoleSummary{
			Role:               role,
			TotalEmployees:     g.count,
			AvgSalary:          mean(g.salarySum, g.count),
			AvgExperienceYears: mean(g.experienceSum, g.count),
			AvgAge:             mean(g.ageSum, g.count),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].AvgSalary.Equal(summaries[j].AvgSalary) {
			return summaries[i].AvgSalary.GreaterThan(summaries[j].AvgSalary)
		}
		return summaries[i].Role < summaries[j].Role
	})
	return summaries
}

// CitySummaries groups records by city, sorted by headcount descending (city
// ascending on ties). DepartmentDiversity counts distinct departments
// present in the city.
func CitySummaries(employees []schema.Employee) []CitySummary {
	groups := make(map[string]*groupAccum)
	for _, emp := range employees {
		accumulate(groups, emp.City, emp)
	}

	summaries := make([]CitySummary, 0, len(groups))
	for city, g := range groups {
		summaries = append(summaries, CitySummary{
			City:                city,
			TotalEmployees:      g.count,
			AvgSalary:           mean(g.salarySum, g.count),
			TotalPayroll:        g.salarySum,
			DepartmentDiversity: len(g.departments),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalEmployees != summaries[j].TotalEmployees {
			return summaries[i].TotalEmployees > summaries[j].TotalEmployees
		}
		return summaries[i].City < summaries[j].City
	})
	return summaries
}

// DepartmentRoleMatrix groups records by (department, role), one row per
// combination present, sorted by department ascending then employee count
// descending (role ascending on ties).
func DepartmentRoleMatrix(employees []schema.Employee) []DepartmentRoleCell {
	type key struct{ department, role string }
	groups := make(map[key]*groupAccum)
	for _, emp := range employees {
		k := key{emp.Department, emp.Role}
		g, ok := groups[k]
		if !ok {
			g = &groupAccum{departments: make(map[string]bool)}
			groups[k] = g
		}
		g.count++
		g.salarySum += int64(emp.Salary)
	}

	cells := make([]DepartmentRoleCell, 0, len(groups))
	for k, g := range groups {
		cells = append(cells, DepartmentRoleCell{
			Department:    k.department,
			Role:          k.role,
			EmployeeCount: g.count,
			AvgSalary:     mean(g.salarySum, g.count),
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Department != cells[j].Department {
			return cells[i].Department < cells[j].Department
		}
		if cells[i].EmployeeCount != cells[j].EmployeeCount {
			return cells[i].EmployeeCount > cells[j].EmployeeCount
		}
		return cells[i].Role < cells[j].Role
	})
	return cells
}
