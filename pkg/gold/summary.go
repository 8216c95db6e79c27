package gold

import (
	"sort"

	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// ExecutiveSummary holds the global scalar statistics of one aggregation
// run. All fields are zero values for an empty input; that is a valid
// degenerate result, not an error.
type ExecutiveSummary struct {
	TotalEmployees        int             `json:"totalEmployees"`
	TotalDepartments      int             `json:"totalDepartments"`
	TotalRoles            int             `json:"totalRoles"`
	TotalCities           int             `json:"totalCities"`
	AvgSalary             decimal.Decimal `json:"avgSalary"`
	MedianSalary          decimal.Decimal `json:"medianSalary"`
	MinSalary             int             `json:"minSalary"`
	MaxSalary             int             `json:"maxSalary"`
	TotalPayroll          int64           `json:"totalPayroll"`
	AvgAge                decimal.Decimal `json:"avgAge"`
	AvgExperience         decimal.Decimal `json:"avgExperience"`
	YoungestEmployee      int             `json:"youngestEmployee"`
	OldestEmployee        int             `json:"oldestEmployee"`
	MostCommonDepartment  string          `json:"mostCommonDepartment"`
	HighestPaidDepartment string          `json:"highestPaidDepartment"`
}

// Summarize computes the executive scalar statistics over the whole table.
func Summarize(employees []schema.Employee) ExecutiveSummary {
	summary := ExecutiveSummary{TotalEmployees: len(employees)}
	if len(employees) == 0 {
		return summary
	}

	departments := make(map[string]int)
	roles := make(map[string]bool)
	cities := make(map[string]bool)
	deptSalaries := make(map[string]*groupAccum)

	var salarySum, ageSum, experienceSum int64
	salaries := make([]int, len(employees))
	minSalary, maxSalary := employees[0].Salary, employees[0].Salary
	youngest, oldest := employees[0].Age, employees[0].Age

	for i, emp := range employees {
		departments[emp.Department]++
		roles[emp.Role] = true
		cities[emp.City] = true
		accumulate(deptSalaries, emp.Department, emp)

		salaries[i] = emp.Salary
		salarySum += int64(emp.Salary)
		ageSum += int64(emp.Age)
		experienceSum += int64(emp.ExperienceYears)

		if emp.Salary < minSalary {
			minSalary = emp.Salary
		}
		if emp.Salary > maxSalary {
			maxSalary = emp.Salary
		}
		if emp.Age < youngest {
			youngest = emp.Age
		}
		if emp.Age > oldest {
			oldest = emp.Age
		}
	}

	summary.TotalDepartments = len(departments)
	summary.TotalRoles = len(roles)
	summary.TotalCities = len(cities)
	summary.AvgSalary = mean(salarySum, len(employees))
	summary.MedianSalary = medianOf(salaries)
	summary.MinSalary = minSalary
	summary.MaxSalary = maxSalary
	summary.TotalPayroll = salarySum
	summary.AvgAge = mean(ageSum, len(employees))
	summary.AvgExperience = mean(experienceSum, len(employees))
	summary.YoungestEmployee = youngest
	summary.OldestEmployee = oldest
	summary.MostCommonDepartment = mostCommon(departments)
	summary.HighestPaidDepartment = highestMeanSalary(deptSalaries)

	return summary
}

// medianOf returns the median salary (mean of the middle two for even
// counts), exact to two decimal places.
func medianOf(values []int) decimal.Decimal {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return decimal.NewFromInt(int64(sorted[mid]))
	}
	sum := int64(sorted[mid-1]) + int64(sorted[mid])
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(2), 2)
}

// mostCommon returns the key with the highest count, the lexicographically
// smallest on ties.
func mostCommon(counts map[string]int) string {
	best, bestCount := "", 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best = key
			bestCount = n
		}
	}
	return best
}

// highestMeanSalary returns the group key with the highest mean salary, the
// lexicographically smallest on ties.
func highestMeanSalary(groups map[string]*groupAccum) string {
	best := ""
	var bestMean decimal.Decimal
	for key, g := range groups {
		m := mean(g.salarySum, g.count)
		if best == "" || m.GreaterThan(bestMean) || (m.Equal(bestMean) && key < best) {
			best = key
			bestMean = m
		}
	}
	return best
}
