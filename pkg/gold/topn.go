package gold

import (
	"sort"

	"medallion/pkg/schema"
)

// TopEarner is one row of the top-earner ranking.
type TopEarner struct {
	Rank            int    `json:"rank"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Department      string `json:"department"`
	Salary          int    `json:"salary"`
	ExperienceYears int    `json:"experienceYears"`
	City            string `json:"city"`
}

// TopEarners ranks the n highest-paid records 1..n by descending salary,
// breaking ties by original input order. When the table has fewer than n
// records all of them are returned; there is no padding.
func TopEarners(employees []schema.Employee, n int) []TopEarner {
	ordered := make([]schema.Employee, len(employees))
	copy(ordered, employees)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Salary > ordered[j].Salary
	})

	if n > len(ordered) {
		n = len(ordered)
	}

	top := make([]TopEarner, 0, n)
	for i := 0; i < n; i++ {
		emp := ordered[i]
		top = append(top, TopEarner{
			Rank:            i + 1,
			Name:            emp.Name,
			Role:            emp.Role,
			Department:      emp.Department,
			Salary:          emp.Salary,
			ExperienceYears: emp.ExperienceYears,
			City:            emp.City,
		})
	}
	return top
}
