package schema

import "strconv"

// Employee is one cleaned record. Every Employee produced by the cleaning
// stage satisfies the business invariants (age >= 18, salary > 0,
// experience_years >= 0) and carries no empty fields.
type Employee struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Age             int    `json:"age"`
	Department      string `json:"department"`
	Role            string `json:"role"`
	Salary          int    `json:"salary"`
	ExperienceYears int    `json:"experienceYears"`
	City            string `json:"city"`
}

// Fields renders the record as CSV cells in canonical column order.
func (e Employee) Fields() []string {
	return []string{
		strconv.Itoa(e.ID),
		e.Name,
		strconv.Itoa(e.Age),
		e.Department,
		e.Role,
		strconv.Itoa(e.Salary),
		strconv.Itoa(e.ExperienceYears),
		e.City,
	}
}
