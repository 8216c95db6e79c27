package silver

import "medallion/pkg/schema"

// Rule names a business validation rule.
type Rule string

const (
	RuleMinimumAge            Rule = "age>=18"
	RulePositiveSalary        Rule = "salary>0"
	RuleNonNegativeExperience Rule = "experience_years>=0"
)

// RuleViolation pairs a failed rule with the offending value.
type RuleViolation struct {
	Rule  Rule `json:"rule"`
	Value int  `json:"value"`
}

// Rejection records one record excluded by validation, with every rule it
// failed. Rejections are the audit trail that lets downstream consumers
// distinguish "no data" from "filtered data".
type Rejection struct {
	Row        int             `json:"row"`
	EmployeeID int             `json:"employeeId"`
	Name       string          `json:"name"`
	Violations []RuleViolation `json:"violations"`
}

// Validate evaluates the business rules per record and splits the input into
// retained records and individually-reported rejections. A violating record
// is excluded, never repaired.
func Validate(employees []schema.Employee) ([]schema.Employee, []Rejection) {
	valid := make([]schema.Employee, 0, len(employees))
	var rejections []Rejection

	for i, emp := range employees {
		var violations []RuleViolation
		if emp.Age < 18 {
			violations = append(violations, RuleViolation{Rule: RuleMinimumAge, Value: emp.Age})
		}
		if emp.Salary <= 0 {
			violations = append(violations, RuleViolation{Rule: RulePositiveSalary, Value: emp.Salary})
		}
		if emp.ExperienceYears < 0 {
			violations = append(violations, RuleViolation{Rule: RuleNonNegativeExperience, Value: emp.ExperienceYears})
		}

		if len(violations) > 0 {
			rejections = append(rejections, Rejection{
				Row:        i + 1,
				EmployeeID: emp.ID,
				Name:       emp.Name,
				Violations: violations,
			})
			continue
		}
		valid = append(valid, emp)
	}

	return valid, rejections
}
