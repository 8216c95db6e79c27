// Package gold computes the business views over a cleaned employee table:
// grouped summaries, fixed-threshold band analyses, a top-earner ranking,
// per-record derived features, and an executive summary. Every view reads
// the same frozen input snapshot and never rewrites a cleaned record.
package gold

import (
	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// DefaultTopN is the number of top earners ranked when none is configured.
const DefaultTopN = 5

// Options tunes the aggregation run.
type Options struct {
	// TopN is the number of top earners to rank; DefaultTopN when <= 0.
	TopN int
}

// Stats summarizes an aggregation run. DatasetsGenerated is filled in by the
// artifact writer once files are on disk.
type Stats struct {
	TotalEmployees    int `json:"totalEmployees"`
	TotalDepartments  int `json:"totalDepartments"`
	TotalRoles        int `json:"totalRoles"`
	DatasetsGenerated int `json:"datasetsGenerated"`
}

// Result holds every derived view of one aggregation run.
type Result struct {
	Departments     []DepartmentSummary  `json:"departments"`
	Roles           []RoleSummary        `json:"roles"`
	Cities          []CitySummary        `json:"cities"`
	TopEarners      []TopEarner          `json:"topEarners"`
	ExperienceBands []ExperienceBandRow  `json:"experienceBands"`
	SalaryBands     []SalaryBandRow      `json:"salaryBands"`
	DepartmentRoles []DepartmentRoleCell `json:"departmentRoles"`
	Features        []FeatureRecord      `json:"features"`
	Summary         ExecutiveSummary     `json:"summary"`
	Stats           Stats                `json:"stats"`
}

// Aggregate computes all views over the cleaned records. An empty input is a
// valid degenerate success: every grouped view comes back empty and the
// executive summary reports zero counts.
func Aggregate(employees []schema.Employee, opts Options) *Result {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	result := &Result{
		Departments:     DepartmentSummaries(employees),
		Roles:           RoleSummaries(employees),
		Cities:          CitySummaries(employees),
		TopEarners:      TopEarners(employees, topN),
		ExperienceBands: ExperienceBandRows(employees),
		SalaryBands:     SalaryBandRows(employees),
		DepartmentRoles: DepartmentRoleMatrix(employees),
		Features:        Features(employees),
		Summary:         Summarize(employees),
	}
	result.Stats = Stats{
		TotalEmployees:   len(employees),
		TotalDepartments: len(result.Departments),
		TotalRoles:       len(result.Roles),
	}
	return result
}

// mean returns sum/n rounded to two decimal places. n must be positive;
// grouped views only call it for non-empty groups.
func mean(sum int64, n int) decimal.Decimal {
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(n)), 2)
}
