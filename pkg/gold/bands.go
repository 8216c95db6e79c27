package gold

import (
	"math"

	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// band is one fixed half-open interval (lower-exclusive, upper-inclusive;
// the first band also includes its lower edge). Thresholds never adapt to
// the data distribution.
type band struct {
	Label string
	Upper float64
}

// experienceBands is the HR-reporting binning of experience_years.
var experienceBands = []band{
	{Label: "Entry (0-2yr)", Upper: 2},
	{Label: "Junior (3-5yr)", Upper: 5},
	{Label: "Mid (6-10yr)", Upper: 10},
	{Label: "Senior (11-15yr)", Upper: 15},
	{Label: "Expert (16+yr)", Upper: math.Inf(1)},
}

// salaryBands is the compensation-analysis binning of salary.
var salaryBands = []band{
	{Label: "Entry ($50-70K)", Upper: 70000},
	{Label: "Mid ($70-90K)", Upper: 90000},
	{Label: "Senior ($90-110K)", Upper: 110000},
	{Label: "Lead ($110-130K)", Upper: 130000},
	{Label: "Executive ($130K+)", Upper: math.Inf(1)},
}

// tenureBands is the ML-feature binning of experience_years. Its boundaries
// intentionally differ from experienceBands; the two serve different
// consumers and must stay distinct.
var tenureBands = []band{
	{Label: "New", Upper: 3},
	{Label: "Established", Upper: 7},
	{Label: "Experienced", Upper: 15},
	{Label: "Veteran", Upper: math.Inf(1)},
}

// bandLabel places a value into the first band whose upper edge is >= value,
// so a value exactly on a boundary belongs to the lower band.
func bandLabel(bands []band, value int) string {
	v := float64(value)
	for _, b := range bands {
		if v <= b.Upper {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}

// ExperienceBandRow is one row of the experience band view.
type ExperienceBandRow struct {
	Band           string          `json:"band"`
	TotalEmployees int             `json:"totalEmployees"`
	AvgSalary      decimal.Decimal `json:"avgSalary"`
	AvgAge         decimal.Decimal `json:"avgAge"`
}

// SalaryBandRow is one row of the salary band view.
type SalaryBandRow struct {
	Band               string          `json:"band"`
	TotalEmployees     int             `json:"totalEmployees"`
	AvgSalary          decimal.Decimal `json:"avgSalary"`
	AvgExperienceYears decimal.Decimal `json:"avgExperienceYears"`
}

// ExperienceBandRows bins records by experience and aggregates per band.
// Only non-empty bands appear, in band order.
func ExperienceBandRows(employees []schema.Employee) []ExperienceBandRow {
	groups := make(map[string]*groupAccum)
	for _, emp := range employees {
		accumulate(groups, bandLabel(experienceBands, emp.ExperienceYears), emp)
	}

	rows := make([]ExperienceBandRow, 0, len(groups))
	for _, b := range experienceBands {
		g, ok := groups[b.Label]
		if !ok {
			continue
		}
		rows = append(rows, ExperienceBandRow{
			Band:           b.Label,
			TotalEmployees: g.count,
			AvgSalary:      mean(g.salarySum, g.count),
			AvgAge:         mean(g.ageSum, g.count),
		})
	}
	return rows
}

// SalaryBandRows bins records by salary and aggregates per band. Only
// non-empty bands appear, in band order.
func SalaryBandRows(employees []schema.Employee) []SalaryBandRow {
	groups := make(map[string]*groupAccum)
	for _, emp := range employees {
		accumulate(groups, bandLabel(salaryBands, emp.Salary), emp)
	}

	rows := make([]SalaryBandRow, 0, len(groups))
	for _, b := range salaryBands {
		g, ok := groups[b.Label]
		if !ok {
			continue
		}
		rows = append(rows, SalaryBandRow{
			Band:               b.Label,
			TotalEmployees:     g.count,
			AvgSalary:          mean(g.salarySum, g.count),
			AvgExperienceYears: mean(g.experienceSum, g.count),
		})
	}
	return rows
}

// TenureCategory maps experience_years onto the ML tenure banding
// (New/Established/Experienced/Veteran).
func TenureCategory(experienceYears int) string {
	return bandLabel(tenureBands, experienceYears)
}
