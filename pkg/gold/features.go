package gold

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"medallion/pkg/schema"
)

// FeatureRecord is one cleaned record augmented with the eight derived
// model-ready features. The embedded record is never modified.
type FeatureRecord struct {
	schema.Employee

	SalaryToExperienceRatio decimal.Decimal `json:"salaryToExperienceRatio"`
	AgeToExperienceRatio    decimal.Decimal `json:"ageToExperienceRatio"`
	IsHighPerformer         int             `json:"isHighPerformer"`
	TenureCategory          string          `json:"tenureCategory"`
	SalaryPercentile        decimal.Decimal `json:"salaryPercentile"`
	ExperiencePercentile    decimal.Decimal `json:"experiencePercentile"`
	YearsToRetirement       int             `json:"yearsToRetirement"`
	IsMidCareer             int             `json:"isMidCareer"`
}

// Features derives the per-record feature set, row-preserving. The high
// performer threshold (p75 of salary) and the percentile ranks are computed
// once over the whole table, not per group.
func Features(employees []schema.Employee) []FeatureRecord {
	if len(employees) == 0 {
		return nil
	}

	salaries := make([]int, len(employees))
	experiences := make([]int, len(employees))
	for i, emp := range employees {
		salaries[i] = emp.Salary
		experiences[i] = emp.ExperienceYears
	}
	p75 := Quantile(salaries, 0.75)

	records := make([]FeatureRecord, len(employees))
	for i, emp := range employees {
		divisor := decimal.NewFromInt(int64(emp.ExperienceYears + 1))

		high := 0
		if float64(emp.Salary) >= p75 {
			high = 1
		}
		mid := 0
		if emp.Age >= 35 && emp.Age <= 50 {
			mid = 1
		}

		records[i] = FeatureRecord{
			Employee:                emp,
			SalaryToExperienceRatio: decimal.NewFromInt(int64(emp.Salary)).DivRound(divisor, 2),
			AgeToExperienceRatio:    decimal.NewFromInt(int64(emp.Age)).DivRound(divisor, 2),
			IsHighPerformer:         high,
			TenureCategory:          TenureCategory(emp.ExperienceYears),
			SalaryPercentile:        PercentileRank(salaries, emp.Salary),
			ExperiencePercentile:    PercentileRank(experiences, emp.ExperienceYears),
			YearsToRetirement:       65 - emp.Age,
			IsMidCareer:             mid,
		}
	}
	return records
}

// PercentileRank computes the percentile rank of value within values using
// the average-rank convention for ties, scaled to [0,100] and rounded to two
// decimal places. The maximum value always ranks 100.
func PercentileRank(values []int, value int) decimal.Decimal {
	n := len(values)
	if n == 0 {
		return decimal.Zero
	}

	less, equal := 0, 0
	for _, v := range values {
		switch {
		case v < value:
			less++
		case v == value:
			equal++
		}
	}

	averageRank := float64(less) + (float64(equal)+1)/2
	return decimal.NewFromFloat(averageRank / float64(n) * 100).Round(2)
}

// Quantile computes the q-quantile of values by linear interpolation between
// order statistics. The quantile of a single value is that value itself.
func Quantile(values []int, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
