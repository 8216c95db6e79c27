package gold

import (
	"math"
	"testing"

	"medallion/pkg/schema"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		q      float64
		want   float64
	}{
		{"p75 lands on order statistic", []int{58000, 85000, 95000, 125000, 145000}, 0.75, 125000},
		{"p75 interpolates", []int{10, 20, 30, 40}, 0.75, 32.5},
		{"median of two", []int{10, 20}, 0.5, 15},
		{"single value is itself", []int{42}, 0.75, 42},
		{"q=1 is the maximum", []int{5, 1, 3}, 1, 5},
		{"q=0 is the minimum", []int{5, 1, 3}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(tt.values, tt.q); got != tt.want {
				t.Fatalf("Quantile(%v, %v) = %v, want %v", tt.values, tt.q, got, tt.want)
			}
		})
	}
}

func TestQuantileEmptyIsNaN(t *testing.T) {
	if got := Quantile(nil, 0.5); !math.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestPercentileRank(t *testing.T) {
	values := []int{10, 20, 30, 40, 50}
	tests := []struct {
		value int
		want  string
	}{
		{10, "20"},
		{30, "60"},
		{50, "100"},
	}
	for _, tt := range tests {
		if got := PercentileRank(values, tt.value).String(); got != tt.want {
			t.Errorf("PercentileRank(%d) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestPercentileRankAveragesTies(t *testing.T) {
	values := []int{10, 20, 20, 30}
	// less=1, equal=2: average rank 1 + 1.5 = 2.5, over 4 values.
	if got := PercentileRank(values, 20).String(); got != "62.5" {
		t.Fatalf("tied rank = %s, want 62.5", got)
	}
}

func TestPercentileRankEmpty(t *testing.T) {
	if got := PercentileRank(nil, 10); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestFeatures(t *testing.T) {
	employees := []schema.Employee{
		{ID: 1, Name: "Ada", Age: 36, Salary: 145000, ExperienceYears: 15},
		{ID: 2, Name: "Grace", Age: 52, Salary: 125000, ExperienceYears: 20},
		{ID: 3, Name: "Linus", Age: 29, Salary: 95000, ExperienceYears: 4},
		{ID: 4, Name: "Edsger", Age: 41, Salary: 85000, ExperienceYears: 9},
		{ID: 5, Name: "Barbara", Age: 24, Salary: 58000, ExperienceYears: 0},
	}

	records := Features(employees)
	if len(records) != len(employees) {
		t.Fatalf("expected %d records, got %d", len(employees), len(records))
	}

	// p75 of the five salaries is 125000; exactly two records reach it.
	high := 0
	for _, r := range records {
		high += r.IsHighPerformer
	}
	if high != 2 {
		t.Fatalf("expected 2 high performers, got %d", high)
	}
	if records[0].IsHighPerformer != 1 || records[2].IsHighPerformer != 0 {
		t.Fatal("high performer flag misassigned")
	}

	ada := records[0]
	if got := ada.SalaryToExperienceRatio.String(); got != "9062.5" {
		t.Errorf("salary ratio = %s, want 9062.5", got)
	}
	if got := ada.AgeToExperienceRatio.String(); got != "2.25" {
		t.Errorf("age ratio = %s, want 2.25", got)
	}
	if ada.TenureCategory != "Experienced" {
		t.Errorf("tenure = %q, want Experienced", ada.TenureCategory)
	}
	if got := ada.SalaryPercentile.String(); got != "100" {
		t.Errorf("salary percentile = %s, want 100", got)
	}
	if ada.YearsToRetirement != 29 {
		t.Errorf("years to retirement = %d, want 29", ada.YearsToRetirement)
	}
	if ada.IsMidCareer != 1 {
		t.Error("Ada should be mid career at 36")
	}

	barbara := records[4]
	// Experience 0 divides by experience+1, never by zero.
	if got := barbara.SalaryToExperienceRatio.String(); got != "58000" {
		t.Errorf("zero-experience ratio = %s, want 58000", got)
	}
	if barbara.IsMidCareer != 0 {
		t.Error("Barbara should not be mid career at 24")
	}
	if barbara.TenureCategory != "New" {
		t.Errorf("tenure = %q, want New", barbara.TenureCategory)
	}

	// The embedded record is carried through untouched.
	if records[1].Employee != employees[1] {
		t.Fatalf("embedded record mutated: %+v", records[1].Employee)
	}
}

func TestFeaturesEmptyInput(t *testing.T) {
	if records := Features(nil); records != nil {
		t.Fatalf("expected nil, got %v", records)
	}
}
