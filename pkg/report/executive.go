package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"medallion/pkg/gold"
)

const reportWidth = 80

// WriteExecutiveSummary renders the executive summary as a human-readable
// text report with fixed section headers (Workforce Overview, Compensation
// Metrics, Demographics, Key Insights) and writes it atomically.
func WriteExecutiveSummary(path string, summary gold.ExecutiveSummary) error {
	content := FormatExecutiveSummary(summary, time.Now())

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename output into place: %w", err)
	}
	return nil
}

// FormatExecutiveSummary builds the report text. The generation timestamp is
// a parameter so the layout is testable.
func FormatExecutiveSummary(s gold.ExecutiveSummary, generatedAt time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)
	section := strings.Repeat("-", reportWidth)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "EXECUTIVE SUMMARY - EMPLOYEE ANALYTICS\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "WORKFORCE OVERVIEW\n%s\n", section)
	fmt.Fprintf(&b, "Total Employees:           %d\n", s.TotalEmployees)
	fmt.Fprintf(&b, "Total Departments:         %d\n", s.TotalDepartments)
	fmt.Fprintf(&b, "Total Roles:               %d\n", s.TotalRoles)
	fmt.Fprintf(&b, "Total Office Locations:    %d\n\n", s.TotalCities)

	fmt.Fprintf(&b, "COMPENSATION METRICS\n%s\n", section)
	fmt.Fprintf(&b, "Average Salary:            %s\n", money2(s.AvgSalary))
	fmt.Fprintf(&b, "Median Salary:             %s\n", money2(s.MedianSalary))
	fmt.Fprintf(&b, "Min Salary:                $%s\n", humanize.Comma(int64(s.MinSalary)))
	fmt.Fprintf(&b, "Max Salary:                $%s\n", humanize.Comma(int64(s.MaxSalary)))
	fmt.Fprintf(&b, "Total Annual Payroll:      $%s\n\n", humanize.Comma(s.TotalPayroll))

	fmt.Fprintf(&b, "DEMOGRAPHICS\n%s\n", section)
	fmt.Fprintf(&b, "Average Age:               %s years\n", s.AvgAge.String())
	fmt.Fprintf(&b, "Average Experience:        %s years\n", s.AvgExperience.String())
	fmt.Fprintf(&b, "Youngest Employee:         %d years\n", s.YoungestEmployee)
	fmt.Fprintf(&b, "Oldest Employee:           %d years\n\n", s.OldestEmployee)

	fmt.Fprintf(&b, "KEY INSIGHTS\n%s\n", section)
	fmt.Fprintf(&b, "Largest Department:        %s\n", s.MostCommonDepartment)
	fmt.Fprintf(&b, "Highest Paid Department:   %s\n\n", s.HighestPaidDepartment)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s\n", rule)

	return b.String()
}

// money2 formats a decimal as a currency figure with thousands separators
// and exactly two decimal places ("$72,500.00").
func money2(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart := fixed
	frac := "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i+1:]
	}
	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, grouped.String(), frac)
}
