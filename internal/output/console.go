package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/carecalc/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// ConsoleFormatter renders a human readable report. ShowDetails adds the
// per-year table.
type ConsoleFormatter struct {
	ShowDetails bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results []ScenarioResult) ([]byte, error) {
	var buf bytes.Buffer
	for i, sr := range results {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		if sr.Result == nil {
			return nil, fmt.Errorf("scenario %s has no result", sr.Name)
		}
		c.writeSummary(&buf, sr)
		if c.ShowDetails {
			fmt.Fprintln(&buf)
			writeYearTable(&buf, sr.Result)
		}
	}
	if c.ShowDetails && len(results) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, titleStyle.Render("ASSUMPTIONS"))
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "  - %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeSummary(buf *bytes.Buffer, sr ScenarioResult) {
	r := sr.Result
	fmt.Fprintln(buf, titleStyle.Render("CARE PENSION CALCULATION: "+sr.Name))
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	if sr.Description != "" {
		fmt.Fprintln(buf, mutedStyle.Render(sr.Description))
	}
	fmt.Fprintf(buf, "%-28s %d - %d\n", "Contribution years:", r.StartYear, r.EndYear)
	fmt.Fprintf(buf, "%-28s %d\n", "Total months:", r.TotalMonths)
	fmt.Fprintf(buf, "%-28s %s\n", "Final combined wage:", FormatCurrency(r.FinalCombinedWage))
	fmt.Fprintf(buf, "%-28s %s\n", "Accrual percent:", FormatPercentage(r.AccrualPercent))
	fmt.Fprintf(buf, "%-28s %s\n", "CARE pension (monthly):", FormatCurrency(r.CAREAmount))
	if r.Options.CompensationEnabled {
		fmt.Fprintln(buf, strings.Repeat("-", 60))
		fmt.Fprintf(buf, "%-28s %s\n", "Legacy average wage:", FormatCurrency(r.LegacyAverageWage))
		fmt.Fprintf(buf, "%-28s %s\n", "Legacy percent:", FormatPercentage(r.LegacyPercent))
		fmt.Fprintf(buf, "%-28s %s\n", "Legacy pension (monthly):", FormatCurrency(r.LegacyAmount))
		fmt.Fprintf(buf, "%-28s %s%%\n", "Compensation:", r.CompensationPercent.StringFixed(0))
	}
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	fmt.Fprintf(buf, "%-28s %s\n", "Pension payable (monthly):", accentStyle.Render(FormatCurrency(r.CompensatedAmount)))
}

func writeYearTable(buf *bytes.Buffer, r *domain.CalculationResult) {
	fmt.Fprintf(buf, "%-6s %10s %12s %10s %12s %10s %6s %6s %12s\n",
		"Year", "Index", "Revalued", "Discount", "Adjusted", "Track2", "M1", "M2", "Combined")
	fmt.Fprintln(buf, strings.Repeat("-", 94))
	for _, y := range r.Years {
		fmt.Fprintf(buf, "%-6d %10s %12s %10s %12s %10s %6d %6d %12s\n",
			y.Year,
			y.RevaluationIndex.StringFixed(4),
			y.RevaluedWage.StringFixed(2),
			y.DiscountFactor.StringFixed(4),
			y.AdjustedWage.StringFixed(2),
			y.SecondaryCeiling.StringFixed(2),
			y.CumulativeTrack1,
			y.CumulativeTrack2,
			y.CombinedAdjustedWage.StringFixed(2))
	}
}
