package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carecalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CARE SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		8, "Months",
		numWidth, "CARE",
		numWidth, "Payable"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Pension payable:  %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PayableDiffFromBase),
				output.FormatCurrency(alt.PayableDiffFromBase.Abs()),
				alt.PayablePctFromBase.StringFixed(1)))
			if !alt.CAREDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  CARE amount:      %s%s\n",
					tf.deltaSymbol(alt.CAREDiffFromBase),
					output.FormatCurrency(alt.CAREDiffFromBase.Abs())))
			}
			if alt.MonthsDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Months:           %+d\n", alt.MonthsDiffFromBase))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString("  " + rec + "\n")
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(r *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := r.ScenarioName
	if isBase {
		name += " (base)"
	}
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}
	return fmt.Sprintf("%-*s %*d %*s %*s\n",
		nameWidth, name,
		8, r.TotalMonths,
		numWidth, output.FormatCurrency(r.CAREAmount),
		numWidth, output.FormatCurrency(r.CompensatedAmount))
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+"
	case d.IsNegative():
		return "-"
	default:
		return ""
	}
}
