package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/carecalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Solve For:           %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Target Pension:      %s\n", output.FormatCurrency(result.TargetPayable)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalEndYear != nil {
		sb.WriteString(fmt.Sprintf("Last Contribution Year: %d\n", *result.OptimalEndYear))
	}
	if result.OptimalWage != nil {
		sb.WriteString(fmt.Sprintf("Monthly Wage:           %s\n", output.FormatCurrency(*result.OptimalWage)))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.Result != nil {
		sb.WriteString(fmt.Sprintf("Total Months:          %d\n", result.Result.TotalMonths))
		sb.WriteString(fmt.Sprintf("CARE Amount:           %s\n", output.FormatCurrency(result.Result.CAREAmount)))
	}
	sb.WriteString(fmt.Sprintf("Pension Payable:       %s\n", output.FormatCurrency(result.Payable)))
	sb.WriteString(fmt.Sprintf("Change From Base:      %s%s\n",
		tf.deltaSymbol(result.PayableDiffFromBase), output.FormatCurrency(result.PayableDiffFromBase.Abs())))

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Target reached"
	}
	return "⚠ Target not reached"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}
