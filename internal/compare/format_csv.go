package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Months",
		"Final Combined Wage",
		"CARE Amount",
		"Legacy Amount",
		"Pension Payable",
		"Payable Diff from Base",
		"Payable % Change",
		"Months Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, kind string) []string {
	return []string{
		r.ScenarioName,
		kind,
		strconv.Itoa(r.TotalMonths),
		r.FinalCombinedWage.StringFixed(2),
		r.CAREAmount.StringFixed(2),
		r.LegacyAmount.StringFixed(2),
		r.CompensatedAmount.StringFixed(2),
		r.PayableDiffFromBase.StringFixed(2),
		r.PayablePctFromBase.StringFixed(2),
		strconv.Itoa(r.MonthsDiffFromBase),
	}
}
