package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVSummarizer writes one row per scenario
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results []ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "StartYear", "EndYear", "TotalMonths", "FinalCombinedWage", "AccrualPercent",
		"CAREAmount", "LegacyAverageWage", "LegacyPercent", "LegacyAmount", "CompensationPercent", "CompensatedAmount"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sr := range results {
		r := sr.Result
		row := []string{
			sr.Name,
			strconv.Itoa(r.StartYear),
			strconv.Itoa(r.EndYear),
			strconv.Itoa(r.TotalMonths),
			r.FinalCombinedWage.StringFixed(2),
			r.AccrualPercent.String(),
			r.CAREAmount.StringFixed(2),
			r.LegacyAverageWage.StringFixed(2),
			r.LegacyPercent.String(),
			r.LegacyAmount.StringFixed(2),
			r.CompensationPercent.String(),
			r.CompensatedAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVYearsFormatter writes the per-year series of every scenario
type CSVYearsFormatter struct{}

func (c CSVYearsFormatter) Name() string { return "csv-years" }

func (c CSVYearsFormatter) Format(results []ScenarioResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "RevaluationIndex", "RevaluedWage", "DiscountFactor", "AdjustedWage",
		"SecondaryCeiling", "CumulativeTrack1", "CumulativeTrack2", "CombinedAdjustedWage"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sr := range results {
		for _, y := range sr.Result.Years {
			row := []string{
				sr.Name,
				strconv.Itoa(y.Year),
				y.RevaluationIndex.String(),
				y.RevaluedWage.StringFixed(2),
				y.DiscountFactor.StringFixed(6),
				y.AdjustedWage.StringFixed(2),
				y.SecondaryCeiling.StringFixed(2),
				strconv.Itoa(y.CumulativeTrack1),
				strconv.Itoa(y.CumulativeTrack2),
				y.CombinedAdjustedWage.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
