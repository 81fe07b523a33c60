package compare

import (
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description"`
	Result       *domain.CalculationResult `json:"-"`

	// Key Metrics
	TotalMonths       int             `json:"totalMonths"`
	FinalCombinedWage decimal.Decimal `json:"finalCombinedWage"`
	AccrualPercent    decimal.Decimal `json:"accrualPercent"`
	CAREAmount        decimal.Decimal `json:"careAmount"`
	LegacyAmount      decimal.Decimal `json:"legacyAmount"`
	CompensatedAmount decimal.Decimal `json:"compensatedAmount"`

	// Comparison to Base
	PayableDiffFromBase decimal.Decimal `json:"payableDiffFromBase"`
	PayablePctFromBase  decimal.Decimal `json:"payablePctFromBase"`
	CAREDiffFromBase    decimal.Decimal `json:"careDiffFromBase"`
	MonthsDiffFromBase  int             `json:"monthsDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one scenario result
func (mc *MetricsCalculator) CalculateMetrics(name, description string, result *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:      name,
		Description:       description,
		Result:            result,
		TotalMonths:       result.TotalMonths,
		FinalCombinedWage: result.FinalCombinedWage,
		AccrualPercent:    result.AccrualPercent,
		CAREAmount:        result.CAREAmount,
		LegacyAmount:      result.LegacyAmount,
		CompensatedAmount: result.CompensatedAmount,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PayableDiffFromBase = scenario.CompensatedAmount.Sub(base.CompensatedAmount)
	if !base.CompensatedAmount.IsZero() {
		scenario.PayablePctFromBase = scenario.PayableDiffFromBase.
			Div(base.CompensatedAmount).
			Mul(decimal.NewFromInt(100))
	}
	scenario.CAREDiffFromBase = scenario.CAREAmount.Sub(base.CAREAmount)
	scenario.MonthsDiffFromBase = scenario.TotalMonths - base.TotalMonths
	return scenario
}

// GenerateRecommendations highlights the alternatives that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CompensatedAmount.GreaterThan(best.CompensatedAmount) {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		recommendations = append(recommendations,
			"Highest pension: "+best.ScenarioName+" pays "+best.PayableDiffFromBase.StringFixed(2)+
				" more per month than the base scenario")
	}

	bestCARE := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CAREAmount.GreaterThan(bestCARE.CAREAmount) {
			bestCARE = alt
		}
	}
	if bestCARE != compSet.BaseResult && bestCARE != best {
		recommendations = append(recommendations,
			"Highest CARE amount: "+bestCARE.ScenarioName+" adds "+bestCARE.CAREDiffFromBase.StringFixed(2)+
				" per month before compensation")
	}

	return recommendations
}
