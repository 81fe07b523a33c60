package compare

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/carecalc/internal/calculation"
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func flatEngine(t *testing.T) *calculation.CalculationEngine {
	t.Helper()
	rows := make([]domain.YearParameters, 0, 20)
	for y := 2541; y <= 2560; y++ {
		rows = append(rows, domain.YearParameters{
			Year:                y,
			ContributionCeiling: decPtr("16250"),
			WageCeiling:         dec("15000"),
			RevaluationIndex:    decPtr("1"),
			CompensationPercent: dec("100"),
		})
	}
	rules := dataset.Rules{
		RevaluationEffectiveYear: 2543,
		OverrideCutoverYear:      2561,
		DiscountWindow:           4,
		ProjectionGrowthRate:     dec("0.04"),
		SecondaryCeiling:         dataset.SecondaryCeilingRule{Base: dec("4800"), CutoverYear: 2560},
	}
	ds, err := dataset.New(dataset.Metadata{Version: "test"}, rules, rows)
	require.NoError(t, err)
	return calculation.NewCalculationEngineWithDataset(ds)
}

func sampleInput() *config.InputFile {
	low := dec("12000")
	return &config.InputFile{
		Scenarios: []config.ScenarioInput{
			{Name: "base", StartYear: 2541, EndYear: 2552},
			{Name: "low", StartYear: 2541, EndYear: 2552, Years: lowWages(low)},
		},
	}
}

func lowWages(w decimal.Decimal) map[int]config.YearEntry {
	out := make(map[int]config.YearEntry)
	for y := 2541; y <= 2552; y++ {
		wage := w
		out[y] = config.YearEntry{Wage: &wage}
	}
	return out
}

func TestCompareScenarios(t *testing.T) {
	ce := NewCompareEngine(flatEngine(t))
	set, err := ce.CompareScenarios(context.Background(), sampleInput(), "base", []string{"low"})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, 144, set.BaseResult.TotalMonths)
	assert.True(t, set.BaseResult.CompensatedAmount.Equal(dec("3000")), set.BaseResult.CompensatedAmount.String())

	require.Len(t, set.AlternativeResults, 1)
	low := set.AlternativeResults[0]
	assert.True(t, low.CAREAmount.Equal(dec("2400")), low.CAREAmount.String())
	assert.True(t, low.PayableDiffFromBase.Equal(dec("-600")))
	assert.True(t, low.PayablePctFromBase.Equal(dec("-20")))
	assert.Empty(t, set.Recommendations)
}

func TestCompareScenariosErrors(t *testing.T) {
	ce := NewCompareEngine(flatEngine(t))
	_, err := ce.CompareScenarios(context.Background(), sampleInput(), "missing", nil)
	assert.ErrorContains(t, err, "not found")

	_, err = ce.CompareScenarios(context.Background(), sampleInput(), "base", []string{"missing"})
	assert.ErrorContains(t, err, "missing")

	input := sampleInput()
	input.Scenarios = append(input.Scenarios, config.ScenarioInput{Name: "late", StartYear: 2541, EndYear: 2599})
	_, err = ce.CompareScenarios(context.Background(), input, "base", []string{"late"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.MissingYearData))
}

func TestCompareWithTemplatesAndTransforms(t *testing.T) {
	ce := NewCompareEngine(flatEngine(t))
	set, err := ce.Compare(context.Background(), sampleInput(), CompareOptions{
		BaseScenarioName: "base",
		Templates:        []string{"work_5yr"},
		Transforms:       []string{"set_wage:wage=12000"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	work := set.AlternativeResults[0]
	assert.Equal(t, "base_work_5yr", work.ScenarioName)
	assert.Equal(t, 60, work.MonthsDiffFromBase)
	assert.True(t, work.CAREAmount.Equal(dec("3450")), work.CAREAmount.String())
	assert.True(t, work.PayableDiffFromBase.Equal(dec("450")))

	wage := set.AlternativeResults[1]
	assert.Equal(t, "base_set_wage", wage.ScenarioName)
	assert.True(t, wage.CompensatedAmount.Equal(dec("2400")))

	require.Len(t, set.Recommendations, 1)
	assert.Contains(t, set.Recommendations[0], "base_work_5yr")
}

func TestCompareErrors(t *testing.T) {
	ce := NewCompareEngine(flatEngine(t))
	ctx := context.Background()

	_, err := ce.Compare(ctx, sampleInput(), CompareOptions{BaseScenarioName: "nope"})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, sampleInput(), CompareOptions{BaseScenarioName: "base", Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = ce.Compare(ctx, sampleInput(), CompareOptions{BaseScenarioName: "base", Transforms: []string{"bogus"}})
	assert.ErrorContains(t, err, "invalid transform")

	_, err = ce.Compare(ctx, sampleInput(), CompareOptions{BaseScenarioName: "base", Transforms: []string{"extend_years:years=0"}})
	assert.ErrorContains(t, err, "extend_years")
}

func sampleSet() *ComparisonSet {
	mc := NewMetricsCalculator()
	base := ComparisonResult{ScenarioName: "base", TotalMonths: 144, CAREAmount: dec("3000"), CompensatedAmount: dec("3000")}
	alt := mc.CalculateComparison(ComparisonResult{
		ScenarioName:      "more",
		Description:       "five more years",
		TotalMonths:       204,
		CAREAmount:        dec("3450"),
		CompensatedAmount: dec("3450"),
	}, base)
	set := &ComparisonSet{BaseScenarioName: "base", BaseResult: &base, AlternativeResults: []ComparisonResult{alt}}
	set.Recommendations = GenerateRecommendations(set)
	return set
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())
	assert.Contains(t, out, "CARE SCENARIO COMPARISON")
	assert.Contains(t, out, "base (base)")
	assert.Contains(t, out, "five more years")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "450.00")
	assert.Contains(t, out, "Months:           +60")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleSet())
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\n  "))

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "base", decoded.BaseScenarioName)
	require.Len(t, decoded.AlternativeResults, 1)
	assert.True(t, decoded.AlternativeResults[0].PayableDiffFromBase.Equal(dec("450")))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"base", "base"}, records[1][:2])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "15.00", records[2][8])
	assert.Equal(t, "60", records[2][9])
}

func TestGenerateRecommendations(t *testing.T) {
	set := sampleSet()
	require.Len(t, set.Recommendations, 1)
	assert.Contains(t, set.Recommendations[0], "more")
	assert.Contains(t, set.Recommendations[0], "450.00")

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}
