package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() []ScenarioResult {
	years := []domain.YearResult{
		{
			Year:                 2566,
			RevaluationIndex:     decimal.NewFromInt(1),
			RevaluedWage:         decimal.NewFromInt(15000),
			DiscountFactor:       decimal.NewFromInt(1),
			AdjustedWage:         decimal.NewFromInt(15000),
			CumulativeTrack1:     12,
			CombinedAdjustedWage: decimal.NewFromInt(15000),
		},
		{
			Year:                 2567,
			RevaluationIndex:     decimal.NewFromInt(1),
			RevaluedWage:         decimal.NewFromInt(15000),
			DiscountFactor:       decimal.NewFromInt(1),
			AdjustedWage:         decimal.NewFromInt(15000),
			CumulativeTrack1:     24,
			CombinedAdjustedWage: decimal.NewFromInt(15000),
		},
	}
	return []ScenarioResult{{
		Name:        "base",
		Description: "two flat years",
		Result: &domain.CalculationResult{
			StartYear:           2566,
			EndYear:             2567,
			Options:             domain.DefaultOptions(),
			Years:               years,
			FinalCombinedWage:   decimal.NewFromInt(15000),
			TotalMonths:         24,
			AccrualPercent:      decimal.RequireFromString("0.2"),
			LegacyPercent:       decimal.RequireFromString("0.2"),
			LegacyAverageWage:   decimal.NewFromInt(15000),
			CAREAmount:          decimal.NewFromInt(3000),
			LegacyAmount:        decimal.NewFromInt(3000),
			CompensationPercent: decimal.NewFromInt(100),
			CompensatedAmount:   decimal.NewFromInt(3000),
		},
	}}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"table", "console"},
		{"verbose", "console"},
		{"json", "json"},
		{"json-compact", "json"},
		{"csv", "csv"},
		{"csv-years", "csv-years"},
		{"yaml", "yaml"},
		{"yml", "yaml"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, JSONFormatter{}, GetFormatterByName("json-compact"))
	assert.Equal(t, JSONFormatter{Pretty: true}, GetFormatterByName("json"))
}

func TestAvailableFormats(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "csv-years", "html", "json", "yaml"}, AvailableFormats())
	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "verbose")
	assert.Contains(t, aliases, "console-verbose")
	assert.Contains(t, aliases, "yml")
}

func TestFormatCurrency(t *testing.T) {
	assert.Contains(t, FormatCurrency(decimal.NewFromInt(15000)), "15,000.00")
	assert.Contains(t, FormatCurrency(decimal.RequireFromString("1234.567")), "1,234.57")
	assert.Contains(t, FormatCurrency(decimal.Zero), "0.00")
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "20.000%", FormatPercentage(decimal.RequireFromString("0.2")))
	assert.Equal(t, "21.375%", FormatPercentage(decimal.RequireFromString("0.21375")))
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResults())
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "CARE PENSION CALCULATION: base")
	assert.Contains(t, out, "two flat years")
	assert.Contains(t, out, "2566 - 2567")
	assert.Contains(t, out, "20.000%")
	assert.Contains(t, out, "3,000.00")
	assert.Contains(t, out, "Legacy pension")
	assert.NotContains(t, out, "ASSUMPTIONS")

	detailed, err := ConsoleFormatter{ShowDetails: true}.Format(sampleResults())
	require.NoError(t, err)
	assert.Contains(t, string(detailed), "Combined")
	assert.Contains(t, string(detailed), "2567")
	assert.Contains(t, string(detailed), "ASSUMPTIONS")
}

func TestConsoleFormatterWithoutCompensation(t *testing.T) {
	results := sampleResults()
	results[0].Result.Options.CompensationEnabled = false
	data, err := ConsoleFormatter{}.Format(results)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Legacy pension")
	assert.Contains(t, string(data), "Pension payable")
}

func TestJSONFormatter(t *testing.T) {
	for _, f := range []JSONFormatter{{Pretty: true}, {}} {
		data, err := f.Format(sampleResults())
		require.NoError(t, err)

		var decoded []ScenarioResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "base", decoded[0].Name)
		assert.True(t, decoded[0].Result.CompensatedAmount.Equal(decimal.NewFromInt(3000)))
		assert.Len(t, decoded[0].Result.Years, 2)
	}
}

func TestYAMLFormatter(t *testing.T) {
	data, err := YAMLFormatter{}.Format(sampleResults())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "base", decoded[0]["name"])
	assert.Contains(t, string(data), "care_amount")
}

func TestCSVSummarizer(t *testing.T) {
	data, err := CSVSummarizer{}.Format(sampleResults())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, "base", records[1][0])
	assert.Equal(t, "24", records[1][3])
	assert.Equal(t, "3000.00", records[1][len(records[1])-1])
}

func TestCSVYearsFormatter(t *testing.T) {
	data, err := CSVYearsFormatter{}.Format(sampleResults())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2566", records[1][1])
	assert.Equal(t, "24", records[2][7])
}

func TestHTMLFormatter(t *testing.T) {
	data, err := HTMLFormatter{}.Format(sampleResults())
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h2>base</h2>")
	assert.Contains(t, out, "3,000.00")
	assert.Contains(t, out, DefaultAssumptions[0])
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, sampleResults(), "csv"))
	assert.True(t, strings.HasPrefix(buf.String(), "Scenario,"))

	err := GenerateReport(&buf, sampleResults(), "pdf")
	assert.ErrorContains(t, err, "unsupported format")

	err = GenerateReport(&buf, []ScenarioResult{{Name: "empty"}}, "json")
	assert.ErrorContains(t, err, "empty")
}
