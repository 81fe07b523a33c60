package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `
metadata:
  description: "Sample member"
options:
  truncate_legacy_months: true
defaults:
  wage: 12000
  track1_months: 12
scenarios:
  - name: base
    start_year: 2550
    end_year: 2570
    years:
      2555: {wage: 16000}
      2560: {track1_months: 0, track2_months: 12}
      2561: {track1_months: 6, track2_months: 6}
    index_overrides:
      2569: 1.05
  - name: no-compensation
    start_year: 2550
    end_year: 2570
    options:
      compensation_enabled: false
      truncate_legacy_months: false
    compensation_overrides:
      2570: 40
`

func TestParse(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.Parse([]byte(sampleInput))
	require.NoError(t, err)

	assert.Equal(t, "Sample member", input.Metadata.Description)
	require.Len(t, input.Scenarios, 2)
	assert.Equal(t, "base", input.Scenarios[0].Name)
	assert.True(t, input.Defaults.Wage.Equal(decimal.NewFromInt(12000)))
	assert.True(t, input.Scenarios[0].IndexOverrides[2569].Equal(decimal.RequireFromString("1.05")))
	assert.Equal(t, 12, *input.Scenarios[0].Years[2560].Track2Months)
}

func TestResolveOptions(t *testing.T) {
	input, err := NewInputParser().Parse([]byte(sampleInput))
	require.NoError(t, err)

	base := input.ResolveOptions(&input.Scenarios[0])
	assert.True(t, base.HasSecondaryTrack)
	assert.True(t, base.TruncateLegacyMonths, "file level option applies")
	assert.True(t, base.CompensationEnabled)

	alt := input.ResolveOptions(&input.Scenarios[1])
	assert.False(t, alt.TruncateLegacyMonths, "scenario level option wins")
	assert.False(t, alt.CompensationEnabled)
}

func TestBuildRequest(t *testing.T) {
	input, err := NewInputParser().Parse([]byte(sampleInput))
	require.NoError(t, err)
	ds := dataset.Default()

	req := input.BuildRequest(&input.Scenarios[0], ds)

	assert.Equal(t, 2550, req.StartYear)
	assert.Equal(t, 2570, req.EndYear)
	assert.Len(t, req.Years, 21)

	assert.True(t, req.Years[2551].Wage.Equal(decimal.NewFromInt(12000)), "default wage")
	assert.Equal(t, 12, req.Years[2551].Track1Months)
	assert.True(t, req.Years[2555].Wage.Equal(decimal.NewFromInt(16000)), "explicit wage")
	assert.Equal(t, 12, req.Years[2555].Track1Months, "months keep the default")
	assert.True(t, req.Years[2560].Wage.IsZero(), "no track 1 months zeroes the wage")
	assert.Equal(t, 12, req.Years[2560].Track2Months)
	assert.True(t, req.Years[2561].Wage.Equal(decimal.NewFromInt(12000)))

	assert.Len(t, req.IndexOverrides, 3, "years 2568..2570 need an override")
	assert.True(t, req.IndexOverrides[2568].Equal(DefaultIndex))
	assert.True(t, req.IndexOverrides[2569].Equal(decimal.RequireFromString("1.05")))
	assert.True(t, req.Options.TruncateLegacyMonths)

	alt := input.BuildRequest(&input.Scenarios[1], ds)
	assert.True(t, alt.CompensationOverrides[2570].Equal(decimal.NewFromInt(40)))
}

func TestBuildRequest_BuiltInDefaults(t *testing.T) {
	input, err := NewInputParser().Parse([]byte(`
scenarios:
  - {name: plain, start_year: 2541, end_year: 2545}
`))
	require.NoError(t, err)

	req := input.BuildRequest(&input.Scenarios[0], dataset.Default())
	for y := 2541; y <= 2545; y++ {
		assert.True(t, req.Years[y].Wage.Equal(DefaultWage), "year %d", y)
		assert.Equal(t, DefaultTrack1Months, req.Years[y].Track1Months)
		assert.Equal(t, DefaultTrack2Months, req.Years[y].Track2Months)
	}
	assert.Empty(t, req.IndexOverrides)
}

func TestValidateConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "No scenarios",
			input:    `metadata: {description: empty}`,
			contains: "no scenarios provided",
		},
		{
			name:     "Missing name",
			input:    `scenarios: [{start_year: 2541, end_year: 2550}]`,
			contains: "scenario name is required",
		},
		{
			name:     "Missing start year",
			input:    `scenarios: [{name: a, end_year: 2550}]`,
			contains: "start year is required",
		},
		{
			name:     "Missing end year",
			input:    `scenarios: [{name: a, start_year: 2541}]`,
			contains: "end year is required",
		},
		{
			name: "Duplicate names",
			input: `scenarios:
  - {name: a, start_year: 2541, end_year: 2550}
  - {name: a, start_year: 2541, end_year: 2551}`,
			contains: "used more than once",
		},
		{
			name: "Year outside the range",
			input: `scenarios:
  - name: a
    start_year: 2541
    end_year: 2550
    years: {2551: {wage: 1}}`,
			contains: "outside 2541..2550",
		},
		{
			name: "Default months out of range",
			input: `defaults: {track1_months: 13}
scenarios: [{name: a, start_year: 2541, end_year: 2550}]`,
			contains: "default track 1 months",
		},
		{
			name: "Default index below one",
			input: `defaults: {index: 0.5}
scenarios: [{name: a, start_year: 2541, end_year: 2550}]`,
			contains: "default index must be at least 1",
		},
		{
			name: "Non numeric wage",
			input: `scenarios:
  - name: a
    start_year: 2541
    end_year: 2550
    years: {2545: {wage: abc}}`,
			contains: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "member.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleInput), 0o600))

	input, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	_, ok := input.Find("no-compensation")
	assert.True(t, ok)
	_, ok = input.Find("missing")
	assert.False(t, ok)

	_, err = NewInputParser().LoadFromFile(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestScenarioDeepCopy(t *testing.T) {
	wage := decimal.NewFromInt(20000)
	months := 6
	on := true
	orig := &ScenarioInput{
		Name:           "base",
		StartYear:      2560,
		EndYear:        2565,
		Options:        OptionsInput{CompensationEnabled: &on},
		Years:          map[int]YearEntry{2561: {Wage: &wage, Track1Months: &months}},
		IndexOverrides: map[int]decimal.Decimal{2568: decimal.NewFromInt(1)},
	}

	cp := orig.DeepCopy()
	require.Equal(t, orig, cp)

	*cp.Years[2561].Wage = decimal.NewFromInt(1)
	*cp.Options.CompensationEnabled = false
	cp.IndexOverrides[2569] = decimal.NewFromInt(2)

	assert.True(t, orig.Years[2561].Wage.Equal(decimal.NewFromInt(20000)))
	assert.True(t, *orig.Options.CompensationEnabled)
	assert.Len(t, orig.IndexOverrides, 1)
	assert.Nil(t, (*ScenarioInput)(nil).DeepCopy())
}
