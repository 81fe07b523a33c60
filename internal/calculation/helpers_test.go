package calculation

import (
	"testing"

	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// flatDataset builds a table where every index is 1 and no override is ever
// required inside [from, to].
func flatDataset(t *testing.T, from, to int) *dataset.Dataset {
	t.Helper()
	rows := make([]domain.YearParameters, 0, to-from+1)
	for y := from; y <= to; y++ {
		rows = append(rows, domain.YearParameters{
			Year:                y,
			ContributionCeiling: decPtr("16250"),
			WageCeiling:         dec("15000"),
			RevaluationIndex:    decPtr("1"),
			CompensationPercent: dec("100"),
		})
	}
	rules := dataset.Rules{
		RevaluationEffectiveYear: from + 2,
		OverrideCutoverYear:      to + 1,
		DiscountWindow:           4,
		ProjectionGrowthRate:     dec("0.04"),
		SecondaryCeiling: dataset.SecondaryCeilingRule{
			Base:        dec("4800"),
			CutoverYear: to,
		},
	}
	ds, err := dataset.New(dataset.Metadata{Version: "test"}, rules, rows)
	require.NoError(t, err)
	return ds
}

func constantRequest(start, end int, wage string, track1, track2 int) *domain.CalculationRequest {
	years := make(map[int]domain.YearInput, end-start+1)
	for y := start; y <= end; y++ {
		years[y] = domain.YearInput{Wage: decPtr(wage), Track1Months: track1, Track2Months: track2}
	}
	return &domain.CalculationRequest{
		StartYear: start,
		EndYear:   end,
		Years:     years,
		Options:   domain.DefaultOptions(),
	}
}

// overridesFrom supplies value for every year from..to
func overridesFrom(from, to int, value string) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal)
	for y := from; y <= to; y++ {
		out[y] = dec(value)
	}
	return out
}
