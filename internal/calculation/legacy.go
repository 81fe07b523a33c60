package calculation

import (
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// LegacyMonthLimit is the number of trailing contribution months averaged by
// the final-average formula
const LegacyMonthLimit = 60

// LegacyYear is one year as seen by the final-average formula
type LegacyYear struct {
	Year             int
	Input            domain.YearInput
	SecondaryCeiling decimal.Decimal
}

// LegacyAverageWage walks the years backward from the last one and averages
// the wage over the trailing limit months. Track-2 months are valued at the
// secondary ceiling. The oldest year reached only contributes the months
// still missing from the limit. With fewer months on record the average is
// taken over what exists.
func LegacyAverageWage(years []LegacyYear, limit int) (decimal.Decimal, error) {
	var weights []int
	var averages []decimal.Decimal
	accumulated := 0

	for i := len(years) - 1; i >= 0 && accumulated < limit; i-- {
		y := years[i]
		months := y.Input.TotalMonths()

		avg := decimal.Zero
		if months > 0 {
			avg = y.Input.WageOrZero().Mul(decimal.NewFromInt(int64(y.Input.Track1Months))).
				Add(y.SecondaryCeiling.Mul(decimal.NewFromInt(int64(y.Input.Track2Months)))).
				Div(decimal.NewFromInt(int64(months)))
		}
		averages = append(averages, avg)
		weights = append(weights, min(months, limit-accumulated))
		accumulated += months
	}

	if len(weights) != len(averages) {
		return decimal.Zero, domain.NewCalculationError(domain.InternalInvariantViolation, 0,
			"legacy accumulation has %d weights for %d averages", len(weights), len(averages))
	}

	weightedSum := decimal.Zero
	weightTotal := 0
	for i, w := range weights {
		weightedSum = weightedSum.Add(averages[i].Mul(decimal.NewFromInt(int64(w))))
		weightTotal += w
	}
	if weightTotal == 0 {
		return decimal.Zero, nil
	}
	return weightedSum.Div(decimal.NewFromInt(int64(weightTotal))), nil
}
