package calculation

import (
	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/shopspring/decimal"
)

// SecondaryCeiling returns the track-2 wage value of a year: the flat base
// up to the cutover year, then the base compounded by each prior year's index.
func SecondaryCeiling(year int, table IndexTable, rule dataset.SecondaryCeilingRule) (decimal.Decimal, error) {
	ceiling := rule.Base
	if year <= rule.CutoverYear {
		return ceiling, nil
	}
	for y := rule.CutoverYear + 1; y <= year; y++ {
		i, err := table.mustAt(y - 1)
		if err != nil {
			return decimal.Zero, err
		}
		ceiling = ceiling.Mul(i)
	}
	return ceiling, nil
}
