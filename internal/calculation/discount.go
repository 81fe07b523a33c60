package calculation

import (
	"github.com/shopspring/decimal"
)

// DiscountFactor returns the ratio between the compounded index over the
// window of up to window years before year and the simple average of its
// running products (counting the empty product 1). It is exactly 1 before the
// revaluation-effective year or when the window is empty.
func DiscountFactor(year int, table IndexTable, effectiveYear, window int) (decimal.Decimal, error) {
	if year < effectiveYear {
		return one, nil
	}
	from := max(year-window, table.MinYear())
	if from >= year {
		return one, nil
	}

	compounded := one
	sum := one
	count := 0
	for k := from; k < year; k++ {
		i, err := table.mustAt(k)
		if err != nil {
			return decimal.Zero, err
		}
		compounded = compounded.Mul(i)
		sum = sum.Add(compounded)
		count++
	}
	simpleAvg := sum.Div(decimal.NewFromInt(int64(count + 1)))
	return compounded.Div(simpleAvg), nil
}
