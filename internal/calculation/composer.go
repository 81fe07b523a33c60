package calculation

import (
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Accrual rule: a flat 20% up to 15 years of contributions, then 0.125% per
// additional month.
const AccrualFloorMonths = 180

var (
	accrualBase     = decimal.RequireFromString("0.20")
	accrualPerMonth = decimal.RequireFromString("0.00125")
	hundred         = decimal.NewFromInt(100)
)

// AccrualPercent returns the fraction of the wage base paid as pension
func AccrualPercent(totalMonths int) decimal.Decimal {
	if totalMonths <= AccrualFloorMonths {
		return accrualBase
	}
	excess := decimal.NewFromInt(int64(totalMonths - AccrualFloorMonths))
	return accrualBase.Add(accrualPerMonth.Mul(excess))
}

// LegacyAccrualMonths returns the months used for the legacy percentage,
// cut down to whole years when truncate is set
func LegacyAccrualMonths(totalMonths int, truncate bool) int {
	if truncate {
		return totalMonths / 12 * 12
	}
	return totalMonths
}

// Composition holds the scalar outputs of the pension composer
type Composition struct {
	AccrualPercent    decimal.Decimal
	LegacyPercent     decimal.Decimal
	CAREAmount        decimal.Decimal
	LegacyAmount      decimal.Decimal
	CompensatedAmount decimal.Decimal
}

// Compose derives both formula amounts and applies transition compensation.
// Without compensation the legacy amount is not computed and the CARE amount
// is final.
func Compose(finalCombinedWage, legacyWage decimal.Decimal, totalMonths int, compensationPercent decimal.Decimal, opts domain.Options) Composition {
	c := Composition{AccrualPercent: AccrualPercent(totalMonths)}
	c.CAREAmount = c.AccrualPercent.Mul(finalCombinedWage)
	c.CompensatedAmount = c.CAREAmount
	if !opts.CompensationEnabled {
		return c
	}

	c.LegacyPercent = AccrualPercent(LegacyAccrualMonths(totalMonths, opts.TruncateLegacyMonths))
	c.LegacyAmount = c.LegacyPercent.Mul(legacyWage)
	shortfall := decimal.Max(c.LegacyAmount.Sub(c.CAREAmount), decimal.Zero)
	c.CompensatedAmount = c.CAREAmount.Add(shortfall.Mul(compensationPercent).Div(hundred))
	return c
}
