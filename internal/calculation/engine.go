package calculation

import (
	"context"
	"maps"
	"slices"

	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultProjectionLimit is the last year the default engine accepts. Years
// past the tabulated dataset are projected up to it.
const DefaultProjectionLimit = 2610

const maxMonthsPerYear = 12

// CalculationEngine runs CARE pension calculations against a reference
// dataset. It holds no per-call state and can be shared between goroutines.
type CalculationEngine struct {
	Dataset *dataset.Dataset
	Logger  Logger
}

// NewCalculationEngine creates an engine over the embedded dataset projected
// to DefaultProjectionLimit
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithDataset(dataset.Default().Extend(DefaultProjectionLimit))
}

// NewCalculationEngineWithDataset creates an engine over an explicit dataset
func NewCalculationEngineWithDataset(ds *dataset.Dataset) *CalculationEngine {
	return &CalculationEngine{
		Dataset: ds,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes the pension for one request. Any invalid input aborts
// the whole calculation with a *domain.CalculationError.
func (ce *CalculationEngine) Calculate(ctx context.Context, req *domain.CalculationRequest) (*domain.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.NewCalculationError(domain.MissingYearData, 0, "no calculation request")
	}
	ds := ce.Dataset

	if err := checkBounds(ds, req.StartYear); err != nil {
		return nil, err
	}
	if err := checkBounds(ds, req.EndYear); err != nil {
		return nil, err
	}
	years := ds.Range(req.StartYear, req.EndYear)
	endYear := years[len(years)-1]
	ce.Logger.Debugf("calculating %d..%d (%d years)", years[0], endYear, len(years))

	for _, y := range years {
		if err := validateYearInput(y, req.Years[y], req.Options); err != nil {
			return nil, err
		}
	}

	table, ignored, err := ResolveIndexTable(ds, endYear, req.IndexOverrides)
	if err != nil {
		return nil, err
	}
	for _, y := range ignored {
		ce.Logger.Debugf("ignoring index override for tabulated year %d", y)
	}

	compensation, err := compensationPercent(ds, endYear, req.CompensationOverrides)
	if err != nil {
		return nil, err
	}

	steps := make([]YearStep, 0, len(years))
	legacyYears := make([]LegacyYear, 0, len(years))
	for idx, y := range years {
		yp, ok := ds.Lookup(y)
		if !ok {
			return nil, domain.NewCalculationError(domain.MissingYearData, y, "year is not in the dataset")
		}
		df, err := DiscountFactor(y, table, ds.Rules.RevaluationEffectiveYear, ds.Rules.DiscountWindow)
		if err != nil {
			return nil, err
		}
		sc, err := SecondaryCeiling(y, table, ds.Rules.SecondaryCeiling)
		if err != nil {
			return nil, err
		}
		index, err := table.mustAt(y)
		if err != nil {
			return nil, err
		}

		step := YearStep{
			Year:                y,
			First:               idx == 0,
			Input:               req.Years[y],
			Index:               index,
			ContributionCeiling: yp.ContributionCeilingOr(),
			WageCeiling:         yp.WageCeiling,
			DiscountFactor:      df,
			SecondaryCeiling:    sc,
		}
		if idx > 0 {
			if step.PreviousIndex, err = table.mustAt(y - 1); err != nil {
				return nil, err
			}
		}
		steps = append(steps, step)
		legacyYears = append(legacyYears, LegacyYear{Year: y, Input: req.Years[y], SecondaryCeiling: sc})
	}

	rows := Fold(steps)
	final := rows[len(rows)-1]

	legacyWage := decimal.Zero
	if req.Options.CompensationEnabled {
		if legacyWage, err = LegacyAverageWage(legacyYears, LegacyMonthLimit); err != nil {
			return nil, err
		}
	}

	comp := Compose(final.CombinedAdjustedWage, legacyWage, final.TotalMonths(), compensation, req.Options)
	ce.Logger.Debugf("final wage %s over %d months: CARE %s, legacy %s, compensated %s",
		final.CombinedAdjustedWage.StringFixed(2), final.TotalMonths(),
		comp.CAREAmount.StringFixed(2), comp.LegacyAmount.StringFixed(2), comp.CompensatedAmount.StringFixed(2))

	return &domain.CalculationResult{
		StartYear:           years[0],
		EndYear:             endYear,
		Options:             req.Options,
		Years:               rows,
		FinalCombinedWage:   final.CombinedAdjustedWage,
		TotalMonths:         final.TotalMonths(),
		AccrualPercent:      comp.AccrualPercent,
		LegacyPercent:       comp.LegacyPercent,
		LegacyAverageWage:   legacyWage,
		CAREAmount:          comp.CAREAmount,
		LegacyAmount:        comp.LegacyAmount,
		CompensationPercent: compensation,
		CompensatedAmount:   comp.CompensatedAmount,
	}, nil
}

func checkBounds(ds *dataset.Dataset, year int) error {
	if year < ds.MinYear() || year > ds.MaxYear() {
		return domain.NewCalculationError(domain.MissingYearData, year,
			"year must be between %d and %d", ds.MinYear(), ds.MaxYear())
	}
	return nil
}

func validateYearInput(year int, in domain.YearInput, opts domain.Options) error {
	if in.Wage == nil {
		return domain.NewCalculationError(domain.InvalidWage, year, "wage is required")
	}
	if in.Track1Months < 0 || in.Track1Months > maxMonthsPerYear {
		return domain.NewCalculationError(domain.InvalidMonths, year, "track 1 months %d must be between 0 and %d", in.Track1Months, maxMonthsPerYear)
	}
	if in.Track2Months < 0 || in.Track2Months > maxMonthsPerYear {
		return domain.NewCalculationError(domain.InvalidMonths, year, "track 2 months %d must be between 0 and %d", in.Track2Months, maxMonthsPerYear)
	}
	if in.Track2Months > 0 && !opts.HasSecondaryTrack {
		return domain.NewCalculationError(domain.InvalidMonths, year, "track 2 months given but the secondary track is disabled")
	}
	if in.TotalMonths() > maxMonthsPerYear {
		return domain.NewCalculationError(domain.InvalidMonths, year, "total months %d exceed %d", in.TotalMonths(), maxMonthsPerYear)
	}
	if in.Wage.IsNegative() {
		return domain.NewCalculationError(domain.InvalidWage, year, "wage %s cannot be negative", in.Wage)
	}
	if in.TotalMonths() == 0 && in.Wage.IsPositive() {
		return domain.NewCalculationError(domain.InvalidWage, year, "wage %s given without contribution months", in.Wage)
	}
	if in.Track1Months > 0 && !in.Wage.IsPositive() {
		return domain.NewCalculationError(domain.InvalidWage, year, "wage must be positive when track 1 months are given")
	}
	return nil
}

func compensationPercent(ds *dataset.Dataset, endYear int, overrides map[int]decimal.Decimal) (decimal.Decimal, error) {
	for _, y := range slices.Sorted(maps.Keys(overrides)) {
		v := overrides[y]
		if v.IsNegative() || v.GreaterThan(hundred) {
			return decimal.Zero, domain.NewCalculationError(domain.InvalidCompensation, y, "compensation percent %s must be between 0 and 100", v)
		}
	}
	if v, ok := overrides[endYear]; ok {
		return v, nil
	}
	yp, ok := ds.Lookup(endYear)
	if !ok {
		return decimal.Zero, domain.NewCalculationError(domain.MissingYearData, endYear, "year is not in the dataset")
	}
	return yp.CompensationPercent, nil
}
