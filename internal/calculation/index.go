package calculation

import (
	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// IndexTable maps every year from the dataset floor to the benefit year to a
// concrete revaluation index
type IndexTable struct {
	minYear int
	values  map[int]decimal.Decimal
}

// NewIndexTable builds a table from explicit values. minYear is the dataset
// floor used to bound the discount window.
func NewIndexTable(minYear int, values map[int]decimal.Decimal) IndexTable {
	copied := make(map[int]decimal.Decimal, len(values))
	for y, v := range values {
		copied[y] = v
	}
	return IndexTable{minYear: minYear, values: copied}
}

// MinYear returns the dataset floor
func (t IndexTable) MinYear() int { return t.minYear }

// At returns the index of a year
func (t IndexTable) At(year int) (decimal.Decimal, bool) {
	v, ok := t.values[year]
	return v, ok
}

func (t IndexTable) mustAt(year int) (decimal.Decimal, error) {
	v, ok := t.values[year]
	if !ok {
		return decimal.Zero, domain.NewCalculationError(domain.MissingIndexOverride, year, "revaluation index is not resolved")
	}
	return v, nil
}

// ResolveIndexTable resolves the index of every dataset year up to endYear,
// taking caller overrides for years the dataset cannot answer itself.
// Overrides for other years are reported through ignored and not applied.
func ResolveIndexTable(ds *dataset.Dataset, endYear int, overrides map[int]decimal.Decimal) (table IndexTable, ignored []int, err error) {
	values := make(map[int]decimal.Decimal)
	for _, y := range ds.Years() {
		if y > endYear {
			break
		}
		yp, _ := ds.Lookup(y)
		if !ds.NeedsOverride(y) {
			if _, ok := overrides[y]; ok {
				ignored = append(ignored, y)
			}
			values[y] = *yp.RevaluationIndex
			continue
		}
		override, ok := overrides[y]
		if !ok {
			return IndexTable{}, nil, domain.NewCalculationError(domain.MissingIndexOverride, y, "revaluation index must be supplied")
		}
		if override.LessThan(one) {
			return IndexTable{}, nil, domain.NewCalculationError(domain.InvalidIndex, y, "revaluation index %s must be at least 1", override)
		}
		values[y] = override
	}
	return IndexTable{minYear: ds.MinYear(), values: values}, ignored, nil
}
