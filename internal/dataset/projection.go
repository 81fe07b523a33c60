package dataset

import (
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Extend returns a dataset covering years up to upper. Years past the last
// tabulated one compound the last ceilings (and the last index, when it is
// known) by the projection growth rate; their compensation is zero. The
// result is computed once per upper bound and shared. When upper does not
// exceed MaxYear the receiver itself is returned.
func (ds *Dataset) Extend(upper int) *Dataset {
	if upper <= ds.maxYear {
		return ds
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if cached, ok := ds.extended[upper]; ok {
		return cached
	}

	years := make(map[int]domain.YearParameters, len(ds.years)+upper-ds.maxYear)
	for y, yp := range ds.years {
		years[y] = yp
	}

	growth := decimal.NewFromInt(1).Add(ds.Rules.ProjectionGrowthRate)
	prev := ds.years[ds.maxYear]
	for y := ds.maxYear + 1; y <= upper; y++ {
		next := domain.YearParameters{
			Year:                y,
			WageCeiling:         prev.WageCeiling.Mul(growth),
			CompensationPercent: decimal.Zero,
			Projected:           true,
		}
		if prev.ContributionCeiling != nil {
			c := prev.ContributionCeiling.Mul(growth)
			next.ContributionCeiling = &c
		}
		if prev.RevaluationIndex != nil {
			i := prev.RevaluationIndex.Mul(growth)
			next.RevaluationIndex = &i
		}
		years[y] = next
		prev = next
	}

	out := &Dataset{
		Metadata: ds.Metadata,
		Rules:    ds.Rules,
		years:    years,
		minYear:  ds.minYear,
		maxYear:  upper,
	}
	if ds.extended == nil {
		ds.extended = make(map[int]*Dataset)
	}
	ds.extended[upper] = out
	return out
}
