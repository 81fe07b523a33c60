package calculation

import (
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// RecurrenceState is carried from one year to the next. The zero value is
// the state before the first year.
type RecurrenceState struct {
	PreviousRevalued decimal.Decimal
	PreviousAdjusted decimal.Decimal
	PreviousTrack1   int
	PreviousTrack2   int
}

// YearStep holds everything Step needs for one year besides the state
type YearStep struct {
	Year                int
	First               bool
	Input               domain.YearInput
	Index               decimal.Decimal
	PreviousIndex       decimal.Decimal // index of the prior year; unused when First
	ContributionCeiling decimal.Decimal
	WageCeiling         decimal.Decimal
	DiscountFactor      decimal.Decimal
	SecondaryCeiling    decimal.Decimal
}

// Step advances the recurrence by one year
func Step(state RecurrenceState, in YearStep) (domain.YearResult, RecurrenceState) {
	w1 := in.Input.Track1Months
	w2 := in.Input.Track2Months
	wage := in.Input.WageOrZero()

	cum1 := state.PreviousTrack1 + w1
	cum2 := state.PreviousTrack2 + w2
	carried := !in.First && state.PreviousTrack1 > 0

	revalued := wage
	if carried {
		i := decimal.Max(in.PreviousIndex, one)
		candidate := decimal.Min(state.PreviousRevalued.Mul(i), in.ContributionCeiling)
		revalued = candidate.Mul(decimal.NewFromInt(int64(state.PreviousTrack1))).
			Add(wage.Mul(decimal.NewFromInt(int64(w1)))).
			Div(decimal.NewFromInt(int64(cum1)))
	}

	part1 := decimal.Min(revalued.Div(in.DiscountFactor), in.WageCeiling)
	part2 := revalued
	if carried {
		part2 = decimal.Min(state.PreviousAdjusted, revalued)
	}
	adjusted := decimal.Max(part1, part2)

	combined := decimal.Zero
	if total := cum1 + cum2; total > 0 {
		combined = adjusted.Mul(decimal.NewFromInt(int64(cum1))).
			Add(in.SecondaryCeiling.Mul(decimal.NewFromInt(int64(cum2)))).
			Div(decimal.NewFromInt(int64(total)))
	}

	result := domain.YearResult{
		Year:                 in.Year,
		RevaluationIndex:     in.Index,
		RevaluedWage:         revalued,
		DiscountFactor:       in.DiscountFactor,
		AdjustedWage:         adjusted,
		SecondaryCeiling:     in.SecondaryCeiling,
		CumulativeTrack1:     cum1,
		CumulativeTrack2:     cum2,
		CombinedAdjustedWage: combined,
	}
	next := RecurrenceState{
		PreviousRevalued: revalued,
		PreviousAdjusted: adjusted,
		PreviousTrack1:   cum1,
		PreviousTrack2:   cum2,
	}
	return result, next
}

// Fold runs Step over the ordered years starting from the zero state
func Fold(steps []YearStep) []domain.YearResult {
	results := make([]domain.YearResult, 0, len(steps))
	var state RecurrenceState
	for _, s := range steps {
		var r domain.YearResult
		r, state = Step(state, s)
		results = append(results, r)
	}
	return results
}
