package transform

import (
	"fmt"

	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/shopspring/decimal"
)

// ExtendContribution keeps the member contributing for extra years past the
// scenario's end year. The added years take the input file defaults.
type ExtendContribution struct {
	Years int
}

func (ec *ExtendContribution) Name() string { return "extend_years" }

func (ec *ExtendContribution) Description() string {
	return fmt.Sprintf("Contribute for %d more year(s)", ec.Years)
}

func (ec *ExtendContribution) Validate(base *config.ScenarioInput) error {
	if base == nil {
		return NewTransformError(ec.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if ec.Years < 1 {
		return NewTransformError(ec.Name(), "validate", fmt.Sprintf("years must be positive, got %d", ec.Years), nil)
	}
	return nil
}

func (ec *ExtendContribution) Apply(base *config.ScenarioInput) (*config.ScenarioInput, error) {
	modified := base.DeepCopy()
	modified.EndYear += ec.Years
	return modified, nil
}

// SetWage fixes the monthly wage for every year from FromYear to the end of
// the scenario. FromYear zero means the start year.
type SetWage struct {
	Wage     decimal.Decimal
	FromYear int
}

func (sw *SetWage) Name() string { return "set_wage" }

func (sw *SetWage) Description() string {
	if sw.FromYear == 0 {
		return fmt.Sprintf("Set monthly wage to %s", sw.Wage.StringFixed(2))
	}
	return fmt.Sprintf("Set monthly wage to %s from %d", sw.Wage.StringFixed(2), sw.FromYear)
}

func (sw *SetWage) Validate(base *config.ScenarioInput) error {
	if base == nil {
		return NewTransformError(sw.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if sw.Wage.IsNegative() {
		return NewTransformError(sw.Name(), "validate", "wage must be non-negative", nil)
	}
	if sw.FromYear != 0 && sw.FromYear > base.EndYear {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("year %d is after the end year %d", sw.FromYear, base.EndYear), nil)
	}
	return nil
}

func (sw *SetWage) Apply(base *config.ScenarioInput) (*config.ScenarioInput, error) {
	modified := base.DeepCopy()
	from := max(sw.FromYear, modified.StartYear)
	if modified.Years == nil {
		modified.Years = make(map[int]config.YearEntry)
	}
	for y := from; y <= modified.EndYear; y++ {
		entry := modified.Years[y]
		w := sw.Wage
		entry.Wage = &w
		modified.Years[y] = entry
	}
	return modified, nil
}

// SetIndex assumes a single revaluation index for every scenario year. Years
// whose index is already tabulated keep the tabulated value.
type SetIndex struct {
	Index decimal.Decimal
}

func (si *SetIndex) Name() string { return "set_index" }

func (si *SetIndex) Description() string {
	return fmt.Sprintf("Assume a revaluation index of %s", si.Index.String())
}

func (si *SetIndex) Validate(base *config.ScenarioInput) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if si.Index.LessThan(decimal.NewFromInt(1)) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("index must be at least 1, got %s", si.Index), nil)
	}
	return nil
}

func (si *SetIndex) Apply(base *config.ScenarioInput) (*config.ScenarioInput, error) {
	modified := base.DeepCopy()
	if modified.IndexOverrides == nil {
		modified.IndexOverrides = make(map[int]decimal.Decimal)
	}
	lo, hi := min(modified.StartYear, modified.EndYear), max(modified.StartYear, modified.EndYear)
	for y := lo; y <= hi; y++ {
		modified.IndexOverrides[y] = si.Index
	}
	return modified, nil
}

// Option names accepted by SetOption
const (
	OptionSecondaryTrack = "secondary_track"
	OptionTruncateLegacy = "truncate_legacy"
	OptionCompensation   = "compensation"
)

// SetOption switches one calculation option for the scenario
type SetOption struct {
	Option string
	Value  bool
}

func (so *SetOption) Name() string { return "set_option" }

func (so *SetOption) Description() string {
	state := "off"
	if so.Value {
		state = "on"
	}
	return fmt.Sprintf("Turn %s %s", so.Option, state)
}

func (so *SetOption) Validate(base *config.ScenarioInput) error {
	if base == nil {
		return NewTransformError(so.Name(), "validate", "base scenario cannot be nil", nil)
	}
	switch so.Option {
	case OptionSecondaryTrack, OptionTruncateLegacy, OptionCompensation:
		return nil
	default:
		return NewTransformError(so.Name(), "validate", fmt.Sprintf("unknown option %q", so.Option), nil)
	}
}

func (so *SetOption) Apply(base *config.ScenarioInput) (*config.ScenarioInput, error) {
	modified := base.DeepCopy()
	v := so.Value
	switch so.Option {
	case OptionSecondaryTrack:
		modified.Options.HasSecondaryTrack = &v
	case OptionTruncateLegacy:
		modified.Options.TruncateLegacyMonths = &v
	case OptionCompensation:
		modified.Options.CompensationEnabled = &v
	}
	return modified, nil
}

// SplitTracks moves Months of every year from FromYear on to track 2, leaving
// the rest of the year on track 1.
type SplitTracks struct {
	Months   int
	FromYear int
}

func (st *SplitTracks) Name() string { return "split_tracks" }

func (st *SplitTracks) Description() string {
	return fmt.Sprintf("Spend %d month(s) a year on track 2", st.Months)
}

func (st *SplitTracks) Validate(base *config.ScenarioInput) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if st.Months < 0 || st.Months > 12 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("months must be within 0..12, got %d", st.Months), nil)
	}
	return nil
}

func (st *SplitTracks) Apply(base *config.ScenarioInput) (*config.ScenarioInput, error) {
	modified := base.DeepCopy()
	if modified.Years == nil {
		modified.Years = make(map[int]config.YearEntry)
	}
	on := true
	if st.Months > 0 {
		modified.Options.HasSecondaryTrack = &on
	}
	from := max(st.FromYear, modified.StartYear)
	for y := from; y <= modified.EndYear; y++ {
		entry := modified.Years[y]
		t1, t2 := 12-st.Months, st.Months
		entry.Track1Months = &t1
		entry.Track2Months = &t2
		modified.Years[y] = entry
	}
	return modified, nil
}
