package domain

import (
	"github.com/shopspring/decimal"
)

// YearParameters holds the economic parameters of one calendar year of the
// reference dataset
type YearParameters struct {
	Year                int              `yaml:"year" json:"year"`
	ContributionCeiling *decimal.Decimal `yaml:"contribution_ceiling" json:"contribution_ceiling,omitempty"` // C, absent in some dataset variants
	WageCeiling         decimal.Decimal  `yaml:"wage_ceiling" json:"wage_ceiling"`                           // M
	RevaluationIndex    *decimal.Decimal `yaml:"revaluation_index" json:"revaluation_index,omitempty"`       // i, nil when the caller must supply it
	CompensationPercent decimal.Decimal  `yaml:"compensation_percent" json:"compensation_percent"`
	Projected           bool             `yaml:"-" json:"projected,omitempty"`
}

// ContributionCeilingOr returns the contribution ceiling, falling back to the
// wage ceiling for dataset variants that do not tabulate C.
func (yp YearParameters) ContributionCeilingOr() decimal.Decimal {
	if yp.ContributionCeiling != nil {
		return *yp.ContributionCeiling
	}
	return yp.WageCeiling
}

// HasIndex reports whether the dataset resolves the revaluation index itself
func (yp YearParameters) HasIndex() bool {
	return yp.RevaluationIndex != nil
}

// YearInput is the caller-supplied contribution record of one year
type YearInput struct {
	Wage         *decimal.Decimal `yaml:"wage" json:"wage"` // average monthly wage P
	Track1Months int              `yaml:"track1_months" json:"track1_months"`
	Track2Months int              `yaml:"track2_months" json:"track2_months"`
}

// TotalMonths returns the months contributed on both tracks
func (yi YearInput) TotalMonths() int {
	return yi.Track1Months + yi.Track2Months
}

// WageOrZero returns the wage, or zero when none was given
func (yi YearInput) WageOrZero() decimal.Decimal {
	if yi.Wage == nil {
		return decimal.Zero
	}
	return *yi.Wage
}

// Options selects between the calculation variants
type Options struct {
	HasSecondaryTrack    bool `yaml:"has_secondary_track" json:"has_secondary_track"`
	TruncateLegacyMonths bool `yaml:"truncate_legacy_months" json:"truncate_legacy_months"`
	CompensationEnabled  bool `yaml:"compensation_enabled" json:"compensation_enabled"`
}

// DefaultOptions returns the variant with both tracks, untruncated legacy
// months and transition compensation.
func DefaultOptions() Options {
	return Options{
		HasSecondaryTrack:   true,
		CompensationEnabled: true,
	}
}

// CalculationRequest carries every input of one pension calculation
type CalculationRequest struct {
	StartYear             int                     `yaml:"start_year" json:"start_year"`
	EndYear               int                     `yaml:"end_year" json:"end_year"`
	Years                 map[int]YearInput       `yaml:"years" json:"years"`
	IndexOverrides        map[int]decimal.Decimal `yaml:"index_overrides" json:"index_overrides"`
	CompensationOverrides map[int]decimal.Decimal `yaml:"compensation_overrides" json:"compensation_overrides"`
	Options               Options                 `yaml:"options" json:"options"`
}

// YearResult is one row of the per-year series
type YearResult struct {
	Year                 int             `json:"year" yaml:"year"`
	RevaluationIndex     decimal.Decimal `json:"revaluation_index" yaml:"revaluation_index"`
	RevaluedWage         decimal.Decimal `json:"revalued_wage" yaml:"revalued_wage"`
	DiscountFactor       decimal.Decimal `json:"discount_factor" yaml:"discount_factor"`
	AdjustedWage         decimal.Decimal `json:"adjusted_wage" yaml:"adjusted_wage"`
	SecondaryCeiling     decimal.Decimal `json:"secondary_ceiling" yaml:"secondary_ceiling"`
	CumulativeTrack1     int             `json:"cumulative_track1_months" yaml:"cumulative_track1_months"`
	CumulativeTrack2     int             `json:"cumulative_track2_months" yaml:"cumulative_track2_months"`
	CombinedAdjustedWage decimal.Decimal `json:"combined_adjusted_wage" yaml:"combined_adjusted_wage"`
}

// TotalMonths returns the cumulative months across both tracks
func (yr YearResult) TotalMonths() int {
	return yr.CumulativeTrack1 + yr.CumulativeTrack2
}

// CalculationResult is the complete outcome of one calculation. It is built
// fresh for each call and never mutated after being returned.
type CalculationResult struct {
	StartYear           int             `json:"start_year" yaml:"start_year"`
	EndYear             int             `json:"end_year" yaml:"end_year"`
	Options             Options         `json:"options" yaml:"options"`
	Years               []YearResult    `json:"years" yaml:"years"`
	FinalCombinedWage   decimal.Decimal `json:"final_combined_wage" yaml:"final_combined_wage"`
	TotalMonths         int             `json:"total_months" yaml:"total_months"`
	AccrualPercent      decimal.Decimal `json:"accrual_percent" yaml:"accrual_percent"`
	LegacyPercent       decimal.Decimal `json:"legacy_percent" yaml:"legacy_percent"`
	LegacyAverageWage   decimal.Decimal `json:"legacy_average_wage" yaml:"legacy_average_wage"`
	CAREAmount          decimal.Decimal `json:"care_amount" yaml:"care_amount"`
	LegacyAmount        decimal.Decimal `json:"legacy_amount" yaml:"legacy_amount"`
	CompensationPercent decimal.Decimal `json:"compensation_percent" yaml:"compensation_percent"`
	CompensatedAmount   decimal.Decimal `json:"compensated_amount" yaml:"compensated_amount"`
}

// Year returns the row for the given year
func (cr *CalculationResult) Year(year int) (YearResult, bool) {
	for _, yr := range cr.Years {
		if yr.Year == year {
			return yr, true
		}
	}
	return YearResult{}, false
}

// Final returns the row of the benefit year
func (cr *CalculationResult) Final() YearResult {
	if len(cr.Years) == 0 {
		return YearResult{}
	}
	return cr.Years[len(cr.Years)-1]
}
