package config

import (
	"fmt"
	"maps"
	"os"

	"github.com/rgehrsitz/carecalc/internal/dataset"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults used when an input file leaves them out
var (
	DefaultWage         = decimal.NewFromInt(15000)
	DefaultTrack1Months = 12
	DefaultTrack2Months = 0
	DefaultIndex        = decimal.RequireFromString("1.03")
)

// InputFile is the on-disk scenario configuration
type InputFile struct {
	Metadata  Metadata        `yaml:"metadata" json:"metadata"`
	Options   OptionsInput    `yaml:"options" json:"options"`
	Defaults  DefaultsInput   `yaml:"defaults" json:"defaults"`
	Scenarios []ScenarioInput `yaml:"scenarios" json:"scenarios"`
}

// Metadata describes an input file
type Metadata struct {
	Description string `yaml:"description" json:"description"`
	Dataset     string `yaml:"dataset,omitempty" json:"dataset,omitempty"` // optional reference table path
}

// OptionsInput selects calculation variants; unset fields keep the default
type OptionsInput struct {
	HasSecondaryTrack    *bool `yaml:"has_secondary_track,omitempty" json:"has_secondary_track,omitempty"`
	TruncateLegacyMonths *bool `yaml:"truncate_legacy_months,omitempty" json:"truncate_legacy_months,omitempty"`
	CompensationEnabled  *bool `yaml:"compensation_enabled,omitempty" json:"compensation_enabled,omitempty"`
}

// DefaultsInput fills every year a scenario does not list
type DefaultsInput struct {
	Wage         *decimal.Decimal `yaml:"wage,omitempty" json:"wage,omitempty"`
	Track1Months *int             `yaml:"track1_months,omitempty" json:"track1_months,omitempty"`
	Track2Months *int             `yaml:"track2_months,omitempty" json:"track2_months,omitempty"`
	Index        *decimal.Decimal `yaml:"index,omitempty" json:"index,omitempty"` // for years needing an override
}

// YearEntry overrides the defaults for one year
type YearEntry struct {
	Wage         *decimal.Decimal `yaml:"wage,omitempty" json:"wage,omitempty"`
	Track1Months *int             `yaml:"track1_months,omitempty" json:"track1_months,omitempty"`
	Track2Months *int             `yaml:"track2_months,omitempty" json:"track2_months,omitempty"`
}

// ScenarioInput is one named calculation
type ScenarioInput struct {
	Name                  string                  `yaml:"name" json:"name"`
	Description           string                  `yaml:"description,omitempty" json:"description,omitempty"`
	StartYear             int                     `yaml:"start_year" json:"start_year"`
	EndYear               int                     `yaml:"end_year" json:"end_year"`
	Options               OptionsInput            `yaml:"options,omitempty" json:"options,omitempty"`
	Years                 map[int]YearEntry       `yaml:"years,omitempty" json:"years,omitempty"`
	IndexOverrides        map[int]decimal.Decimal `yaml:"index_overrides,omitempty" json:"index_overrides,omitempty"`
	CompensationOverrides map[int]decimal.Decimal `yaml:"compensation_overrides,omitempty" json:"compensation_overrides,omitempty"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*InputFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes
func (ip *InputParser) Parse(data []byte) (*InputFile, error) {
	var input InputFile
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateConfiguration(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &input, nil
}

// ValidateConfiguration checks the structure of a loaded file. Semantic
// checks on wages, months and indices are left to the engine.
func (ip *InputParser) ValidateConfiguration(input *InputFile) error {
	if err := ip.validateDefaults(&input.Defaults); err != nil {
		return fmt.Errorf("defaults validation failed: %w", err)
	}
	if len(input.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	seen := make(map[string]bool, len(input.Scenarios))
	for i := range input.Scenarios {
		scenario := &input.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario name %s is used more than once", scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

func (ip *InputParser) validateDefaults(d *DefaultsInput) error {
	if d.Wage != nil && d.Wage.IsNegative() {
		return fmt.Errorf("default wage cannot be negative")
	}
	if d.Track1Months != nil && (*d.Track1Months < 0 || *d.Track1Months > 12) {
		return fmt.Errorf("default track 1 months must be between 0 and 12")
	}
	if d.Track2Months != nil && (*d.Track2Months < 0 || *d.Track2Months > 12) {
		return fmt.Errorf("default track 2 months must be between 0 and 12")
	}
	if d.Index != nil && d.Index.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("default index must be at least 1")
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *ScenarioInput) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if scenario.StartYear == 0 {
		return fmt.Errorf("start year is required")
	}
	if scenario.EndYear == 0 {
		return fmt.Errorf("end year is required")
	}
	lo, hi := min(scenario.StartYear, scenario.EndYear), max(scenario.StartYear, scenario.EndYear)
	for year := range scenario.Years {
		if year < lo || year > hi {
			return fmt.Errorf("year %d is outside %d..%d", year, lo, hi)
		}
	}
	return nil
}

// Find returns the scenario with the given name
func (input *InputFile) Find(name string) (*ScenarioInput, bool) {
	for i := range input.Scenarios {
		if input.Scenarios[i].Name == name {
			return &input.Scenarios[i], true
		}
	}
	return nil, false
}

// ResolveOptions layers scenario options over file options over the
// engine defaults
func (input *InputFile) ResolveOptions(scenario *ScenarioInput) domain.Options {
	opts := domain.DefaultOptions()
	apply := func(o OptionsInput) {
		if o.HasSecondaryTrack != nil {
			opts.HasSecondaryTrack = *o.HasSecondaryTrack
		}
		if o.TruncateLegacyMonths != nil {
			opts.TruncateLegacyMonths = *o.TruncateLegacyMonths
		}
		if o.CompensationEnabled != nil {
			opts.CompensationEnabled = *o.CompensationEnabled
		}
	}
	apply(input.Options)
	apply(scenario.Options)
	return opts
}

// BuildRequest expands a scenario into a complete calculation request: every
// year of the range gets an input, and every dataset year up to the end year
// that needs an index override gets the default index unless one is given.
func (input *InputFile) BuildRequest(scenario *ScenarioInput, ds *dataset.Dataset) *domain.CalculationRequest {
	wage := DefaultWage
	if input.Defaults.Wage != nil {
		wage = *input.Defaults.Wage
	}
	track1 := DefaultTrack1Months
	if input.Defaults.Track1Months != nil {
		track1 = *input.Defaults.Track1Months
	}
	track2 := DefaultTrack2Months
	if input.Defaults.Track2Months != nil {
		track2 = *input.Defaults.Track2Months
	}
	index := DefaultIndex
	if input.Defaults.Index != nil {
		index = *input.Defaults.Index
	}

	req := &domain.CalculationRequest{
		StartYear:             scenario.StartYear,
		EndYear:               scenario.EndYear,
		Years:                 make(map[int]domain.YearInput),
		IndexOverrides:        make(map[int]decimal.Decimal),
		CompensationOverrides: make(map[int]decimal.Decimal),
		Options:               input.ResolveOptions(scenario),
	}

	years := ds.Range(scenario.StartYear, scenario.EndYear)
	for _, y := range years {
		req.Years[y] = mergeYear(scenario.Years[y], wage, track1, track2)
	}
	// years outside the dataset are passed through so the engine reports them
	for y, entry := range scenario.Years {
		if _, ok := req.Years[y]; !ok {
			req.Years[y] = mergeYear(entry, wage, track1, track2)
		}
	}

	endYear := max(scenario.StartYear, scenario.EndYear)
	for _, y := range ds.Years() {
		if y > endYear {
			break
		}
		if ds.NeedsOverride(y) {
			req.IndexOverrides[y] = index
		}
	}
	for y, v := range scenario.IndexOverrides {
		req.IndexOverrides[y] = v
	}
	for y, v := range scenario.CompensationOverrides {
		req.CompensationOverrides[y] = v
	}
	return req
}

// mergeYear fills a year from the defaults. A year without track 1 months
// and without an explicit wage gets a zero wage.
func mergeYear(entry YearEntry, wage decimal.Decimal, track1, track2 int) domain.YearInput {
	in := domain.YearInput{Track1Months: track1, Track2Months: track2}
	if entry.Track1Months != nil {
		in.Track1Months = *entry.Track1Months
	}
	if entry.Track2Months != nil {
		in.Track2Months = *entry.Track2Months
	}
	w := wage
	switch {
	case entry.Wage != nil:
		w = *entry.Wage
	case in.Track1Months == 0:
		w = decimal.Zero
	}
	in.Wage = &w
	return in
}

// DeepCopy returns a copy that shares no maps or pointers with s
func (s *ScenarioInput) DeepCopy() *ScenarioInput {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Options = s.Options.clone()
	if s.Years != nil {
		cp.Years = make(map[int]YearEntry, len(s.Years))
		for y, e := range s.Years {
			cp.Years[y] = YearEntry{
				Wage:         clonePtr(e.Wage),
				Track1Months: clonePtr(e.Track1Months),
				Track2Months: clonePtr(e.Track2Months),
			}
		}
	}
	if s.IndexOverrides != nil {
		cp.IndexOverrides = maps.Clone(s.IndexOverrides)
	}
	if s.CompensationOverrides != nil {
		cp.CompensationOverrides = maps.Clone(s.CompensationOverrides)
	}
	return &cp
}

func (o OptionsInput) clone() OptionsInput {
	return OptionsInput{
		HasSecondaryTrack:    clonePtr(o.HasSecondaryTrack),
		TruncateLegacyMonths: clonePtr(o.TruncateLegacyMonths),
		CompensationEnabled:  clonePtr(o.CompensationEnabled),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
