// Package dataset holds the versioned reference table of per-year economic
// parameters used by the CARE calculation, and the year range helpers built
// on its bounds.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/reference.yaml
var referenceYAML []byte

// Metadata describes the origin of a table
type Metadata struct {
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
	Currency    string `yaml:"currency" json:"currency"`
}

// SecondaryCeilingRule defines the flat track-2 wage value and the year
// after which it starts following the revaluation index.
type SecondaryCeilingRule struct {
	Base        decimal.Decimal `yaml:"base" json:"base"`
	CutoverYear int             `yaml:"cutover_year" json:"cutover_year"`
}

// Rules are the constants that travel with a table
type Rules struct {
	RevaluationEffectiveYear int                  `yaml:"revaluation_effective_year" json:"revaluation_effective_year"`
	OverrideCutoverYear      int                  `yaml:"override_cutover_year" json:"override_cutover_year"`
	DiscountWindow           int                  `yaml:"discount_window" json:"discount_window"`
	ProjectionGrowthRate     decimal.Decimal      `yaml:"projection_growth_rate" json:"projection_growth_rate"`
	SecondaryCeiling         SecondaryCeilingRule `yaml:"secondary_ceiling" json:"secondary_ceiling"`
}

type file struct {
	Metadata Metadata                `yaml:"metadata"`
	Rules    Rules                   `yaml:"rules"`
	Years    []domain.YearParameters `yaml:"years"`
}

// Dataset is an immutable reference table. Projections built with Extend are
// cached on the dataset they were derived from.
type Dataset struct {
	Metadata Metadata
	Rules    Rules

	years   map[int]domain.YearParameters
	minYear int
	maxYear int

	mu       sync.Mutex
	extended map[int]*Dataset
}

var (
	defaultOnce sync.Once
	defaultSet  *Dataset
)

// Default returns the embedded reference table
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := Parse(referenceYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded reference dataset is invalid: %v", err))
		}
		defaultSet = ds
	})
	return defaultSet
}

// Load reads a reference table from a YAML file
func Load(filename string) (*Dataset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", filename, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML reference table
func Parse(data []byte) (*Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return New(f.Metadata, f.Rules, f.Years)
}

// New builds a dataset from explicit rows. Rows must cover a contiguous run
// of years; their order does not matter.
func New(meta Metadata, rules Rules, rows []domain.YearParameters) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no years")
	}
	if err := validateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	years := make(map[int]domain.YearParameters, len(rows))
	minYear, maxYear := rows[0].Year, rows[0].Year
	for _, row := range rows {
		if _, dup := years[row.Year]; dup {
			return nil, fmt.Errorf("year %d listed twice", row.Year)
		}
		if err := validateRow(row); err != nil {
			return nil, fmt.Errorf("year %d: %w", row.Year, err)
		}
		years[row.Year] = row
		minYear = min(minYear, row.Year)
		maxYear = max(maxYear, row.Year)
	}
	if len(years) != maxYear-minYear+1 {
		return nil, fmt.Errorf("years %d..%d are not contiguous", minYear, maxYear)
	}

	return &Dataset{
		Metadata: meta,
		Rules:    rules,
		years:    years,
		minYear:  minYear,
		maxYear:  maxYear,
	}, nil
}

func validateRules(rules *Rules) error {
	if rules.DiscountWindow < 0 {
		return fmt.Errorf("discount window cannot be negative")
	}
	if rules.ProjectionGrowthRate.LessThan(decimal.Zero) {
		return fmt.Errorf("projection growth rate cannot be negative")
	}
	if rules.SecondaryCeiling.Base.LessThan(decimal.Zero) {
		return fmt.Errorf("secondary ceiling base cannot be negative")
	}
	return nil
}

func validateRow(row domain.YearParameters) error {
	if row.WageCeiling.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("wage ceiling must be positive")
	}
	if row.ContributionCeiling != nil && row.ContributionCeiling.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("contribution ceiling must be positive")
	}
	if row.RevaluationIndex != nil && row.RevaluationIndex.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("revaluation index must be at least 1")
	}
	if row.CompensationPercent.LessThan(decimal.Zero) || row.CompensationPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("compensation percent must be between 0 and 100")
	}
	return nil
}

// MinYear returns the first year of the table
func (ds *Dataset) MinYear() int { return ds.minYear }

// MaxYear returns the last year of the table, including projected years
func (ds *Dataset) MaxYear() int { return ds.maxYear }

// Lookup returns the parameters of a year
func (ds *Dataset) Lookup(year int) (domain.YearParameters, bool) {
	yp, ok := ds.years[year]
	return yp, ok
}

// Years returns every year of the table in ascending order
func (ds *Dataset) Years() []int {
	out := make([]int, 0, len(ds.years))
	for y := range ds.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// NeedsOverride reports whether the caller has to supply the index of a year
func (ds *Dataset) NeedsOverride(year int) bool {
	yp, ok := ds.years[year]
	if !ok {
		return true
	}
	return !yp.HasIndex() || year >= ds.Rules.OverrideCutoverYear
}
