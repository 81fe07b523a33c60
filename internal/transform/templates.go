package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []struct {
		name  string
		years int
		desc  string
	}{
		{"work_1yr", 1, "Contribute for 1 more year"},
		{"work_3yr", 3, "Contribute for 3 more years"},
		{"work_5yr", 5, "Contribute for 5 more years"},
	} {
		registry.Register(Template{
			Name:        years.name,
			Description: years.desc,
			Transforms:  []ScenarioTransform{&ExtendContribution{Years: years.years}},
		})
	}

	registry.Register(Template{
		Name:        "low_index",
		Description: "Revaluation index of 1.01 for unpublished years",
		Transforms:  []ScenarioTransform{&SetIndex{Index: decimal.RequireFromString("1.01")}},
	})
	registry.Register(Template{
		Name:        "high_index",
		Description: "Revaluation index of 1.05 for unpublished years",
		Transforms:  []ScenarioTransform{&SetIndex{Index: decimal.RequireFromString("1.05")}},
	})

	registry.Register(Template{
		Name:        "no_compensation",
		Description: "Pay the CARE amount without legacy compensation",
		Transforms:  []ScenarioTransform{&SetOption{Option: OptionCompensation, Value: false}},
	})
	registry.Register(Template{
		Name:        "truncated_legacy",
		Description: "Count only whole years toward the legacy accrual",
		Transforms:  []ScenarioTransform{&SetOption{Option: OptionTruncateLegacy, Value: true}},
	})

	registry.Register(Template{
		Name:        "half_track2",
		Description: "Spend half of every year on track 2",
		Transforms:  []ScenarioTransform{&SplitTracks{Months: 6}},
	})

	return registry
}
