package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

const currencyCode = "THB"

// ScenarioResult pairs a calculation result with the scenario it came from
type ScenarioResult struct {
	Name        string                    `json:"name" yaml:"name"`
	Description string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Result      *domain.CalculationResult `json:"result" yaml:"result"`
}

// Formatter renders scenario results
type Formatter interface {
	Name() string
	Format(results []ScenarioResult) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console":   ConsoleFormatter{},
	"json":      JSONFormatter{Pretty: true},
	"csv":       CSVSummarizer{},
	"csv-years": CSVYearsFormatter{},
	"yaml":      YAMLFormatter{},
	"html":      HTMLFormatter{},
}

var aliases = map[string]string{
	"table":           "console",
	"console-verbose": "console",
	"verbose":         "console",
	"json-compact":    "json",
	"yml":             "yaml",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none
func GetFormatterByName(name string) Formatter {
	if canonical, ok := aliases[name]; ok {
		if name == "json-compact" {
			return JSONFormatter{}
		}
		name = canonical
	}
	return formatters[name]
}

// AvailableFormats lists the canonical formatter names
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateReport formats results with the named formatter and writes them
func GenerateReport(w io.Writer, results []ScenarioResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	for _, sr := range results {
		if sr.Result == nil {
			return fmt.Errorf("scenario %s has no result", sr.Name)
		}
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// FormatCurrency formats an amount in baht with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	minor := amount.Shift(2).Round(0).IntPart()
	return money.New(minor, currencyCode).Display()
}

// FormatPercentage formats a fraction as a percentage
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Shift(2).StringFixed(3) + "%"
}
