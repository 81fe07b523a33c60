package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carecalc/internal/calculation"
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // Built-in templates, one alternative each
	Transforms       []string // Transform specs, one alternative each
}

// Compare derives alternatives from the base scenario with templates and
// transform specs and compares them to the base
func (ce *CompareEngine) Compare(ctx context.Context, input *config.InputFile, options CompareOptions) (*ComparisonSet, error) {
	baseScenario, ok := input.Find(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	baseResult, err := ce.run(ctx, input, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	addAlternative := func(label, description string, transforms []transform.ScenarioTransform) error {
		modified, err := transform.ApplyTransforms(baseScenario, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", label, err)
		}
		modified.Name = baseScenario.Name + "_" + label
		modified.Description = description

		alt, err := ce.run(ctx, input, modified)
		if err != nil {
			return fmt.Errorf("failed to calculate scenario %s: %w", modified.Name, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
		return nil
	}

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		if err := addAlternative(tmpl.Name, tmpl.Description, tmpl.Transforms); err != nil {
			return nil, err
		}
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}
		if err := addAlternative(t.Name(), t.Description(), []transform.ScenarioTransform{t}); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareScenarios compares explicit scenarios from the input file
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	input *config.InputFile,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseScenario, ok := input.Find(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}
	baseResult, err := ce.run(ctx, input, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		scenario, ok := input.Find(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}
		alt, err := ce.run(ctx, input, scenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) run(ctx context.Context, input *config.InputFile, scenario *config.ScenarioInput) (ComparisonResult, error) {
	req := input.BuildRequest(scenario, ce.CalcEngine.Dataset)
	result, err := ce.CalcEngine.Calculate(ctx, req)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(scenario.Name, scenario.Description, result), nil
}
