package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/carecalc/internal/calculation"
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/rgehrsitz/carecalc/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the contribution change needed to reach a target pension
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Input == nil || req.BaseScenario == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "input and base scenario are required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Constraints.MaxExtraYears == 0 {
		req.Constraints.MaxExtraYears = s.Options.MaxExtraYears
	}

	switch req.Target {
	case OptimizeEndYear:
		return s.optimizeEndYear(ctx, req)
	case OptimizeWage:
		return s.optimizeWage(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeEndYear extends the contribution period one year at a time until
// the target is reached or the dataset runs out
func (s *Solver) optimizeEndYear(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base, err := s.calculate(ctx, req.Input, req.BaseScenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_end_year", Message: "failed to calculate base scenario", Cause: err}
	}

	target := req.Constraints.TargetPayable
	best := s.evaluateResult(req, base, base, 0)
	best.OptimalEndYear = ptr(req.BaseScenario.EndYear)
	if base.CompensatedAmount.GreaterThanOrEqual(target) {
		best.Success = true
		best.ConvergenceInfo = "Base scenario already meets the target"
		return best, nil
	}

	iterations := 0
	for extra := 1; extra <= req.Constraints.MaxExtraYears && iterations < req.MaxIterations; extra++ {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{
			&transform.ExtendContribution{Years: extra},
		})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_end_year", Message: "failed to apply extend transform", Cause: err}
		}

		result, err := s.calculate(ctx, req.Input, modified)
		if domain.IsKind(err, domain.MissingYearData) {
			best.ConvergenceInfo = fmt.Sprintf("Dataset ends before the target is reached (last year %d)", *best.OptimalEndYear)
			best.Iterations = iterations
			return best, nil
		}
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_end_year", Message: "failed to calculate scenario", Cause: err}
		}

		best = s.evaluateResult(req, result, base, iterations)
		best.OptimalEndYear = ptr(modified.EndYear)
		if result.CompensatedAmount.GreaterThanOrEqual(target) {
			best.Success = true
			best.ConvergenceInfo = fmt.Sprintf("Target reached after %d extra year(s)", extra)
			return best, nil
		}
	}

	best.ConvergenceInfo = fmt.Sprintf("Target not reached within %d extra year(s)", req.Constraints.MaxExtraYears)
	return best, nil
}

// optimizeWage binary searches the lowest constant wage that reaches the
// target. The pension is non-decreasing in the wage.
func (s *Solver) optimizeWage(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base, err := s.calculate(ctx, req.Input, req.BaseScenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_wage", Message: "failed to calculate base scenario", Cause: err}
	}

	minWage := decimal.Zero
	maxWage := s.Options.MaxWage
	if req.Constraints.MinWage != nil {
		minWage = *req.Constraints.MinWage
	}
	if req.Constraints.MaxWage != nil {
		maxWage = *req.Constraints.MaxWage
	}
	target := req.Constraints.TargetPayable

	evaluate := func(wage decimal.Decimal) (*domain.CalculationResult, error) {
		modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{
			&transform.SetWage{Wage: wage, FromYear: req.Constraints.FromYear},
		})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_wage", Message: "failed to apply wage transform", Cause: err}
		}
		result, err := s.calculate(ctx, req.Input, modified)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_wage", Message: "failed to calculate scenario", Cause: err}
		}
		return result, nil
	}

	iterations := 1
	upper, err := evaluate(maxWage)
	if err != nil {
		return nil, err
	}
	best := s.evaluateResult(req, upper, base, iterations)
	best.OptimalWage = ptr(maxWage)
	if upper.CompensatedAmount.LessThan(target) {
		best.ConvergenceInfo = fmt.Sprintf("Target not reachable with wage up to %s", maxWage.StringFixed(2))
		return best, nil
	}

	two := decimal.NewFromInt(2)
	for iterations < req.MaxIterations && maxWage.Sub(minWage).GreaterThan(req.Tolerance) {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		testWage := minWage.Add(maxWage).Div(two)
		result, err := evaluate(testWage)
		if err != nil {
			return nil, err
		}
		if result.CompensatedAmount.GreaterThanOrEqual(target) {
			maxWage = testWage
			best = s.evaluateResult(req, result, base, iterations)
			best.OptimalWage = ptr(testWage)
		} else {
			minWage = testWage
		}
	}

	best.Iterations = iterations
	best.Success = true
	if maxWage.Sub(minWage).GreaterThan(req.Tolerance) {
		best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	} else {
		best.ConvergenceInfo = fmt.Sprintf("Binary search converged within %s", req.Tolerance.StringFixed(2))
	}
	return best, nil
}

func (s *Solver) calculate(ctx context.Context, input *config.InputFile, scenario *config.ScenarioInput) (*domain.CalculationResult, error) {
	return s.CalcEngine.Calculate(ctx, input.BuildRequest(scenario, s.CalcEngine.Dataset))
}

func (s *Solver) evaluateResult(req OptimizationRequest, result, base *domain.CalculationResult, iterations int) *OptimizationResult {
	return &OptimizationResult{
		Target:              req.Target,
		TargetPayable:       req.Constraints.TargetPayable,
		Iterations:          iterations,
		Result:              result,
		Payable:             result.CompensatedAmount,
		BasePayable:         base.CompensatedAmount,
		PayableDiffFromBase: result.CompensatedAmount.Sub(base.CompensatedAmount),
	}
}

func ptr[T any](v T) *T { return &v }
