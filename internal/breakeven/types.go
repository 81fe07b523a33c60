package breakeven

import (
	"github.com/rgehrsitz/carecalc/internal/config"
	"github.com/rgehrsitz/carecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeEndYear OptimizationTarget = "end_year" // fewest extra contribution years
	OptimizeWage    OptimizationTarget = "wage"     // lowest constant monthly wage
)

// Constraints define the target and the search bounds
type Constraints struct {
	// Monthly pension payable to reach
	TargetPayable decimal.Decimal `json:"target_payable"`

	// end_year search: extra years tried after the base end year
	MaxExtraYears int `json:"max_extra_years,omitempty"`

	// wage search bounds and the first year the wage applies (zero = start year)
	MinWage  *decimal.Decimal `json:"min_wage,omitempty"`
	MaxWage  *decimal.Decimal `json:"max_wage,omitempty"`
	FromYear int              `json:"from_year,omitempty"`
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Input         *config.InputFile
	BaseScenario  *config.ScenarioInput
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance for the wage search
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	TargetPayable   decimal.Decimal    `json:"target_payable"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Solved parameters
	OptimalEndYear *int             `json:"optimal_end_year,omitempty"`
	OptimalWage    *decimal.Decimal `json:"optimal_wage,omitempty"`

	// Results at the solved parameters
	Result  *domain.CalculationResult `json:"result"`
	Payable decimal.Decimal           `json:"payable"`

	// Comparison to base
	BasePayable         decimal.Decimal `json:"base_payable"`
	PayableDiffFromBase decimal.Decimal `json:"payable_diff_from_base"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
	MaxExtraYears int             // Default end_year search depth
	MaxWage       decimal.Decimal // Default upper wage bound
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // 1 baht
		MaxIterations: 60,
		MaxExtraYears: 30,
		MaxWage:       decimal.NewFromInt(100000),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if !c.TargetPayable.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target payable must be positive",
		}
	}
	if c.MaxExtraYears < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_extra_years cannot be negative",
		}
	}
	if c.MinWage != nil && c.MinWage.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_wage cannot be negative",
		}
	}
	if c.MinWage != nil && c.MaxWage != nil && c.MinWage.GreaterThan(*c.MaxWage) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_wage cannot be greater than max_wage",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
