package breakeven

import (
	"strconv"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which vehicle attribute the solver varies
type OptimizationTarget string

const (
	OptimizePowerKW OptimizationTarget = "power_kw"
	OptimizeCO2     OptimizationTarget = "co2"
	OptimizeAge     OptimizationTarget = "age"
	OptimizeAll     OptimizationTarget = "all"
)

// ParseTarget maps a user-supplied name onto a target
func ParseTarget(s string) (OptimizationTarget, error) {
	switch OptimizationTarget(s) {
	case OptimizePowerKW, OptimizeCO2, OptimizeAge, OptimizeAll:
		return OptimizationTarget(s), nil
	case "power", "kw":
		return OptimizePowerKW, nil
	default:
		return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s + " (use power_kw, co2, age or all)"}
	}
}

// OptimizationGoal defines which cost must stay within the budget
type OptimizationGoal string

const (
	GoalRegistrationBudget OptimizationGoal = "registration_budget" // One-time registration total
	GoalOwnershipBudget    OptimizationGoal = "ownership_budget"    // Registration plus Years of annual tax
)

// Constraints bound the search. Nil bounds fall back to DefaultConstraints.
type Constraints struct {
	Budget decimal.Decimal `json:"budget"`
	Years  int             `json:"years,omitempty"`

	MinPowerKW *int `json:"min_power_kw,omitempty"`
	MaxPowerKW *int `json:"max_power_kw,omitempty"`

	MinCO2 *int `json:"min_co2,omitempty"`
	MaxCO2 *int `json:"max_co2,omitempty"`

	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`
}

// DefaultConstraints returns search ranges wide enough for road vehicles
func DefaultConstraints(budget decimal.Decimal) Constraints {
	minPower, maxPower := 0, 400
	minCO2, maxCO2 := 0, 400
	minAge, maxAge := 0, 50

	return Constraints{
		Budget:     budget,
		MinPowerKW: &minPower,
		MaxPowerKW: &maxPower,
		MinCO2:     &minCO2,
		MaxCO2:     &maxCO2,
		MinAge:     &minAge,
		MaxAge:     &maxAge,
	}
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Base          domain.VehicleTaxProfile
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int
}

// OptimizationResult contains the outcome of a solver run. Exactly one of the
// Optimal fields is set when Success is true.
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Goal            OptimizationGoal   `json:"goal"`
	Budget          decimal.Decimal    `json:"budget"`
	Years           int                `json:"years,omitempty"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info,omitempty"`

	// Largest power and CO2 that fit the budget, or the youngest age that does
	OptimalPowerKW *int `json:"optimal_power_kw,omitempty"`
	OptimalCO2     *int `json:"optimal_co2,omitempty"`
	OptimalAge     *int `json:"optimal_age,omitempty"`

	// Figures at the optimum
	Report domain.TaxReport `json:"report"`
	Cost   decimal.Decimal  `json:"cost"`

	// Comparison to the unmodified vehicle
	BaseCost         decimal.Decimal `json:"base_cost"`
	CostDiffFromBase decimal.Decimal `json:"cost_diff_from_base"`
}

// OptimalValue returns the solved attribute as a display string
func (r *OptimizationResult) OptimalValue() string {
	switch {
	case r.OptimalPowerKW != nil:
		return strconv.Itoa(*r.OptimalPowerKW) + " kW"
	case r.OptimalCO2 != nil:
		return strconv.Itoa(*r.OptimalCO2) + " g/km"
	case r.OptimalAge != nil:
		return strconv.Itoa(*r.OptimalAge) + " years"
	default:
		return "none"
	}
}

// MultiDimensionalResult contains results when solving every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	BaseCost        decimal.Decimal      `json:"base_cost"`
	WithinBudget    bool                 `json:"within_budget"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int // Bisection steps per target
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 50,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.Budget.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "budget cannot be negative",
		}
	}
	if c.Years < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "years cannot be negative",
		}
	}

	ranges := []struct {
		name     string
		min, max *int
	}{
		{"power_kw", c.MinPowerKW, c.MaxPowerKW},
		{"co2", c.MinCO2, c.MaxCO2},
		{"age", c.MinAge, c.MaxAge},
	}
	for _, r := range ranges {
		if r.min != nil && *r.min < 0 {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_" + r.name + " cannot be negative",
			}
		}
		if r.min != nil && r.max != nil && *r.min > *r.max {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_" + r.name + " cannot be greater than max_" + r.name,
			}
		}
	}

	return nil
}

// BreakEvenError represents errors from the budget solver
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
