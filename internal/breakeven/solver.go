package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the vehicle attribute values that keep its taxes within a budget
type Solver struct {
	Engine  *calculation.TaxEngine
	Options SolverOptions
}

// NewSolver creates a new budget solver
func NewSolver(engine *calculation.TaxEngine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.TaxEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// variant derives a profile from the base with the target attribute set to v
type variant func(v int) (domain.VehicleTaxProfile, error)

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	// Validate constraints
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Goal == "" {
		req.Goal = GoalRegistrationBudget
	}
	if req.Goal != GoalRegistrationBudget && req.Goal != GoalOwnershipBudget {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}
	req.Constraints = withDefaultRanges(req.Constraints)

	at := calculation.Now()
	baseCost, ok := s.cost(req, s.Engine.CalculateAt(req.Base, at))
	if !ok {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("tax not computed for region %s", req.Base.Region()),
		}
	}

	c := req.Constraints
	var (
		result *OptimizationResult
		err    error
	)
	switch req.Target {
	case OptimizePowerKW:
		result, err = s.maximize(ctx, req, at, *c.MinPowerKW, *c.MaxPowerKW, withPowerKW(req.Base),
			func(r *OptimizationResult, v int) { r.OptimalPowerKW = &v })
	case OptimizeCO2:
		result, err = s.maximize(ctx, req, at, *c.MinCO2, *c.MaxCO2, withCO2(req.Base),
			func(r *OptimizationResult, v int) { r.OptimalCO2 = &v })
	case OptimizeAge:
		result, err = s.optimizeAge(ctx, req, at, *c.MinAge, *c.MaxAge)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	result.BaseCost = baseCost
	result.CostDiffFromBase = result.Cost.Sub(baseCost)
	return result, nil
}

// maximize finds the largest v in [lo, hi] whose cost fits the budget.
// Costs never decrease as power or CO2 grow, so bisection applies.
func (s *Solver) maximize(
	ctx context.Context,
	req OptimizationRequest,
	at time.Time,
	lo, hi int,
	build variant,
	set func(*OptimizationResult, int),
) (*OptimizationResult, error) {
	result := newResult(req)
	budget := req.Constraints.Budget

	report, cost, err := s.evaluate(req, at, build, lo)
	if err != nil {
		return nil, err
	}
	result.Iterations = 1
	if cost.GreaterThan(budget) {
		result.Report, result.Cost = report, cost
		result.ConvergenceInfo = fmt.Sprintf("even %s = %d exceeds the budget", req.Target, lo)
		return result, nil
	}
	best, bestReport, bestCost := lo, report, cost

	report, cost, err = s.evaluate(req, at, build, hi)
	if err != nil {
		return nil, err
	}
	result.Iterations++

	if cost.LessThanOrEqual(budget) {
		best, bestReport, bestCost = hi, report, cost
		result.ConvergenceInfo = "the whole search range fits the budget"
	} else {
		// Binary search; lo always fits and hi never does
		for hi-lo > 1 {
			if result.Iterations >= req.MaxIterations {
				return nil, &BreakEvenError{
					Operation: "optimize_" + string(req.Target),
					Message:   fmt.Sprintf("did not converge within %d iterations", req.MaxIterations),
				}
			}

			// Check context cancellation
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			mid := lo + (hi-lo)/2
			report, cost, err = s.evaluate(req, at, build, mid)
			if err != nil {
				return nil, err
			}
			result.Iterations++

			if cost.LessThanOrEqual(budget) {
				lo = mid
				best, bestReport, bestCost = mid, report, cost
			} else {
				hi = mid
			}
		}
		result.ConvergenceInfo = fmt.Sprintf("converged after %d evaluations", result.Iterations)
	}

	result.Success = true
	result.Report, result.Cost = bestReport, bestCost
	set(result, best)
	return result, nil
}

// optimizeAge finds the youngest age in [lo, hi] whose cost fits the budget.
// The forfait past the degressivity table can exceed the last percentage
// step, so ages are scanned rather than bisected.
func (s *Solver) optimizeAge(ctx context.Context, req OptimizationRequest, at time.Time, lo, hi int) (*OptimizationResult, error) {
	result := newResult(req)
	build := withAge(req.Base, at)

	for age := lo; age <= hi; age++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		report, cost, err := s.evaluate(req, at, build, age)
		if err != nil {
			return nil, err
		}
		result.Iterations++
		result.Report, result.Cost = report, cost

		if cost.LessThanOrEqual(req.Constraints.Budget) {
			result.Success = true
			result.OptimalAge = &age
			result.ConvergenceInfo = fmt.Sprintf("first age within budget after %d evaluations", result.Iterations)
			return result, nil
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("no age up to %d fits the budget", hi)
	return result, nil
}

// evaluate runs the engine on the variant for v
func (s *Solver) evaluate(req OptimizationRequest, at time.Time, build variant, v int) (domain.TaxReport, decimal.Decimal, error) {
	profile, err := build(v)
	if err != nil {
		return domain.TaxReport{}, decimal.Zero, &BreakEvenError{
			Operation: "optimize_" + string(req.Target),
			Message:   fmt.Sprintf("failed to build vehicle with %s = %d", req.Target, v),
			Cause:     err,
		}
	}

	report := s.Engine.CalculateAt(profile, at)
	cost, _ := s.cost(req, report)
	s.Engine.Logger.Debugf("solver %s=%d cost=%s", req.Target, v, cost.StringFixed(2))
	return report, cost, nil
}

// cost returns the amount the goal compares against the budget
func (s *Solver) cost(req OptimizationRequest, report domain.TaxReport) (decimal.Decimal, bool) {
	if req.Goal == GoalOwnershipBudget {
		return calculation.TotalCostOfOwnership(report, req.Constraints.Years)
	}
	return report.OneTimeTotal()
}

func newResult(req OptimizationRequest) *OptimizationResult {
	return &OptimizationResult{
		Target: req.Target,
		Goal:   req.Goal,
		Budget: req.Constraints.Budget,
		Years:  req.Constraints.Years,
	}
}

// withDefaultRanges fills unset bounds from DefaultConstraints
func withDefaultRanges(c Constraints) Constraints {
	d := DefaultConstraints(c.Budget)
	if c.MinPowerKW == nil {
		c.MinPowerKW = d.MinPowerKW
	}
	if c.MaxPowerKW == nil {
		c.MaxPowerKW = d.MaxPowerKW
	}
	if c.MinCO2 == nil {
		c.MinCO2 = d.MinCO2
	}
	if c.MaxCO2 == nil {
		c.MaxCO2 = d.MaxCO2
	}
	if c.MinAge == nil {
		c.MinAge = d.MinAge
	}
	if c.MaxAge == nil {
		c.MaxAge = d.MaxAge
	}
	return c
}

func withPowerKW(base domain.VehicleTaxProfile) variant {
	return func(kw int) (domain.VehicleTaxProfile, error) {
		in := base.Input()
		in.PowerKW = decimal.NewFromInt(int64(kw))
		return domain.NewVehicleTaxProfile(in)
	}
}

func withCO2(base domain.VehicleTaxProfile) variant {
	return func(co2 int) (domain.VehicleTaxProfile, error) {
		in := base.Input()
		in.CO2NEDC = decimal.NewFromInt(int64(co2))
		return domain.NewVehicleTaxProfile(in)
	}
}

// withAge registers the vehicle age years before at
func withAge(base domain.VehicleTaxProfile, at time.Time) variant {
	return func(age int) (domain.VehicleTaxProfile, error) {
		in := base.Input()
		in.RegistrationDate = nil
		in.RegistrationYear = at.Year() - age
		return domain.NewVehicleTaxProfile(in)
	}
}
