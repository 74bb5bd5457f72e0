package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/output"
)

// OptimizeAllTargets solves every target for one goal and summarizes the outcomes
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	base domain.VehicleTaxProfile,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {

	// Validate constraints
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizePowerKW,
		OptimizeCO2,
		OptimizeAge,
	}

	mdResult := &MultiDimensionalResult{}
	for _, target := range targets {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Base:          base,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
		})
		if err != nil {
			return nil, err
		}
		mdResult.Results = append(mdResult.Results, *result)
	}

	mdResult.BaseCost = mdResult.Results[0].BaseCost
	mdResult.WithinBudget = mdResult.BaseCost.LessThanOrEqual(constraints.Budget)
	mdResult.Recommendations = generateRecommendations(mdResult, constraints)

	return mdResult, nil
}

// generateRecommendations turns solved targets into advice
func generateRecommendations(result *MultiDimensionalResult, constraints Constraints) []string {
	var recommendations []string

	if result.WithinBudget {
		recommendations = append(recommendations, fmt.Sprintf("The vehicle as configured fits the budget (%s of %s)",
			output.FormatCurrency(result.BaseCost), output.FormatCurrency(constraints.Budget)))
	}

	for _, r := range result.Results {
		if !r.Success {
			continue
		}
		switch {
		case r.OptimalPowerKW != nil:
			recommendations = append(recommendations, fmt.Sprintf("Keep power at or below %d kW (%s)",
				*r.OptimalPowerKW, output.FormatCurrency(r.Cost)))
		case r.OptimalCO2 != nil:
			recommendations = append(recommendations, fmt.Sprintf("Keep CO2 at or below %d g/km (%s)",
				*r.OptimalCO2, output.FormatCurrency(r.Cost)))
		case r.OptimalAge != nil && *r.OptimalAge > 0:
			recommendations = append(recommendations, fmt.Sprintf("Choose a vehicle at least %d years old (%s)",
				*r.OptimalAge, output.FormatCurrency(r.Cost)))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "No single change brings the tax within the budget")
	}

	return recommendations
}
