package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

func pinClock(t *testing.T) {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(nil) })
}

// suv is new, 150 kW, 11 CV and 160 g/km: €2,478 + €175 eco-malus, €500 a year
func suv(t *testing.T, region domain.Region) domain.VehicleTaxProfile {
	t.Helper()
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	p, err := domain.NewVehicleTaxProfile(domain.ProfileInput{
		PowerKW:          decimal.NewFromInt(150),
		FiscalHorsepower: 11,
		CO2NEDC:          decimal.NewFromInt(160),
		RegistrationDate: &date,
		Region:           region,
	})
	if err != nil {
		t.Fatalf("failed to build profile: %v", err)
	}
	return p
}

func optimize(t *testing.T, req OptimizationRequest) *OptimizationResult {
	t.Helper()
	result, err := NewDefaultSolver(calculation.NewTaxEngine()).Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	return result
}

func TestNewSolver(t *testing.T) {
	engine := calculation.NewTaxEngine()
	options := SolverOptions{MaxIterations: 7}

	solver := NewSolver(engine, options)

	if solver.Engine != engine {
		t.Error("Expected Engine to match input")
	}
	if solver.Options != options {
		t.Error("Expected Options to match input")
	}
	if NewDefaultSolver(engine).Options != DefaultSolverOptions() {
		t.Error("Expected default options to be applied")
	}
}

func TestSolver_OptimizePower(t *testing.T) {
	pinClock(t)
	result := optimize(t, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizePowerKW,
		Constraints: Constraints{Budget: decimal.NewFromInt(1000)},
	})

	if !result.Success {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}
	if result.OptimalPowerKW == nil || *result.OptimalPowerKW != 100 {
		t.Fatalf("Expected 100 kW (top of the €495 bracket), got %v", result.OptimalPowerKW)
	}
	if result.Cost.StringFixed(2) != "670.00" {
		t.Errorf("Expected cost 670.00, got %s", result.Cost.StringFixed(2))
	}
	if result.BaseCost.StringFixed(2) != "2653.00" {
		t.Errorf("Expected base cost 2653.00, got %s", result.BaseCost.StringFixed(2))
	}
	if result.CostDiffFromBase.StringFixed(2) != "-1983.00" {
		t.Errorf("Expected diff -1983.00, got %s", result.CostDiffFromBase.StringFixed(2))
	}
	if result.Goal != GoalRegistrationBudget {
		t.Errorf("Expected default goal, got %s", result.Goal)
	}
	if result.Iterations > DefaultSolverOptions().MaxIterations {
		t.Errorf("Too many iterations: %d", result.Iterations)
	}
	if result.OptimalValue() != "100 kW" {
		t.Errorf("Unexpected optimal value %q", result.OptimalValue())
	}
}

func TestSolver_OptimizeCO2(t *testing.T) {
	pinClock(t)
	result := optimize(t, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizeCO2,
		Constraints: Constraints{Budget: decimal.NewFromInt(2600)},
	})

	if !result.Success || result.OptimalCO2 == nil {
		t.Fatalf("Expected success, got %+v", result)
	}
	if *result.OptimalCO2 != 155 {
		t.Errorf("Expected 155 g/km (top of the €100 band), got %d", *result.OptimalCO2)
	}
	if result.Cost.StringFixed(2) != "2578.00" {
		t.Errorf("Expected cost 2578.00, got %s", result.Cost.StringFixed(2))
	}
}

func TestSolver_OptimizeAge(t *testing.T) {
	pinClock(t)
	result := optimize(t, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizeAge,
		Constraints: Constraints{Budget: decimal.NewFromInt(1000)},
	})

	if !result.Success || result.OptimalAge == nil {
		t.Fatalf("Expected success, got %+v", result)
	}
	// 30% of 2478 plus the eco-malus
	if *result.OptimalAge != 11 {
		t.Errorf("Expected age 11, got %d", *result.OptimalAge)
	}
	if result.Cost.StringFixed(2) != "918.40" {
		t.Errorf("Expected cost 918.40, got %s", result.Cost.StringFixed(2))
	}
	if result.Report.AgeYears != 11 {
		t.Errorf("Expected report at age 11, got %d", result.Report.AgeYears)
	}
}

func TestSolver_OwnershipGoal(t *testing.T) {
	pinClock(t)
	result := optimize(t, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizePowerKW,
		Goal:        GoalOwnershipBudget,
		Constraints: Constraints{Budget: decimal.NewFromInt(3500), Years: 5},
	})

	if result.OptimalPowerKW == nil || *result.OptimalPowerKW != 100 {
		t.Fatalf("Expected 100 kW, got %v", result.OptimalPowerKW)
	}
	if result.Cost.StringFixed(2) != "3170.00" {
		t.Errorf("Expected 670 + 5 x 500 = 3170.00, got %s", result.Cost.StringFixed(2))
	}
}

func TestSolver_Unreachable(t *testing.T) {
	pinClock(t)
	base := suv(t, domain.RegionWalloniaBrussels)

	power := optimize(t, OptimizationRequest{Base: base, Target: OptimizePowerKW, Constraints: Constraints{Budget: decimal.NewFromInt(100)}})
	if power.Success || power.OptimalPowerKW != nil {
		t.Error("Expected failure: the eco-malus alone exceeds €100")
	}
	if power.Iterations != 1 {
		t.Errorf("Expected a single evaluation, got %d", power.Iterations)
	}

	age := optimize(t, OptimizationRequest{Base: base, Target: OptimizeAge, Constraints: Constraints{Budget: decimal.NewFromInt(10)}})
	if age.Success {
		t.Error("Expected failure: the forfait exceeds €10")
	}
	if !strings.Contains(age.ConvergenceInfo, "no age up to 50") {
		t.Errorf("Unexpected convergence info %q", age.ConvergenceInfo)
	}
}

func TestSolver_WholeRangeFits(t *testing.T) {
	pinClock(t)
	result := optimize(t, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizePowerKW,
		Constraints: Constraints{Budget: decimal.NewFromInt(10000)},
	})

	if result.OptimalPowerKW == nil || *result.OptimalPowerKW != 400 {
		t.Fatalf("Expected the top of the range, got %v", result.OptimalPowerKW)
	}
	if result.Iterations != 2 {
		t.Errorf("Expected two evaluations, got %d", result.Iterations)
	}
}

func TestSolver_Optimize_Errors(t *testing.T) {
	pinClock(t)
	solver := NewDefaultSolver(calculation.NewTaxEngine())
	base := suv(t, domain.RegionWalloniaBrussels)
	budget := decimal.NewFromInt(1000)

	tests := []struct {
		name string
		req  OptimizationRequest
		want string
	}{
		{"negative budget", OptimizationRequest{Base: base, Target: OptimizeAge, Constraints: Constraints{Budget: decimal.NewFromInt(-1)}}, "budget cannot be negative"},
		{"unknown target", OptimizationRequest{Base: base, Target: "colour", Constraints: Constraints{Budget: budget}}, "unsupported optimization target"},
		{"unknown goal", OptimizationRequest{Base: base, Target: OptimizeAge, Goal: "cheapest", Constraints: Constraints{Budget: budget}}, "unsupported optimization goal"},
		{"flanders", OptimizationRequest{Base: suv(t, domain.RegionFlanders), Target: OptimizeAge, Constraints: Constraints{Budget: budget}}, "tax not computed for region flanders"},
		{"iteration cap", OptimizationRequest{Base: base, Target: OptimizePowerKW, MaxIterations: 3, Constraints: Constraints{Budget: budget}}, "did not converge within 3 iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Optimize(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Expected error")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestSolver_Optimize_Cancelled(t *testing.T) {
	pinClock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver(calculation.NewTaxEngine()).Optimize(ctx, OptimizationRequest{
		Base:        suv(t, domain.RegionWalloniaBrussels),
		Target:      OptimizePowerKW,
		Constraints: Constraints{Budget: decimal.NewFromInt(1000)},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_OptimizeAllTargets(t *testing.T) {
	pinClock(t)
	solver := NewDefaultSolver(calculation.NewTaxEngine())

	result, err := solver.OptimizeAllTargets(context.Background(), suv(t, domain.RegionWalloniaBrussels),
		Constraints{Budget: decimal.NewFromInt(1000)}, GoalRegistrationBudget)
	if err != nil {
		t.Fatalf("OptimizeAllTargets failed: %v", err)
	}

	if len(result.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(result.Results))
	}
	if result.WithinBudget {
		t.Error("€2,653 is not within €1,000")
	}
	if result.Results[1].Success {
		t.Error("Expected CO2 to be unreachable: the power bracket alone is €2,478")
	}

	want := []string{
		"Keep power at or below 100 kW (€670.00)",
		"Choose a vehicle at least 11 years old (€918.40)",
	}
	if len(result.Recommendations) != len(want) {
		t.Fatalf("Expected %d recommendations, got %v", len(want), result.Recommendations)
	}
	for i, rec := range want {
		if result.Recommendations[i] != rec {
			t.Errorf("Recommendation %d: expected %q, got %q", i, rec, result.Recommendations[i])
		}
	}
}

func TestSolver_OptimizeAllTargets_WithinBudget(t *testing.T) {
	pinClock(t)
	solver := NewDefaultSolver(calculation.NewTaxEngine())

	result, err := solver.OptimizeAllTargets(context.Background(), suv(t, domain.RegionWalloniaBrussels),
		Constraints{Budget: decimal.NewFromInt(3000)}, GoalRegistrationBudget)
	if err != nil {
		t.Fatalf("OptimizeAllTargets failed: %v", err)
	}
	if !result.WithinBudget {
		t.Error("Expected the base vehicle to fit")
	}
	if !strings.HasPrefix(result.Recommendations[0], "The vehicle as configured fits the budget (€2,653.00 of €3,000.00)") {
		t.Errorf("Unexpected first recommendation %q", result.Recommendations[0])
	}
}
