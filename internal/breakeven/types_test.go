package breakeven

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints(decimal.NewFromInt(1500))

	if !c.Budget.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected budget 1500, got %s", c.Budget.String())
	}
	if c.MinPowerKW == nil || *c.MinPowerKW != 0 || c.MaxPowerKW == nil || *c.MaxPowerKW != 400 {
		t.Errorf("Expected power range 0-400, got %v-%v", c.MinPowerKW, c.MaxPowerKW)
	}
	if c.MinCO2 == nil || *c.MinCO2 != 0 || c.MaxCO2 == nil || *c.MaxCO2 != 400 {
		t.Errorf("Expected CO2 range 0-400, got %v-%v", c.MinCO2, c.MaxCO2)
	}
	if c.MinAge == nil || *c.MinAge != 0 || c.MaxAge == nil || *c.MaxAge != 50 {
		t.Errorf("Expected age range 0-50, got %v-%v", c.MinAge, c.MaxAge)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default constraints should be valid: %v", err)
	}
}

func TestConstraints_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Constraints
		wantErr string
	}{
		{"valid", Constraints{Budget: decimal.NewFromInt(1000), Years: 5}, ""},
		{"zero budget", Constraints{}, ""},
		{"negative budget", Constraints{Budget: decimal.NewFromInt(-5)}, "budget cannot be negative"},
		{"negative years", Constraints{Years: -1}, "years cannot be negative"},
		{"negative min power", Constraints{MinPowerKW: intPtr(-1)}, "min_power_kw cannot be negative"},
		{"inverted co2", Constraints{MinCO2: intPtr(200), MaxCO2: intPtr(100)}, "min_co2 cannot be greater than max_co2"},
		{"inverted age", Constraints{MinAge: intPtr(10), MaxAge: intPtr(5)}, "min_age cannot be greater than max_age"},
		{"only max set", Constraints{MaxAge: intPtr(5)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := map[string]OptimizationTarget{
		"power_kw": OptimizePowerKW,
		"power":    OptimizePowerKW,
		"kw":       OptimizePowerKW,
		"co2":      OptimizeCO2,
		"age":      OptimizeAge,
		"all":      OptimizeAll,
	}
	for in, want := range tests {
		got, err := ParseTarget(in)
		if err != nil {
			t.Errorf("ParseTarget(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTarget(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseTarget("colour"); err == nil {
		t.Error("Expected error for unknown target")
	}
}

func TestOptimizationResult_OptimalValue(t *testing.T) {
	tests := []struct {
		result OptimizationResult
		want   string
	}{
		{OptimizationResult{OptimalPowerKW: intPtr(85)}, "85 kW"},
		{OptimizationResult{OptimalCO2: intPtr(145)}, "145 g/km"},
		{OptimizationResult{OptimalAge: intPtr(7)}, "7 years"},
		{OptimizationResult{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.result.OptimalValue(); got != tt.want {
			t.Errorf("OptimalValue() = %q, want %q", got, tt.want)
		}
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "optimize_age", Message: "failed", Cause: cause}

	if err.Error() != "optimize_age: failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	bare := &BreakEvenError{Operation: "validate_constraints", Message: "bad"}
	if bare.Error() != "validate_constraints: bad" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
	if bare.Unwrap() != nil {
		t.Error("Expected nil cause")
	}
}

func sampleResult() *OptimizationResult {
	return &OptimizationResult{
		Target:           OptimizePowerKW,
		Goal:             GoalRegistrationBudget,
		Budget:           decimal.NewFromInt(1000),
		Success:          true,
		Iterations:       11,
		ConvergenceInfo:  "converged after 11 evaluations",
		OptimalPowerKW:   intPtr(100),
		Cost:             decimal.NewFromInt(670),
		BaseCost:         decimal.NewFromInt(2653),
		CostDiffFromBase: decimal.NewFromInt(-1983),
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(sampleResult())

	for _, want := range []string{
		"TAX BUDGET SOLVER RESULTS",
		"Budget:       €1,000.00",
		"✓ Within budget",
		"100 kW",
		"Cost:         €670.00",
		"Base cost:    €2,653.00",
		"Change:       -€1,983.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}

	failed := &OptimizationResult{Target: OptimizeAge, Goal: GoalOwnershipBudget, Years: 5, Budget: decimal.NewFromInt(10)}
	out = tf.Format(failed)
	if !strings.Contains(out, "⚠ Not reachable") {
		t.Errorf("Expected failure status:\n%s", out)
	}
	if !strings.Contains(out, "registration + 5 years of annual tax") {
		t.Errorf("Expected ownership goal:\n%s", out)
	}
	if strings.Contains(out, "OPTIMAL VALUE") {
		t.Error("Failed result should not print an optimum")
	}
}

func TestTableFormatter_FormatMultiDimensional(t *testing.T) {
	md := &MultiDimensionalResult{
		Results:         []OptimizationResult{*sampleResult(), {Target: OptimizeCO2}},
		BaseCost:        decimal.NewFromInt(2653),
		Recommendations: []string{"Keep power at or below 100 kW (€670.00)"},
	}
	out := (&TableFormatter{}).FormatMultiDimensional(md)

	for _, want := range []string{"(ALL TARGETS)", "power_kw", "co2", "RECOMMENDATIONS", "• Keep power at or below 100 kW"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected trailing newline")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["target"] != "power_kw" {
		t.Errorf("Expected target power_kw, got %v", decoded["target"])
	}
	if decoded["optimal_power_kw"] != float64(100) {
		t.Errorf("Expected optimal_power_kw 100, got %v", decoded["optimal_power_kw"])
	}

	md, err := (&JSONFormatter{}).FormatMultiDimensional(&MultiDimensionalResult{Recommendations: []string{"x"}})
	if err != nil {
		t.Fatalf("FormatMultiDimensional failed: %v", err)
	}
	if !strings.Contains(md, `"recommendations":["x"]`) {
		t.Errorf("Unexpected compact JSON %s", md)
	}
}
