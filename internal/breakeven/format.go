package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/vehtax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("TAX BUDGET SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:       %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", tf.formatGoal(result.Goal, result.Years)))
	sb.WriteString(fmt.Sprintf("Budget:       %s\n", output.FormatCurrency(result.Budget)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	sb.WriteString("OPTIMAL VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-13s %s\n", string(result.Target)+":", result.OptimalValue()))
	sb.WriteString("\n")

	sb.WriteString("TAXES AT OPTIMUM\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if reg := result.Report.RegistrationTax; reg != nil {
		sb.WriteString(fmt.Sprintf("Registration: %s\n", output.FormatCurrency(reg.Total)))
	}
	sb.WriteString(fmt.Sprintf("Annual:       %s\n", output.FormatOptionalCurrency(result.Report.AnnualTax)))
	sb.WriteString(fmt.Sprintf("Cost:         %s\n", output.FormatCurrency(result.Cost)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO VEHICLE AS CONFIGURED\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base cost:    %s\n", output.FormatCurrency(result.BaseCost)))
	sb.WriteString(fmt.Sprintf("Change:       %s\n", tf.formatDelta(result.CostDiffFromBase)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("TAX BUDGET SOLVER RESULTS (ALL TARGETS)\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base cost: %s\n\n", output.FormatCurrency(result.BaseCost)))

	sb.WriteString(fmt.Sprintf("%-10s %-14s %14s %14s %12s\n", "Target", "Optimal", "Cost", "Change", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range result.Results {
		res := &result.Results[i]
		cost, change := "-", "-"
		if res.Success {
			cost = output.FormatCurrency(res.Cost)
			change = tf.formatDelta(res.CostDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%-10s %-14s %14s %14s %12s\n",
			res.Target,
			res.OptimalValue(),
			cost,
			change,
			tf.formatStatus(res.Success)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal solver result: %w", err)
	}

	return string(data) + "\n", nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Within budget"
	}
	return "⚠ Not reachable"
}

func (tf *TableFormatter) formatGoal(goal OptimizationGoal, years int) string {
	if goal == GoalOwnershipBudget {
		return fmt.Sprintf("registration + %d years of annual tax", years)
	}
	return "registration tax"
}

func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+" + output.FormatCurrency(delta)
	case delta.IsNegative():
		return "-" + output.FormatCurrency(delta.Abs())
	default:
		return "no change"
	}
}
