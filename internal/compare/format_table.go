package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/vehtax/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing vehicles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("VEHICLE TAX COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Vehicle: %s\n", compSet.BaseVehicleName))
	if compSet.SourcePath != "" {
		sb.WriteString(fmt.Sprintf("Input:        %s\n", compSet.SourcePath))
	}
	sb.WriteString(fmt.Sprintf("Horizon:      %d years\n", compSet.Years))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Vehicle",
		numWidth, "One-time",
		numWidth, "Annual",
		numWidth, fmt.Sprintf("%d-Year Cost", compSet.Years),
		numWidth, "Burden"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 && compSet.BaseResult != nil && compSet.BaseResult.Supported {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.VehicleName))
			if !alt.Supported {
				sb.WriteString("  Not comparable:   tax not computed for its region\n")
				continue
			}

			sb.WriteString(fmt.Sprintf("  Registration Tax: %s\n", tf.formatDelta(alt.RegistrationDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Annual Tax:       %s\n", tf.formatDelta(alt.AnnualDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  %d-Year Cost:      %s (%s%%)\n",
				compSet.Years,
				tf.formatDelta(alt.HorizonDiffFromBase),
				alt.HorizonPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single vehicle row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.VehicleName
	if isBase {
		name += " (base)"
	}

	if !result.Supported {
		return fmt.Sprintf("%-*s %*s\n",
			nameWidth, tf.truncate(name, nameWidth),
			numWidth, "not computed ("+result.Region.DisplayName()+")")
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCurrency(result.RegistrationTotal),
		numWidth, output.FormatCurrency(result.AnnualTax),
		numWidth, output.FormatCurrency(result.HorizonCost),
		numWidth, string(result.Classification))
}

// formatDelta renders a signed amount; a positive delta costs more than the base
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	if delta.IsZero() {
		return "no change"
	}
	if delta.IsPositive() {
		return "+" + output.FormatCurrency(delta)
	}
	return output.FormatCurrency(delta)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseVehicleName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "n/a"
		if alt.Supported && compSet.BaseResult != nil && compSet.BaseResult.Supported {
			change = tf.formatDelta(alt.HorizonDiffFromBase)
			if alt.HorizonDiffFromBase.IsZero() {
				change = "="
			}
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.VehicleName, change))
	}

	return sb.String()
}
