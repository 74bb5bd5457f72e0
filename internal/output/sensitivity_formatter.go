package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis any) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		if err := scf.formatSingleAnalysis(&buf, a); err != nil {
			return "", err
		}
	case *domain.MultiSensitivityAnalysis:
		for i := range a.Analyses {
			if err := scf.formatSingleAnalysis(&buf, &a.Analyses[i]); err != nil {
				return "", err
			}
		}
		if a.MostSensitiveParameter != "" {
			fmt.Fprintf(&buf, "Most sensitive attribute: %s\n", a.MostSensitiveParameter)
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) error {
	if len(analysis.Points) == 0 {
		return fmt.Errorf("no results in analysis")
	}

	param := analysis.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintf(buf, "=================================================================\n")
	if analysis.VehicleName != "" {
		fmt.Fprintf(buf, "Vehicle: %s\n", analysis.VehicleName)
	}
	fmt.Fprintf(buf, "Base Case: %s %s (one-time %s, annual %s)\n",
		param.BaseValue.String(), param.Unit, FormatCurrency(analysis.BaseOneTime), FormatCurrency(analysis.BaseAnnual))
	fmt.Fprintf(buf, "Range: %s to %s %s (%d steps)\n", param.MinValue.String(), param.MaxValue.String(), param.Unit, param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s %14s %14s %14s %12s\n", param.Name, "One-time", "Change", "Annual", "Class")
	fmt.Fprintln(buf, strings.Repeat("-", 72))

	for _, p := range analysis.Points {
		value := p.Value.String()
		if p.IsBase {
			value += " ← BASE"
		}
		fmt.Fprintf(buf, "%-14s %14s %14s %14s %12s\n",
			value,
			FormatCurrency(p.OneTimeTotal),
			formatChange(p.OneTimeTotal.Sub(analysis.BaseOneTime)),
			FormatCurrency(p.AnnualTax),
			p.Report.Classification)
	}
	fmt.Fprintln(buf)

	s := analysis.Summary
	fmt.Fprintln(buf, "SENSITIVITY:")
	fmt.Fprintf(buf, "  One-time tax: %s to %s (spread %s, %s%% of base)\n",
		FormatCurrency(s.MinOneTime), FormatCurrency(s.MaxOneTime), FormatCurrency(s.OneTimeSpread), s.SpreadPct.String())
	fmt.Fprintf(buf, "  Annual tax spread: %s\n", FormatCurrency(s.AnnualSpread))
	fmt.Fprintf(buf, "  Level: %s\n", s.SensitivityLevel)
	fmt.Fprintln(buf)

	if len(s.Recommendations) > 0 {
		fmt.Fprintln(buf, "RECOMMENDATIONS:")
		for _, rec := range s.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", rec)
		}
		fmt.Fprintln(buf)
	}

	return nil
}

func formatChange(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+" + FormatCurrency(delta)
	case delta.IsNegative():
		return FormatCurrency(delta)
	default:
		return "-"
	}
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var analyses []domain.ParameterSensitivityAnalysis

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		analyses = []domain.ParameterSensitivityAnalysis{*a}
	case *domain.MultiSensitivityAnalysis:
		analyses = a.Analyses
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"vehicle", "parameter_name", "parameter_value", "one_time_total", "annual_tax", "classification", "is_base"}); err != nil {
		return "", err
	}
	for _, a := range analyses {
		for _, p := range a.Points {
			record := []string{
				a.VehicleName,
				a.Parameter.Name,
				p.Value.String(),
				p.OneTimeTotal.StringFixed(2),
				p.AnnualTax.StringFixed(2),
				string(p.Report.Classification),
				fmt.Sprintf("%t", p.IsBase),
			}
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.MultiSensitivityAnalysis:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sensitivity analysis: %w", err)
	}
	return string(data) + "\n", nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "table":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{} // Default to console
	}
}
