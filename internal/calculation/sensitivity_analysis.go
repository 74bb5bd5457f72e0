package calculation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweeps over one vehicle
type SensitivityAnalyzer struct {
	engine *TaxEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *TaxEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewTaxEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// SensitivityBaseValue returns the profile's current value for a sweepable attribute
func (sa *SensitivityAnalyzer) SensitivityBaseValue(profile domain.VehicleTaxProfile, name string, at time.Time) (decimal.Decimal, error) {
	switch name {
	case domain.SensitivityPowerKW:
		return profile.PowerKW(), nil
	case domain.SensitivityCO2:
		return profile.CO2NEDC(), nil
	case domain.SensitivityFiscalHorsepower:
		return decimal.NewFromInt(int64(profile.FiscalHorsepower())), nil
	case domain.SensitivityAge:
		age, _ := sa.engine.AgeResolver.ResolveAge(profile, at)
		return decimal.NewFromInt(int64(age)), nil
	default:
		return decimal.Zero, unknownParameterError(name)
	}
}

// DefaultSensitivityParameter returns a sweep around the profile's current value
func (sa *SensitivityAnalyzer) DefaultSensitivityParameter(profile domain.VehicleTaxProfile, name string, at time.Time) (domain.SensitivityParameter, error) {
	base, err := sa.SensitivityBaseValue(profile, name, at)
	if err != nil {
		return domain.SensitivityParameter{}, err
	}

	param := domain.SensitivityParameter{Name: name, BaseValue: base}
	around := func(delta int64, steps int) {
		d := decimal.NewFromInt(delta)
		param.MinValue = decimal.Max(decimal.Zero, base.Sub(d))
		param.MaxValue = base.Add(d)
		param.Steps = steps
	}

	switch name {
	case domain.SensitivityPowerKW:
		around(50, 5)
		param.Unit = "kW"
		param.Description = "Engine power; selects the registration tax bracket"
	case domain.SensitivityCO2:
		around(40, 5)
		param.Unit = "g/km"
		param.Description = "NEDC emissions; selects the eco-malus band"
	case domain.SensitivityFiscalHorsepower:
		around(4, 9)
		param.Unit = "CV"
		param.Description = "Fiscal horsepower; selects the annual circulation tax"
	case domain.SensitivityAge:
		param.MinValue = decimal.Zero
		param.MaxValue = decimal.NewFromInt(int64(sa.engine.Schedule.Degressivity.LastAge() + 1))
		param.Steps = int(param.MaxValue.IntPart()) + 1
		param.Unit = "years"
		param.Description = "Vehicle age; drives degressivity and the forfait"
	}
	return param, nil
}

// CommonSensitivityParameters returns the default sweep for every attribute
func (sa *SensitivityAnalyzer) CommonSensitivityParameters(profile domain.VehicleTaxProfile, at time.Time) []domain.SensitivityParameter {
	params := make([]domain.SensitivityParameter, 0, len(domain.SensitivityParameterNames()))
	for _, name := range domain.SensitivityParameterNames() {
		param, err := sa.DefaultSensitivityParameter(profile, name, at)
		if err == nil {
			params = append(params, param)
		}
	}
	return params
}

// AnalyzeSingleParameter sweeps one attribute and evaluates the vehicle at each value
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	vehicleName string,
	profile domain.VehicleTaxProfile,
	param domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	if err := validateParameter(param); err != nil {
		return nil, err
	}

	at := nowFunc()
	baseReport := sa.engine.CalculateAt(profile, at)
	baseOneTime, ok := baseReport.OneTimeTotal()
	if !ok {
		return nil, fmt.Errorf("tax not computed for region %s", profile.Region())
	}
	baseAnnual, _ := baseReport.Annual()

	values := generateParameterValues(param)
	points := make([]domain.SensitivityPoint, 0, len(values))

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := modifyProfileParameter(profile, param.Name, value, at)
		if err != nil {
			return nil, fmt.Errorf("failed to vary %s to %s: %w", param.Name, value.String(), err)
		}

		report := sa.engine.CalculateAt(modified, at)
		oneTime, _ := report.OneTimeTotal()
		annual, _ := report.Annual()
		sa.engine.Logger.Debugf("sensitivity %s=%s one-time=%s annual=%s", param.Name, value.String(), oneTime.StringFixed(2), annual.StringFixed(2))

		points = append(points, domain.SensitivityPoint{
			Value:        value,
			OneTimeTotal: oneTime,
			AnnualTax:    annual,
			Report:       report,
			IsBase:       value.Equal(param.BaseValue),
		})
	}

	return &domain.ParameterSensitivityAnalysis{
		VehicleName: vehicleName,
		Parameter:   param,
		BaseOneTime: baseOneTime,
		BaseAnnual:  baseAnnual,
		Points:      points,
		Summary:     calculateSensitivitySummary(points, param, baseOneTime),
	}, nil
}

// AnalyzeMultipleParameters runs one sweep per parameter and names the attribute with the widest spread
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	vehicleName string,
	profile domain.VehicleTaxProfile,
	params []domain.SensitivityParameter,
) (*domain.MultiSensitivityAnalysis, error) {

	multi := &domain.MultiSensitivityAnalysis{VehicleName: vehicleName}
	widest := decimal.NewFromInt(-1)

	for _, param := range params {
		analysis, err := sa.AnalyzeSingleParameter(ctx, vehicleName, profile, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		multi.Analyses = append(multi.Analyses, *analysis)

		if analysis.Summary.SpreadPct.GreaterThan(widest) {
			widest = analysis.Summary.SpreadPct
			multi.MostSensitiveParameter = param.Name
		}
	}

	return multi, nil
}

func unknownParameterError(name string) error {
	return fmt.Errorf("unknown sensitivity parameter %q (valid: %s)", name, strings.Join(domain.SensitivityParameterNames(), ", "))
}

func validateParameter(param domain.SensitivityParameter) error {
	known := false
	for _, name := range domain.SensitivityParameterNames() {
		if name == param.Name {
			known = true
			break
		}
	}
	if !known {
		return unknownParameterError(param.Name)
	}
	if param.MinValue.IsNegative() {
		return fmt.Errorf("%s: min value cannot be negative", param.Name)
	}
	if param.MinValue.GreaterThan(param.MaxValue) {
		return fmt.Errorf("%s: min value %s is greater than max value %s", param.Name, param.MinValue.String(), param.MaxValue.String())
	}
	return nil
}

// generateParameterValues generates values for a parameter sweep.
// Whole-number attributes are floored.
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	whole := param.Name == domain.SensitivityFiscalHorsepower || param.Name == domain.SensitivityAge
	values := make([]decimal.Decimal, 0, param.Steps)

	// Calculate step size
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		value := param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		if whole {
			value = value.Floor()
		}
		values = append(values, value)
	}

	return values
}

// modifyProfileParameter derives a profile with one attribute replaced
func modifyProfileParameter(profile domain.VehicleTaxProfile, name string, value decimal.Decimal, at time.Time) (domain.VehicleTaxProfile, error) {
	in := profile.Input()

	switch name {
	case domain.SensitivityPowerKW:
		in.PowerKW = value
	case domain.SensitivityCO2:
		in.CO2NEDC = value
	case domain.SensitivityFiscalHorsepower:
		in.FiscalHorsepower = domain.FiscalHorsepower(value.IntPart())
	case domain.SensitivityAge:
		in.RegistrationDate = nil
		in.RegistrationYear = at.Year() - int(value.IntPart())
	default:
		return domain.VehicleTaxProfile{}, unknownParameterError(name)
	}

	return domain.NewVehicleTaxProfile(in)
}

// calculateSensitivitySummary calculates the spread and bracket steps of a sweep
func calculateSensitivitySummary(points []domain.SensitivityPoint, param domain.SensitivityParameter, baseOneTime decimal.Decimal) domain.SensitivitySummary {
	if len(points) == 0 {
		return domain.SensitivitySummary{}
	}

	summary := domain.SensitivitySummary{
		MinOneTime: points[0].OneTimeTotal,
		MaxOneTime: points[0].OneTimeTotal,
	}
	minAnnual, maxAnnual := points[0].AnnualTax, points[0].AnnualTax

	for i, p := range points {
		summary.MinOneTime = decimal.Min(summary.MinOneTime, p.OneTimeTotal)
		summary.MaxOneTime = decimal.Max(summary.MaxOneTime, p.OneTimeTotal)
		minAnnual = decimal.Min(minAnnual, p.AnnualTax)
		maxAnnual = decimal.Max(maxAnnual, p.AnnualTax)

		if i > 0 && !p.OneTimeTotal.Equal(points[i-1].OneTimeTotal) {
			summary.Steps = append(summary.Steps, p.Value)
		}
	}

	summary.OneTimeSpread = summary.MaxOneTime.Sub(summary.MinOneTime)
	summary.AnnualSpread = maxAnnual.Sub(minAnnual)
	if baseOneTime.IsPositive() {
		summary.SpreadPct = summary.OneTimeSpread.Div(baseOneTime).Mul(decimal.NewFromInt(100)).Round(1)
	}

	label := strings.ReplaceAll(param.Name, "_", " ")
	switch {
	case summary.SpreadPct.GreaterThan(decimal.NewFromInt(50)):
		summary.SensitivityLevel = "HIGH"
		summary.Recommendations = append(summary.Recommendations, fmt.Sprintf("High sensitivity to %s: the one-time tax moves by %s%% of its current value", label, summary.SpreadPct.String()))
	case summary.SpreadPct.GreaterThan(decimal.NewFromInt(10)):
		summary.SensitivityLevel = "MODERATE"
		summary.Recommendations = append(summary.Recommendations, fmt.Sprintf("Moderate sensitivity to %s", label))
	default:
		summary.SensitivityLevel = "LOW"
		summary.Recommendations = append(summary.Recommendations, fmt.Sprintf("Low sensitivity to %s", label))
	}

	if len(summary.Steps) > 0 {
		steps := make([]string, len(summary.Steps))
		for i, s := range summary.Steps {
			steps[i] = s.String()
		}
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("One-time tax changes at %s = %s %s", label, strings.Join(steps, ", "), param.Unit))
	}
	if summary.AnnualSpread.IsPositive() {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Annual tax varies by up to %s across the sweep", summary.AnnualSpread.StringFixed(2)))
	}

	return summary
}
