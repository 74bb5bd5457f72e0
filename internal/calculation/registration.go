package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RegistrationTaxInput holds the only attributes the TMC depends on
type RegistrationTaxInput struct {
	PowerKW  decimal.Decimal
	AgeYears int
}

// RegistrationTaxCalculator computes the one-time registration tax (TMC) before eco-malus
type RegistrationTaxCalculator struct {
	PowerBrackets []domain.TaxBracket
	Degressivity  domain.DegressivitySchedule
}

// NewRegistrationTaxCalculator creates a TMC calculator from a schedule
func NewRegistrationTaxCalculator(schedule *domain.TaxSchedule) *RegistrationTaxCalculator {
	return &RegistrationTaxCalculator{
		PowerBrackets: schedule.RegistrationPowerBrackets,
		Degressivity:  schedule.Degressivity,
	}
}

// BaseTax returns the fixed amount of the power bracket covering powerKW
func (rtc *RegistrationTaxCalculator) BaseTax(powerKW decimal.Decimal) decimal.Decimal {
	bracket, _ := lookupBracket(rtc.PowerBrackets, powerKW)
	return bracket.Value
}

// RetainedPercentage returns the share of the base kept at the given age.
// ok is false once age is past the schedule, where the forfait applies instead.
func (rtc *RegistrationTaxCalculator) RetainedPercentage(ageYears int) (pct decimal.Decimal, ok bool) {
	for _, step := range rtc.Degressivity.Steps {
		if ageYears <= step.MaxAge {
			return step.RetainedPercentage, true
		}
	}
	return decimal.Zero, false
}

// ApplyDegressivity reduces base for age, switching to the forfait past the last step
func (rtc *RegistrationTaxCalculator) ApplyDegressivity(base decimal.Decimal, ageYears int) decimal.Decimal {
	pct, ok := rtc.RetainedPercentage(ageYears)
	if !ok {
		return rtc.Degressivity.ForfaitFloor
	}
	return base.Mul(pct).Div(hundred).Round(2)
}

// Calculate returns the base and the amount after degressivity
func (rtc *RegistrationTaxCalculator) Calculate(in RegistrationTaxInput) (base, afterDegressivity decimal.Decimal) {
	base = rtc.BaseTax(in.PowerKW)
	return base, rtc.ApplyDegressivity(base, in.AgeYears)
}
