package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// AnnualTaxInput carries fiscal horsepower only; power in kW never affects the annual tax
type AnnualTaxInput struct {
	FiscalHorsepower domain.FiscalHorsepower
}

// AnnualCirculationTaxCalculator computes the yearly circulation tax
type AnnualCirculationTaxCalculator struct {
	Bands              []domain.TaxBracket
	PerHorsepowerAbove decimal.Decimal
}

// NewAnnualCirculationTaxCalculator creates an annual tax calculator from a schedule
func NewAnnualCirculationTaxCalculator(schedule *domain.TaxSchedule) *AnnualCirculationTaxCalculator {
	return &AnnualCirculationTaxCalculator{
		Bands:              schedule.AnnualBands,
		PerHorsepowerAbove: schedule.AnnualPerHorsepowerAbove,
	}
}

// Calculate returns the annual tax. Beyond the last closed band the open-ended
// row's amount grows linearly per extra CV. 0 CV, as some electric vehicles
// report, is charged the lowest band.
func (atc *AnnualCirculationTaxCalculator) Calculate(in AnnualTaxInput) decimal.Decimal {
	cv := decimal.NewFromInt(int64(in.FiscalHorsepower))
	band, _ := lookupBracket(atc.Bands, cv)
	if !band.IsOpenEnded() {
		return band.Value
	}
	extra := cv.Sub(lastClosedBound(atc.Bands))
	return band.Value.Add(extra.Mul(atc.PerHorsepowerAbove))
}
