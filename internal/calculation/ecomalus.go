package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// EcoMalusInput holds the attributes the eco-malus depends on
type EcoMalusInput struct {
	CO2NEDC         decimal.Decimal
	Region          domain.Region
	CollectorExempt bool
	// UnderForfait is set once the vehicle is past the degressivity schedule;
	// the forfait then stands for the whole one-time tax.
	UnderForfait bool
}

// EcoMalusCalculator adds the CO2 surcharge to the registration tax
type EcoMalusCalculator struct {
	Bands []domain.TaxBracket
}

// NewEcoMalusCalculator creates an eco-malus calculator from a schedule
func NewEcoMalusCalculator(schedule *domain.TaxSchedule) *EcoMalusCalculator {
	return &EcoMalusCalculator{Bands: schedule.EcoMalusBands}
}

// Applies reports whether any surcharge can be due for the input
func (emc *EcoMalusCalculator) Applies(in EcoMalusInput) bool {
	return in.Region == domain.RegionWalloniaBrussels && !in.CollectorExempt && !in.UnderForfait
}

// Calculate returns the surcharge. Only Wallonia / Brussels levies it, and
// collector and forfait vehicles are exempt regardless of emissions.
// Bands are published in whole g/km, so a fractional reading is floored
// before the lookup: 145.9 g/km is still below the first charged band.
func (emc *EcoMalusCalculator) Calculate(in EcoMalusInput) decimal.Decimal {
	if !emc.Applies(in) {
		return decimal.Zero
	}
	band, _ := lookupBracket(emc.Bands, in.CO2NEDC.Floor())
	return band.Value
}
