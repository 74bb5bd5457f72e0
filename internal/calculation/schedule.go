package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// SCHEDULE ASSUMPTIONS:
//
// 1. Registration tax (TMC): Wallonia / Brussels power schedule in kW, with the
//    age degressivity of the regional decree. Past 15 years the tax is the
//    61.50 EUR forfait, whatever the power bracket.
//
// 2. Eco-malus: NEDC CO2 bands, Wallonia / Brussels only, waived for vehicles
//    aged 30 years or more (collector vehicles).
//
// 3. Annual circulation tax: banded on fiscal horsepower up to 20 CV, then
//    2000 EUR + 150 EUR per CV above 20. Indexation of the amounts is not applied.
//
// 4. Flanders: the green formula is not computed; the user is referred to the
//    Flemish tax administration.

// DefaultScheduleName identifies the built-in schedule in reports
const DefaultScheduleName = "wallonia-brussels-default"

// DefaultSchedule returns the built-in Wallonia / Brussels schedule
func DefaultSchedule() *domain.TaxSchedule {
	return &domain.TaxSchedule{
		Name: DefaultScheduleName,
		RegistrationPowerBrackets: []domain.TaxBracket{
			domain.Bounded(70, 61.50),
			domain.Bounded(85, 123.00),
			domain.Bounded(100, 495.00),
			domain.Bounded(110, 867.00),
			domain.Bounded(120, 1239.00),
			domain.Bounded(155, 2478.00),
			domain.OpenEnded(4957.00),
		},
		Degressivity: domain.DegressivitySchedule{
			Steps: []domain.DegressivityStep{
				{MaxAge: 1, RetainedPercentage: decimal.NewFromInt(100)},
				{MaxAge: 2, RetainedPercentage: decimal.NewFromInt(90)},
				{MaxAge: 3, RetainedPercentage: decimal.NewFromInt(80)},
				{MaxAge: 4, RetainedPercentage: decimal.NewFromInt(70)},
				{MaxAge: 5, RetainedPercentage: decimal.NewFromInt(60)},
				{MaxAge: 6, RetainedPercentage: decimal.NewFromInt(55)},
				{MaxAge: 7, RetainedPercentage: decimal.NewFromInt(50)},
				{MaxAge: 8, RetainedPercentage: decimal.NewFromInt(45)},
				{MaxAge: 9, RetainedPercentage: decimal.NewFromInt(40)},
				{MaxAge: 10, RetainedPercentage: decimal.NewFromInt(35)},
				{MaxAge: 11, RetainedPercentage: decimal.NewFromInt(30)},
				{MaxAge: 12, RetainedPercentage: decimal.NewFromInt(25)},
				{MaxAge: 13, RetainedPercentage: decimal.NewFromInt(20)},
				{MaxAge: 14, RetainedPercentage: decimal.NewFromInt(15)},
				{MaxAge: 15, RetainedPercentage: decimal.NewFromInt(10)},
			},
			ForfaitFloor: decimal.NewFromFloat(61.50),
		},
		EcoMalusBands: []domain.TaxBracket{
			domain.Bounded(145, 0),
			domain.Bounded(155, 100),
			domain.Bounded(165, 175),
			domain.Bounded(175, 250),
			domain.Bounded(185, 350),
			domain.Bounded(195, 450),
			domain.Bounded(205, 600),
			domain.Bounded(215, 850),
			domain.Bounded(225, 1200),
			domain.Bounded(235, 1600),
			domain.Bounded(245, 2000),
			domain.OpenEnded(2500),
		},
		AnnualBands: []domain.TaxBracket{
			domain.Bounded(4, 100),
			domain.Bounded(6, 200),
			domain.Bounded(8, 300),
			domain.Bounded(9, 350),
			domain.Bounded(10, 400),
			domain.Bounded(11, 500),
			domain.Bounded(12, 600),
			domain.Bounded(13, 700),
			domain.Bounded(14, 850),
			domain.Bounded(15, 1000),
			domain.Bounded(16, 1200),
			domain.Bounded(17, 1400),
			domain.Bounded(18, 1600),
			domain.Bounded(19, 1800),
			domain.Bounded(20, 2000),
			domain.OpenEnded(2000),
		},
		AnnualPerHorsepowerAbove: decimal.NewFromInt(150),
		CollectorAge:             30,
		Classification: domain.ClassificationThresholds{
			LowMax:      decimal.NewFromInt(1000),
			ModerateMax: decimal.NewFromInt(2000),
		},
		Flanders: domain.UnsupportedRegionNotice{
			Reason:       "Flanders uses its own green formula for registration and circulation tax; use the official Flemish calculator",
			ReferenceURL: "https://belastingen.vlaanderen.be",
		},
	}
}
