package calculation

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// AgeAssessment is the resolved age handed to a region policy
type AgeAssessment struct {
	Years           int
	CollectorExempt bool
}

// RegionPolicy turns a profile into a report for the regions it applies to
type RegionPolicy interface {
	Applies(region domain.Region) bool
	Assess(profile domain.VehicleTaxProfile, age AgeAssessment) domain.TaxReport
}

// WalloniaBrusselsPolicy computes the TMC, eco-malus and annual tax
type WalloniaBrusselsPolicy struct {
	Registration   *RegistrationTaxCalculator
	EcoMalus       *EcoMalusCalculator
	Annual         *AnnualCirculationTaxCalculator
	Classification domain.ClassificationThresholds
}

// NewWalloniaBrusselsPolicy wires the three calculators of a schedule
func NewWalloniaBrusselsPolicy(schedule *domain.TaxSchedule) *WalloniaBrusselsPolicy {
	return &WalloniaBrusselsPolicy{
		Registration:   NewRegistrationTaxCalculator(schedule),
		EcoMalus:       NewEcoMalusCalculator(schedule),
		Annual:         NewAnnualCirculationTaxCalculator(schedule),
		Classification: schedule.Classification,
	}
}

// Applies implements RegionPolicy
func (p *WalloniaBrusselsPolicy) Applies(region domain.Region) bool {
	return region == domain.RegionWalloniaBrussels
}

// Assess implements RegionPolicy
func (p *WalloniaBrusselsPolicy) Assess(profile domain.VehicleTaxProfile, age AgeAssessment) domain.TaxReport {
	base, after := p.Registration.Calculate(RegistrationTaxInput{
		PowerKW:  profile.PowerKW(),
		AgeYears: age.Years,
	})
	_, degressive := p.Registration.RetainedPercentage(age.Years)
	ecoMalus := p.EcoMalus.Calculate(EcoMalusInput{
		CO2NEDC:         profile.CO2NEDC(),
		Region:          profile.Region(),
		CollectorExempt: age.CollectorExempt,
		UnderForfait:    !degressive,
	})
	total := after.Add(ecoMalus)
	annual := p.Annual.Calculate(AnnualTaxInput{FiscalHorsepower: profile.FiscalHorsepower()})

	return domain.TaxReport{
		Region:    profile.Region(),
		Supported: true,
		RegistrationTax: &domain.RegistrationTax{
			Base:              base,
			AfterDegressivity: after,
			EcoMalus:          ecoMalus,
			Total:             total,
		},
		AnnualTax:         &annual,
		Classification:    Classify(total, p.Classification),
		AgeYears:          age.Years,
		IsCollectorExempt: age.CollectorExempt,
	}
}

// UnsupportedRegionPolicy returns the "not computed" sentinel with a referral notice
type UnsupportedRegionPolicy struct {
	Region domain.Region
	Notice domain.UnsupportedRegionNotice
}

// NewFlandersPolicy creates the sentinel policy for Flanders
func NewFlandersPolicy(schedule *domain.TaxSchedule) *UnsupportedRegionPolicy {
	return &UnsupportedRegionPolicy{Region: domain.RegionFlanders, Notice: schedule.Flanders}
}

// Applies implements RegionPolicy
func (p *UnsupportedRegionPolicy) Applies(region domain.Region) bool {
	return region == p.Region
}

// Assess implements RegionPolicy. No amount is ever computed here.
func (p *UnsupportedRegionPolicy) Assess(profile domain.VehicleTaxProfile, age AgeAssessment) domain.TaxReport {
	return unsupportedReport(profile, age, p.Notice)
}

func unsupportedReport(profile domain.VehicleTaxProfile, age AgeAssessment, notice domain.UnsupportedRegionNotice) domain.TaxReport {
	_, hasWLTP := profile.CO2WLTP()
	return domain.TaxReport{
		Region:            profile.Region(),
		Supported:         false,
		AgeYears:          age.Years,
		IsCollectorExempt: age.CollectorExempt,
		Notice: &domain.RegionNotice{
			Reason:       notice.Reason,
			ReferenceURL: notice.ReferenceURL,
			IsHybrid:     profile.IsHybrid(),
			IsElectric:   profile.IsElectric(),
			HasWLTP:      hasWLTP,
		},
	}
}

// Classify labels a one-time total against the thresholds
func Classify(total decimal.Decimal, t domain.ClassificationThresholds) domain.Classification {
	switch {
	case total.LessThanOrEqual(t.LowMax):
		return domain.ClassificationLow
	case total.LessThanOrEqual(t.ModerateMax):
		return domain.ClassificationModerate
	default:
		return domain.ClassificationHigh
	}
}
