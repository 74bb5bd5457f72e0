package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// FiscalHorsepower is the Belgian "cheval fiscal" (CV), derived from engine
// displacement. It is not a unit conversion of PowerKW and must never be
// computed from it.
type FiscalHorsepower int

// dinHorsepowerToKW is the DIN PS to kilowatt factor
var dinHorsepowerToKW = decimal.NewFromFloat(0.73549875)

// HorsepowerToKW converts DIN horsepower (ch/PS) to kilowatts, rounded to 0.01 kW.
// Callers use it to fill PowerKW; it has no bearing on FiscalHorsepower.
func HorsepowerToKW(hp decimal.Decimal) decimal.Decimal {
	return hp.Mul(dinHorsepowerToKW).Round(2)
}

// ProfileInput carries raw vehicle attributes before validation
type ProfileInput struct {
	PowerKW          decimal.Decimal
	FiscalHorsepower FiscalHorsepower
	CO2NEDC          decimal.Decimal
	CO2WLTP          *decimal.Decimal
	RegistrationDate *time.Time
	RegistrationYear int
	Region           Region
	IsHybrid         bool
	IsElectric       bool
}

// VehicleTaxProfile is the validated, immutable input to the tax engine
type VehicleTaxProfile struct {
	powerKW          decimal.Decimal
	fiscalHorsepower FiscalHorsepower
	co2NEDC          decimal.Decimal
	co2WLTP          *decimal.Decimal
	registrationDate *time.Time
	registrationYear int
	region           Region
	isHybrid         bool
	isElectric       bool
}

// NewVehicleTaxProfile validates in and returns an immutable profile.
// The returned error is an *InvalidProfileError naming the first offending field.
func NewVehicleTaxProfile(in ProfileInput) (VehicleTaxProfile, error) {
	if in.PowerKW.IsNegative() {
		return VehicleTaxProfile{}, &InvalidProfileError{Field: "power_kw", Reason: "cannot be negative"}
	}
	if in.FiscalHorsepower < 0 {
		return VehicleTaxProfile{}, &InvalidProfileError{Field: "fiscal_horsepower", Reason: "cannot be negative"}
	}
	if in.CO2NEDC.IsNegative() {
		return VehicleTaxProfile{}, &InvalidProfileError{Field: "co2_nedc", Reason: "cannot be negative"}
	}
	if in.CO2WLTP != nil && in.CO2WLTP.IsNegative() {
		return VehicleTaxProfile{}, &InvalidProfileError{Field: "co2_wltp", Reason: "cannot be negative"}
	}
	if in.RegistrationDate == nil || in.RegistrationDate.IsZero() {
		if in.RegistrationYear <= 0 {
			return VehicleTaxProfile{}, &InvalidProfileError{Field: "registration", Reason: "requires a first registration date or year"}
		}
	}
	if !in.Region.IsValid() {
		return VehicleTaxProfile{}, &InvalidProfileError{Field: "region", Reason: "must be " + string(RegionWalloniaBrussels) + " or " + string(RegionFlanders)}
	}

	p := VehicleTaxProfile{
		powerKW:          in.PowerKW,
		fiscalHorsepower: in.FiscalHorsepower,
		co2NEDC:          in.CO2NEDC,
		registrationYear: in.RegistrationYear,
		region:           in.Region,
		isHybrid:         in.IsHybrid,
		isElectric:       in.IsElectric,
	}
	// copy pointers so later changes to in cannot reach the profile
	if in.CO2WLTP != nil {
		wltp := *in.CO2WLTP
		p.co2WLTP = &wltp
	}
	if in.RegistrationDate != nil && !in.RegistrationDate.IsZero() {
		date := *in.RegistrationDate
		p.registrationDate = &date
	}
	return p, nil
}

// PowerKW returns the engine power in kilowatts
func (p VehicleTaxProfile) PowerKW() decimal.Decimal { return p.powerKW }

// FiscalHorsepower returns the fiscal horsepower (CV)
func (p VehicleTaxProfile) FiscalHorsepower() FiscalHorsepower { return p.fiscalHorsepower }

// CO2NEDC returns the NEDC emissions in g/km
func (p VehicleTaxProfile) CO2NEDC() decimal.Decimal { return p.co2NEDC }

// CO2WLTP returns the WLTP value and whether one was supplied
func (p VehicleTaxProfile) CO2WLTP() (decimal.Decimal, bool) {
	if p.co2WLTP == nil {
		return decimal.Zero, false
	}
	return *p.co2WLTP, true
}

// RegistrationDate returns the first registration date and whether one was supplied
func (p VehicleTaxProfile) RegistrationDate() (time.Time, bool) {
	if p.registrationDate == nil {
		return time.Time{}, false
	}
	return *p.registrationDate, true
}

// RegistrationYear returns the first registration year, or 0 when only a date was given
func (p VehicleTaxProfile) RegistrationYear() int { return p.registrationYear }

// Region returns the taxing region
func (p VehicleTaxProfile) Region() Region { return p.region }

// IsHybrid reports the hybrid flag
func (p VehicleTaxProfile) IsHybrid() bool { return p.isHybrid }

// IsElectric reports the electric flag
func (p VehicleTaxProfile) IsElectric() bool { return p.isElectric }

// Input returns the attributes as a ProfileInput, e.g. to derive a modified profile
func (p VehicleTaxProfile) Input() ProfileInput {
	in := ProfileInput{
		PowerKW:          p.powerKW,
		FiscalHorsepower: p.fiscalHorsepower,
		CO2NEDC:          p.co2NEDC,
		RegistrationYear: p.registrationYear,
		Region:           p.region,
		IsHybrid:         p.isHybrid,
		IsElectric:       p.isElectric,
	}
	if v, ok := p.CO2WLTP(); ok {
		in.CO2WLTP = &v
	}
	if d, ok := p.RegistrationDate(); ok {
		in.RegistrationDate = &d
	}
	return in
}

type profileJSON struct {
	PowerKW          decimal.Decimal  `json:"power_kw"`
	FiscalHorsepower FiscalHorsepower `json:"fiscal_horsepower"`
	CO2NEDC          decimal.Decimal  `json:"co2_nedc"`
	CO2WLTP          *decimal.Decimal `json:"co2_wltp,omitempty"`
	RegistrationDate string           `json:"first_registration_date,omitempty"`
	RegistrationYear int              `json:"year,omitempty"`
	Region           Region           `json:"region"`
	IsHybrid         bool             `json:"is_hybrid"`
	IsElectric       bool             `json:"is_electric"`
}

// MarshalJSON exposes the profile attributes for reports
func (p VehicleTaxProfile) MarshalJSON() ([]byte, error) {
	out := profileJSON{
		PowerKW:          p.powerKW,
		FiscalHorsepower: p.fiscalHorsepower,
		CO2NEDC:          p.co2NEDC,
		CO2WLTP:          p.co2WLTP,
		RegistrationYear: p.registrationYear,
		Region:           p.region,
		IsHybrid:         p.isHybrid,
		IsElectric:       p.isElectric,
	}
	if p.registrationDate != nil {
		out.RegistrationDate = p.registrationDate.Format("2006-01-02")
	}
	return json.Marshal(out)
}
