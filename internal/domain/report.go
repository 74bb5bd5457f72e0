package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification is a display label for the one-time tax burden
type Classification string

const (
	ClassificationLow      Classification = "low"
	ClassificationModerate Classification = "moderate"
	ClassificationHigh     Classification = "high"
)

// RegistrationTax is the one-time TMC breakdown
type RegistrationTax struct {
	Base              decimal.Decimal `json:"base"`
	AfterDegressivity decimal.Decimal `json:"after_degressivity"`
	EcoMalus          decimal.Decimal `json:"eco_malus"`
	Total             decimal.Decimal `json:"total"`
}

// RegionNotice explains why no figures were computed and carries the
// informational flags the unsupported formula would have needed
type RegionNotice struct {
	Reason       string `json:"reason"`
	ReferenceURL string `json:"reference_url,omitempty"`
	IsHybrid     bool   `json:"is_hybrid"`
	IsElectric   bool   `json:"is_electric"`
	HasWLTP      bool   `json:"has_wltp"`
}

// TaxReport is the engine's output. For an unsupported region RegistrationTax
// and AnnualTax are nil and Notice is set.
type TaxReport struct {
	Region            Region           `json:"region"`
	Supported         bool             `json:"supported"`
	RegistrationTax   *RegistrationTax `json:"registration_tax"`
	AnnualTax         *decimal.Decimal `json:"annual_tax"`
	Classification    Classification   `json:"classification,omitempty"`
	AgeYears          int              `json:"age_years"`
	IsCollectorExempt bool             `json:"is_collector_exempt"`
	Notice            *RegionNotice    `json:"notice,omitempty"`
}

// OneTimeTotal returns the registration total, or false for the unsupported sentinel
func (r TaxReport) OneTimeTotal() (decimal.Decimal, bool) {
	if r.RegistrationTax == nil {
		return decimal.Zero, false
	}
	return r.RegistrationTax.Total, true
}

// Annual returns the circulation tax, or false for the unsupported sentinel
func (r TaxReport) Annual() (decimal.Decimal, bool) {
	if r.AnnualTax == nil {
		return decimal.Zero, false
	}
	return *r.AnnualTax, true
}

// VehicleResult pairs a named vehicle with its report
type VehicleResult struct {
	Name    string            `json:"name"`
	Profile VehicleTaxProfile `json:"profile"`
	Report  TaxReport         `json:"report"`
}

// BatchResult holds the reports for every vehicle of a VehicleBatch
type BatchResult struct {
	Schedule    string          `json:"schedule"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
	Vehicles    []VehicleResult `json:"vehicles"`
}

// SupportedCount returns how many vehicles received computed figures
func (b *BatchResult) SupportedCount() int {
	n := 0
	for _, v := range b.Vehicles {
		if v.Report.Supported {
			n++
		}
	}
	return n
}
