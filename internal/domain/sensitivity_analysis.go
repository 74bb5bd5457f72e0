package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a vehicle attribute to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "kW", "g/km", "CV", "years"
	Description string          `yaml:"description" json:"description"`
}

// Sweepable vehicle attributes
const (
	SensitivityPowerKW          = "power_kw"
	SensitivityCO2              = "co2"
	SensitivityFiscalHorsepower = "fiscal_hp"
	SensitivityAge              = "age"
)

// SensitivityParameterNames lists every attribute a sweep can vary
func SensitivityParameterNames() []string {
	return []string{SensitivityPowerKW, SensitivityCO2, SensitivityFiscalHorsepower, SensitivityAge}
}

// SensitivityPoint is the report for one swept value
type SensitivityPoint struct {
	Value        decimal.Decimal `json:"value"`
	OneTimeTotal decimal.Decimal `json:"oneTimeTotal"`
	AnnualTax    decimal.Decimal `json:"annualTax"`
	Report       TaxReport       `json:"report"`
	IsBase       bool            `json:"isBase"`
}

// SensitivitySummary provides the outcome of one sweep
type SensitivitySummary struct {
	MinOneTime       decimal.Decimal   `json:"minOneTime"`
	MaxOneTime       decimal.Decimal   `json:"maxOneTime"`
	OneTimeSpread    decimal.Decimal   `json:"oneTimeSpread"`
	AnnualSpread     decimal.Decimal   `json:"annualSpread"`
	SpreadPct        decimal.Decimal   `json:"spreadPct"`        // spread relative to the base one-time total
	Steps            []decimal.Decimal `json:"steps"`            // swept values where the one-time total changes
	SensitivityLevel string            `json:"sensitivityLevel"` // "LOW", "MODERATE", "HIGH"
	Recommendations  []string          `json:"recommendations"`
}

// ParameterSensitivityAnalysis is a single-attribute sweep of one vehicle
type ParameterSensitivityAnalysis struct {
	VehicleName string               `json:"vehicleName"`
	Parameter   SensitivityParameter `json:"parameter"`
	BaseOneTime decimal.Decimal      `json:"baseOneTime"`
	BaseAnnual  decimal.Decimal      `json:"baseAnnual"`
	Points      []SensitivityPoint   `json:"points"`
	Summary     SensitivitySummary   `json:"summary"`
}

// MultiSensitivityAnalysis combines sweeps over several attributes
type MultiSensitivityAnalysis struct {
	VehicleName            string                         `json:"vehicleName"`
	Analyses               []ParameterSensitivityAnalysis `json:"analyses"`
	MostSensitiveParameter string                         `json:"mostSensitiveParameter"`
}
