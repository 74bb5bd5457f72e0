package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one row of an ascending lookup table. A nil UpperBoundInclusive
// marks the open-ended final row.
type TaxBracket struct {
	UpperBoundInclusive *decimal.Decimal `yaml:"upper_bound_inclusive,omitempty" json:"upper_bound_inclusive,omitempty"`
	Value               decimal.Decimal  `yaml:"value" json:"value"`
}

// IsOpenEnded reports whether the bracket has no upper bound
func (b TaxBracket) IsOpenEnded() bool {
	return b.UpperBoundInclusive == nil
}

// Contains reports whether x falls at or below the bracket's upper bound
func (b TaxBracket) Contains(x decimal.Decimal) bool {
	return b.IsOpenEnded() || x.LessThanOrEqual(*b.UpperBoundInclusive)
}

// Bounded builds a closed bracket
func Bounded(upper, value float64) TaxBracket {
	u := decimal.NewFromFloat(upper)
	return TaxBracket{UpperBoundInclusive: &u, Value: decimal.NewFromFloat(value)}
}

// OpenEnded builds the final "else" bracket
func OpenEnded(value float64) TaxBracket {
	return TaxBracket{Value: decimal.NewFromFloat(value)}
}

// DegressivityStep keeps RetainedPercentage (0-100) of the base tax up to MaxAge years
type DegressivityStep struct {
	MaxAge             int             `yaml:"max_age" json:"max_age"`
	RetainedPercentage decimal.Decimal `yaml:"retained_percentage" json:"retained_percentage"`
}

// DegressivitySchedule reduces the registration tax with age. Past the last
// step the tax is the fixed ForfaitFloor amount, not a percentage.
type DegressivitySchedule struct {
	Steps        []DegressivityStep `yaml:"steps" json:"steps"`
	ForfaitFloor decimal.Decimal    `yaml:"forfait_floor" json:"forfait_floor"`
}

// LastAge returns the oldest age still covered by a percentage step
func (d DegressivitySchedule) LastAge() int {
	if len(d.Steps) == 0 {
		return -1
	}
	return d.Steps[len(d.Steps)-1].MaxAge
}

// ClassificationThresholds splits registration totals into burden labels
type ClassificationThresholds struct {
	LowMax      decimal.Decimal `yaml:"low_max" json:"low_max"`
	ModerateMax decimal.Decimal `yaml:"moderate_max" json:"moderate_max"`
}

// UnsupportedRegionNotice is shown instead of figures for a region the engine does not compute
type UnsupportedRegionNotice struct {
	Reason       string `yaml:"reason" json:"reason"`
	ReferenceURL string `yaml:"reference_url" json:"reference_url"`
}

// TaxSchedule holds every legal table and constant the engine uses
type TaxSchedule struct {
	Name string `yaml:"name" json:"name"`

	RegistrationPowerBrackets []TaxBracket         `yaml:"registration_power_brackets" json:"registration_power_brackets"`
	Degressivity              DegressivitySchedule `yaml:"degressivity" json:"degressivity"`
	EcoMalusBands             []TaxBracket         `yaml:"eco_malus_bands" json:"eco_malus_bands"`

	// AnnualBands is keyed by fiscal horsepower. Above the last closed bound the
	// open-ended row's value grows by AnnualPerHorsepowerAbove per extra CV.
	AnnualBands              []TaxBracket    `yaml:"annual_bands" json:"annual_bands"`
	AnnualPerHorsepowerAbove decimal.Decimal `yaml:"annual_per_horsepower_above" json:"annual_per_horsepower_above"`

	CollectorAge   int                      `yaml:"collector_age" json:"collector_age"`
	Classification ClassificationThresholds `yaml:"classification" json:"classification"`
	Flanders       UnsupportedRegionNotice  `yaml:"flanders" json:"flanders"`
}

// Validate checks table ordering, contiguity and the open-ended final row
func (s *TaxSchedule) Validate() error {
	if err := validateBrackets("registration_power_brackets", s.RegistrationPowerBrackets); err != nil {
		return err
	}
	if err := validateDegressivity(s.Degressivity); err != nil {
		return err
	}
	if err := validateBrackets("eco_malus_bands", s.EcoMalusBands); err != nil {
		return err
	}
	if err := validateBrackets("annual_bands", s.AnnualBands); err != nil {
		return err
	}
	if len(s.AnnualBands) < 2 {
		return &ScheduleError{Table: "annual_bands", Index: -1, Reason: "needs at least one closed band before the open-ended row"}
	}
	if s.AnnualPerHorsepowerAbove.IsNegative() {
		return &ScheduleError{Table: "annual_per_horsepower_above", Index: -1, Reason: "cannot be negative"}
	}
	if s.CollectorAge <= 0 {
		return &ScheduleError{Table: "collector_age", Index: -1, Reason: "must be positive"}
	}
	if s.Classification.LowMax.IsNegative() || s.Classification.ModerateMax.LessThan(s.Classification.LowMax) {
		return &ScheduleError{Table: "classification", Index: -1, Reason: "thresholds must satisfy 0 <= low_max <= moderate_max"}
	}
	return nil
}

func validateBrackets(table string, brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return &ScheduleError{Table: table, Index: -1, Reason: "is empty"}
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Value.IsNegative() {
			return &ScheduleError{Table: table, Index: i, Reason: "value cannot be negative"}
		}
		if b.IsOpenEnded() != (i == last) {
			return &ScheduleError{Table: table, Index: i, Reason: "only the last bracket may (and must) be open-ended"}
		}
		if i == 0 {
			continue
		}
		prev := brackets[i-1]
		if b.Value.LessThan(prev.Value) {
			return &ScheduleError{Table: table, Index: i, Reason: fmt.Sprintf("value %s is lower than previous %s", b.Value, prev.Value)}
		}
		if !b.IsOpenEnded() && b.UpperBoundInclusive.LessThanOrEqual(*prev.UpperBoundInclusive) {
			return &ScheduleError{Table: table, Index: i, Reason: "upper bounds must be strictly increasing"}
		}
	}
	return nil
}

func validateDegressivity(d DegressivitySchedule) error {
	const table = "degressivity"
	if len(d.Steps) == 0 {
		return &ScheduleError{Table: table, Index: -1, Reason: "has no steps"}
	}
	hundred := decimal.NewFromInt(100)
	for i, step := range d.Steps {
		if step.MaxAge < 0 {
			return &ScheduleError{Table: table, Index: i, Reason: "max_age cannot be negative"}
		}
		if step.RetainedPercentage.IsNegative() || step.RetainedPercentage.GreaterThan(hundred) {
			return &ScheduleError{Table: table, Index: i, Reason: "retained_percentage must be between 0 and 100"}
		}
		if i > 0 {
			prev := d.Steps[i-1]
			if step.MaxAge <= prev.MaxAge {
				return &ScheduleError{Table: table, Index: i, Reason: "max_age must be strictly increasing"}
			}
			if step.RetainedPercentage.GreaterThan(prev.RetainedPercentage) {
				return &ScheduleError{Table: table, Index: i, Reason: "retained_percentage cannot increase with age"}
			}
		}
	}
	if d.ForfaitFloor.IsNegative() {
		return &ScheduleError{Table: table, Index: -1, Reason: "forfait_floor cannot be negative"}
	}
	return nil
}
