package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule() *TaxSchedule {
	return &TaxSchedule{
		Name:                      "test",
		RegistrationPowerBrackets: []TaxBracket{Bounded(70, 61.50), Bounded(100, 495), OpenEnded(4957)},
		Degressivity: DegressivitySchedule{
			Steps: []DegressivityStep{
				{MaxAge: 1, RetainedPercentage: decimal.NewFromInt(100)},
				{MaxAge: 2, RetainedPercentage: decimal.NewFromInt(90)},
			},
			ForfaitFloor: decimal.NewFromFloat(61.50),
		},
		EcoMalusBands:            []TaxBracket{Bounded(145, 0), OpenEnded(2500)},
		AnnualBands:              []TaxBracket{Bounded(4, 100), Bounded(20, 2000), OpenEnded(2000)},
		AnnualPerHorsepowerAbove: decimal.NewFromInt(150),
		CollectorAge:             30,
		Classification: ClassificationThresholds{
			LowMax:      decimal.NewFromInt(1000),
			ModerateMax: decimal.NewFromInt(2000),
		},
	}
}

func TestTaxSchedule_Validate(t *testing.T) {
	require.NoError(t, testSchedule().Validate())

	tests := []struct {
		name   string
		mutate func(*TaxSchedule)
		table  string
	}{
		{"empty power table", func(s *TaxSchedule) { s.RegistrationPowerBrackets = nil }, "registration_power_brackets"},
		{"missing open-ended row", func(s *TaxSchedule) {
			s.RegistrationPowerBrackets = []TaxBracket{Bounded(70, 61.50), Bounded(100, 495)}
		}, "registration_power_brackets"},
		{"open-ended row in the middle", func(s *TaxSchedule) {
			s.EcoMalusBands = []TaxBracket{OpenEnded(0), Bounded(145, 100), OpenEnded(2500)}
		}, "eco_malus_bands"},
		{"bounds not increasing", func(s *TaxSchedule) {
			s.RegistrationPowerBrackets = []TaxBracket{Bounded(100, 61.50), Bounded(70, 495), OpenEnded(4957)}
		}, "registration_power_brackets"},
		{"values decreasing", func(s *TaxSchedule) {
			s.EcoMalusBands = []TaxBracket{Bounded(145, 100), OpenEnded(0)}
		}, "eco_malus_bands"},
		{"negative value", func(s *TaxSchedule) {
			s.EcoMalusBands = []TaxBracket{Bounded(145, -1), OpenEnded(0)}
		}, "eco_malus_bands"},
		{"single annual row", func(s *TaxSchedule) { s.AnnualBands = []TaxBracket{OpenEnded(100)} }, "annual_bands"},
		{"no degressivity", func(s *TaxSchedule) { s.Degressivity.Steps = nil }, "degressivity"},
		{"percentage increases", func(s *TaxSchedule) {
			s.Degressivity.Steps[0].RetainedPercentage = decimal.NewFromInt(80)
		}, "degressivity"},
		{"ages not increasing", func(s *TaxSchedule) { s.Degressivity.Steps[1].MaxAge = 1 }, "degressivity"},
		{"negative floor", func(s *TaxSchedule) { s.Degressivity.ForfaitFloor = decimal.NewFromInt(-1) }, "degressivity"},
		{"negative per-hp rate", func(s *TaxSchedule) { s.AnnualPerHorsepowerAbove = decimal.NewFromInt(-1) }, "annual_per_horsepower_above"},
		{"zero collector age", func(s *TaxSchedule) { s.CollectorAge = 0 }, "collector_age"},
		{"inverted classification", func(s *TaxSchedule) {
			s.Classification.ModerateMax = decimal.NewFromInt(500)
		}, "classification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchedule()
			tt.mutate(s)

			err := s.Validate()
			require.Error(t, err)

			var schedErr *ScheduleError
			require.True(t, errors.As(err, &schedErr))
			assert.Equal(t, tt.table, schedErr.Table)
		})
	}
}

func TestScheduleError_Error(t *testing.T) {
	assert.Equal(t, "schedule eco_malus_bands[2]: bad", (&ScheduleError{Table: "eco_malus_bands", Index: 2, Reason: "bad"}).Error())
	assert.Equal(t, "schedule collector_age: bad", (&ScheduleError{Table: "collector_age", Index: -1, Reason: "bad"}).Error())
}

func TestTaxBracket_Contains(t *testing.T) {
	b := Bounded(70, 61.50)
	assert.True(t, b.Contains(decimal.NewFromInt(70)))
	assert.False(t, b.Contains(decimal.NewFromFloat(70.01)))
	assert.False(t, b.IsOpenEnded())

	open := OpenEnded(4957)
	assert.True(t, open.IsOpenEnded())
	assert.True(t, open.Contains(decimal.NewFromInt(1_000_000)))
}

func TestTaxReport_Accessors(t *testing.T) {
	annual := decimal.NewFromInt(400)
	supported := TaxReport{
		Supported:       true,
		RegistrationTax: &RegistrationTax{Total: decimal.NewFromInt(495)},
		AnnualTax:       &annual,
	}

	total, ok := supported.OneTimeTotal()
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(495).Equal(total))
	a, ok := supported.Annual()
	assert.True(t, ok)
	assert.True(t, annual.Equal(a))

	sentinel := TaxReport{Region: RegionFlanders, Notice: &RegionNotice{Reason: "n/a"}}
	_, ok = sentinel.OneTimeTotal()
	assert.False(t, ok)
	_, ok = sentinel.Annual()
	assert.False(t, ok)

	batch := &BatchResult{Vehicles: []VehicleResult{{Report: supported}, {Report: sentinel}}}
	assert.Equal(t, 1, batch.SupportedCount())
}

func TestVehicleBatch_Find(t *testing.T) {
	batch := &VehicleBatch{Vehicles: []VehicleEntry{{Name: "a"}, {Name: "b"}}}

	entry, ok := batch.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "b", entry.Name)

	_, ok = batch.Find("c")
	assert.False(t, ok)
}
