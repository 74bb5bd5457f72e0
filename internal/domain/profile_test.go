package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ProfileInput {
	return ProfileInput{
		PowerKW:          decimal.NewFromInt(110),
		FiscalHorsepower: 11,
		CO2NEDC:          decimal.NewFromInt(135),
		RegistrationYear: 2019,
		Region:           RegionWalloniaBrussels,
	}
}

func TestNewVehicleTaxProfile_Valid(t *testing.T) {
	date := time.Date(2019, 4, 12, 0, 0, 0, 0, time.UTC)
	wltp := decimal.NewFromInt(152)
	in := validInput()
	in.RegistrationDate = &date
	in.CO2WLTP = &wltp
	in.IsHybrid = true

	p, err := NewVehicleTaxProfile(in)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(110).Equal(p.PowerKW()))
	assert.Equal(t, FiscalHorsepower(11), p.FiscalHorsepower())
	assert.True(t, decimal.NewFromInt(135).Equal(p.CO2NEDC()))
	assert.Equal(t, RegionWalloniaBrussels, p.Region())
	assert.True(t, p.IsHybrid())
	assert.False(t, p.IsElectric())

	got, ok := p.CO2WLTP()
	assert.True(t, ok)
	assert.True(t, wltp.Equal(got))

	d, ok := p.RegistrationDate()
	assert.True(t, ok)
	assert.Equal(t, date, d)
}

func TestNewVehicleTaxProfile_CopiesPointers(t *testing.T) {
	date := time.Date(2019, 4, 12, 0, 0, 0, 0, time.UTC)
	wltp := decimal.NewFromInt(152)
	in := validInput()
	in.RegistrationDate = &date
	in.CO2WLTP = &wltp

	p, err := NewVehicleTaxProfile(in)
	require.NoError(t, err)

	date = date.AddDate(5, 0, 0)
	wltp = decimal.NewFromInt(1)

	d, _ := p.RegistrationDate()
	assert.Equal(t, 2019, d.Year(), "profile must not observe later changes")
	w, _ := p.CO2WLTP()
	assert.True(t, decimal.NewFromInt(152).Equal(w))
}

func TestNewVehicleTaxProfile_Invalid(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		field  string
	}{
		{"negative power", func(in *ProfileInput) { in.PowerKW = negative }, "power_kw"},
		{"negative fiscal horsepower", func(in *ProfileInput) { in.FiscalHorsepower = -2 }, "fiscal_horsepower"},
		{"negative co2", func(in *ProfileInput) { in.CO2NEDC = negative }, "co2_nedc"},
		{"negative wltp", func(in *ProfileInput) { in.CO2WLTP = &negative }, "co2_wltp"},
		{"no age source", func(in *ProfileInput) { in.RegistrationYear = 0 }, "registration"},
		{"zero date and no year", func(in *ProfileInput) {
			in.RegistrationYear = 0
			in.RegistrationDate = &time.Time{}
		}, "registration"},
		{"unknown region", func(in *ProfileInput) { in.Region = "luxembourg" }, "region"},
		{"empty region", func(in *ProfileInput) { in.Region = "" }, "region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := NewVehicleTaxProfile(in)
			require.Error(t, err)

			var profileErr *InvalidProfileError
			require.True(t, errors.As(err, &profileErr))
			assert.Equal(t, tt.field, profileErr.Field)
			assert.ErrorIs(t, err, ErrInvalidProfile)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNewVehicleTaxProfile_ZeroValuesAccepted(t *testing.T) {
	in := validInput()
	in.PowerKW = decimal.Zero
	in.FiscalHorsepower = 0
	in.CO2NEDC = decimal.Zero

	_, err := NewVehicleTaxProfile(in)
	assert.NoError(t, err, "electric vehicles legitimately report zero CO2")
}

func TestVehicleTaxProfile_InputRoundTrip(t *testing.T) {
	date := time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC)
	in := validInput()
	in.RegistrationDate = &date

	p, err := NewVehicleTaxProfile(in)
	require.NoError(t, err)

	again, err := NewVehicleTaxProfile(p.Input())
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestVehicleTaxProfile_MarshalJSON(t *testing.T) {
	date := time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC)
	in := validInput()
	in.RegistrationDate = &date

	p, err := NewVehicleTaxProfile(in)
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2018-01-31", decoded["first_registration_date"])
	assert.Equal(t, "wallonia_brussels", decoded["region"])
	assert.Equal(t, float64(11), decoded["fiscal_horsepower"])
	assert.NotContains(t, decoded, "co2_wltp")
}

func TestHorsepowerToKW(t *testing.T) {
	tests := []struct {
		hp       int64
		expected string
	}{
		{0, "0"},
		{100, "73.55"},
		{136, "100.03"},
		{204, "150.04"},
	}

	for _, tt := range tests {
		got := HorsepowerToKW(decimal.NewFromInt(tt.hp))
		assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "%d hp: expected %s, got %s", tt.hp, tt.expected, got)
	}
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input    string
		expected Region
		wantErr  bool
	}{
		{"wallonia_brussels", RegionWalloniaBrussels, false},
		{"Brussels", RegionWalloniaBrussels, false},
		{" wallonie ", RegionWalloniaBrussels, false},
		{"flanders", RegionFlanders, false},
		{"Vlaanderen", RegionFlanders, false},
		{"luxembourg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRegion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	assert.Equal(t, "Wallonia / Brussels", RegionWalloniaBrussels.DisplayName())
	assert.Equal(t, "Flanders", RegionFlanders.DisplayName())
	assert.Len(t, Regions(), 2)
}
