package scenes

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/tui/tuimsg"
)

func pinClock(t *testing.T) {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(nil) })
}

func press(m *CalculatorModel, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

var (
	keyUp         = tea.KeyMsg{Type: tea.KeyUp}
	keyDown       = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft       = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight      = tea.KeyMsg{Type: tea.KeyRight}
	keyShiftRight = tea.KeyMsg{Type: tea.KeyShiftRight}
	keyReset      = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
	keyEnter      = tea.KeyMsg{Type: tea.KeyEnter}
)

func roadster(t *testing.T) domain.VehicleEntry {
	t.Helper()
	profile, err := domain.NewVehicleTaxProfile(domain.ProfileInput{
		PowerKW:          decimal.NewFromInt(80),
		FiscalHorsepower: 17,
		CO2NEDC:          decimal.NewFromInt(280),
		RegistrationYear: 1990,
		Region:           domain.RegionWalloniaBrussels,
	})
	require.NoError(t, err)
	return domain.VehicleEntry{Name: "classic-roadster", Profile: profile}
}

func totalOf(t *testing.T, m *CalculatorModel) string {
	t.Helper()
	total, ok := m.Report().OneTimeTotal()
	require.True(t, ok, "expected computed figures")
	return total.StringFixed(2)
}

func TestCalculatorModel_Defaults(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	assert.Equal(t, "custom vehicle", m.Name())
	assert.Equal(t, FieldPowerKW, m.FocusedKey())
	assert.NoError(t, m.Err())
	assert.Equal(t, "495.00", totalOf(t, m))

	annual, ok := m.Report().Annual()
	require.True(t, ok)
	assert.Equal(t, "350.00", annual.StringFixed(2))
	assert.Equal(t, domain.ClassificationLow, m.Report().Classification)
}

func TestCalculatorModel_AdjustRecalculates(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	press(m, keyRight)
	assert.Equal(t, 101.0, m.Slider(FieldPowerKW).Value)
	assert.Equal(t, "867.00", totalOf(t, m), "101 kW moves to the next bracket")

	press(m, keyLeft, keyLeft)
	assert.Equal(t, 99.0, m.Slider(FieldPowerKW).Value)
	assert.Equal(t, "495.00", totalOf(t, m))

	// age: 3 down from power
	press(m, keyDown, keyDown, keyDown, keyShiftRight)
	assert.Equal(t, FieldAge, m.FocusedKey())
	assert.Equal(t, 5, m.Slider(FieldAge).Int())
	assert.Equal(t, 2020, m.Profile().RegistrationYear())
	assert.Equal(t, "297.00", totalOf(t, m), "60% of 495 at five years")
}

func TestCalculatorModel_FocusStopsAtEnds(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	press(m, keyUp)
	assert.Equal(t, FieldPowerKW, m.FocusedKey())

	for i := 0; i < 20; i++ {
		press(m, keyDown)
	}
	assert.Equal(t, FieldElectric, m.FocusedKey())
}

func TestCalculatorModel_SliderBounds(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	for i := 0; i < 150; i++ {
		press(m, keyLeft)
	}
	assert.Equal(t, 0.0, m.Slider(FieldPowerKW).Value)
	assert.Equal(t, "61.50", totalOf(t, m), "zero power is in the first bracket")
}

func TestCalculatorModel_RegionToggle(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	// region is the first toggle, after four sliders
	press(m, keyDown, keyDown, keyDown, keyDown, keyRight)
	assert.Equal(t, FieldRegion, m.FocusedKey())

	report := m.Report()
	assert.False(t, report.Supported)
	assert.Equal(t, domain.RegionFlanders, report.Region)
	require.NotNil(t, report.Notice)
	assert.Contains(t, m.View(), "tax not computed")

	press(m, keyRight)
	assert.True(t, m.Report().Supported, "toggle wraps back to Wallonia / Brussels")
}

func TestCalculatorModel_HybridSwitch(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())

	press(m, keyDown, keyDown, keyDown, keyDown, keyRight, keyDown, keyRight)
	assert.Equal(t, FieldHybrid, m.FocusedKey())
	assert.True(t, m.Profile().IsHybrid())
	require.NotNil(t, m.Report().Notice)
	assert.True(t, m.Report().Notice.IsHybrid)
}

func TestCalculatorModel_SeedAndReset(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())
	m.Seed(roadster(t))

	assert.Equal(t, "classic-roadster", m.Name())
	assert.Equal(t, 35, m.Slider(FieldAge).Int())
	assert.True(t, m.Report().IsCollectorExempt)
	assert.Equal(t, "61.50", totalOf(t, m))

	press(m, keyDown, keyDown, keyRight)
	assert.Equal(t, 281.0, m.Slider(FieldCO2).Value)

	press(m, keyReset)
	assert.Equal(t, 280.0, m.Slider(FieldCO2).Value)
	assert.Equal(t, FieldPowerKW, m.FocusedKey())
	assert.Equal(t, "classic-roadster", m.Name())
}

func TestCalculatorModel_ResetWithoutSeed(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())
	m.SetSize(120, 40)

	press(m, keyRight, keyRight)
	press(m, keyReset)
	assert.Equal(t, 100.0, m.Slider(FieldPowerKW).Value)
	assert.Equal(t, "495.00", totalOf(t, m))
}

func TestCalculatorModel_View(t *testing.T) {
	pinClock(t)
	m := NewCalculatorModel(calculation.NewTaxEngine())
	press(m, keyRight)

	view := m.View()
	assert.Contains(t, view, "Registration total")
	assert.Contains(t, view, "€867.00")
	assert.Contains(t, view, "▲ €372.00", "change since the previous value")
	assert.Contains(t, view, "Annual tax")
}

func TestVehiclesModel(t *testing.T) {
	pinClock(t)
	m := NewVehiclesModel()
	assert.Contains(t, m.View(), "No vehicles loaded")

	_, cmd := m.Update(keyEnter)
	assert.Nil(t, cmd, "nothing to select")

	classic := roadster(t)
	other := classic
	other.Name = "second"
	m.SetBatch(&domain.VehicleBatch{Source: "vehicles.yaml", Vehicles: []domain.VehicleEntry{classic, other}})
	assert.Equal(t, 2, m.Len())

	view := m.View()
	assert.Contains(t, view, "Vehicles (2)")
	assert.Contains(t, view, "vehicles.yaml")
	assert.Contains(t, view, "80 kW • 17 CV")

	m.Update(keyDown)
	m.Update(keyDown)
	selected, ok := m.SelectedVehicle()
	require.True(t, ok)
	assert.Equal(t, "second", selected.Name)

	_, cmd = m.Update(keyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.VehicleSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "second", msg.Entry.Name)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	selected, _ = m.SelectedVehicle()
	assert.Equal(t, "classic-roadster", selected.Name)

	m.SetBatch(nil)
	assert.Equal(t, 0, m.Len())
}
