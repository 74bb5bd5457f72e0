package scenes

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/tui/components"
	"github.com/rgehrsitz/vehtax/internal/tui/tuistyles"
)

// Form field keys
const (
	FieldPowerKW  = "power_kw"
	FieldFiscalHP = "fiscal_horsepower"
	FieldCO2      = "co2"
	FieldAge      = "age"
	FieldRegion   = "region"
	FieldHybrid   = "is_hybrid"
	FieldElectric = "is_electric"
)

var calculatorKeys = struct {
	Up, Down, Left, Right, BigLeft, BigRight, Reset key.Binding
}{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Left:     key.NewBinding(key.WithKeys("left", "h", "-")),
	Right:    key.NewBinding(key.WithKeys("right", "l", "+")),
	BigLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
	BigRight: key.NewBinding(key.WithKeys("shift+right", "L")),
	Reset:    key.NewBinding(key.WithKeys("r")),
}

// CalculatorModel is the interactive tax form. Every change rebuilds the
// vehicle profile and re-runs the engine.
type CalculatorModel struct {
	engine  *calculation.TaxEngine
	now     func() time.Time
	sliders []*components.ParameterSlider
	toggles []*components.Toggle
	focused int

	seed     *domain.VehicleEntry
	name     string
	profile  domain.VehicleTaxProfile
	report   domain.TaxReport
	previous *domain.TaxReport
	err      error

	width  int
	height int
}

// NewCalculatorModel creates the form with a mid-range new car
func NewCalculatorModel(engine *calculation.TaxEngine) *CalculatorModel {
	m := &CalculatorModel{engine: engine, now: calculation.Now}
	m.buildFields(100, 9, 130, 0, domain.RegionWalloniaBrussels, false, false)
	m.name = "custom vehicle"
	m.recalculate()
	m.previous = nil
	return m
}

// buildFields creates sliders and toggles for the given starting values
func (m *CalculatorModel) buildFields(kw float64, cv, co2 float64, age int, region domain.Region, hybrid, electric bool) {
	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider(FieldPowerKW, "Power", kw, 0, 400, 1).
			WithUnit(" kW").WithBigStep(10).
			WithDescription("Engine power; selects the registration tax bracket"),
		components.NewParameterSlider(FieldFiscalHP, "Fiscal horsepower", cv, 0, 40, 1).
			WithUnit(" CV").
			WithDescription("Cheval fiscal from the registration certificate; drives the annual tax"),
		components.NewParameterSlider(FieldCO2, "CO2 (NEDC)", co2, 0, 400, 1).
			WithUnit(" g/km").WithBigStep(10).
			WithDescription("Emissions; selects the eco-malus band"),
		components.NewParameterSlider(FieldAge, "Age", float64(age), 0, 50, 1).
			WithUnit(" years").WithBigStep(5).
			WithDescription("Years since first registration; reduces the registration tax"),
	}

	regionToggle := components.NewToggle(FieldRegion, "Region", string(domain.RegionWalloniaBrussels), string(domain.RegionFlanders))
	regionToggle.Select(string(region))
	m.toggles = []*components.Toggle{
		regionToggle,
		components.NewSwitch(FieldHybrid, "Hybrid", hybrid),
		components.NewSwitch(FieldElectric, "Electric", electric),
	}

	m.focused = 0
	m.applyFocus()
}

// Seed fills the form from a loaded vehicle
func (m *CalculatorModel) Seed(entry domain.VehicleEntry) {
	p := entry.Profile
	age, _ := m.engine.AgeResolver.ResolveAge(p, m.now())

	m.seed = &entry
	m.name = entry.Name
	m.buildFields(
		p.PowerKW().InexactFloat64(),
		float64(p.FiscalHorsepower()),
		p.CO2NEDC().InexactFloat64(),
		age,
		p.Region(),
		p.IsHybrid(),
		p.IsElectric(),
	)
	m.previous = nil
	m.recalculate()
	m.previous = nil
}

// Reset restores the seeded vehicle, or the default form without one
func (m *CalculatorModel) Reset() {
	if m.seed != nil {
		m.Seed(*m.seed)
		return
	}
	width, height := m.width, m.height
	*m = *NewCalculatorModel(m.engine)
	m.SetSize(width, height)
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Name returns the vehicle name shown in the form
func (m *CalculatorModel) Name() string { return m.name }

// Report returns the latest engine result
func (m *CalculatorModel) Report() domain.TaxReport { return m.report }

// Profile returns the profile built from the current form values
func (m *CalculatorModel) Profile() domain.VehicleTaxProfile { return m.profile }

// Err returns the validation error of the last rebuild, if any
func (m *CalculatorModel) Err() error { return m.err }

// Slider returns the slider with the given key
func (m *CalculatorModel) Slider(k string) *components.ParameterSlider {
	for _, s := range m.sliders {
		if s.Key == k {
			return s
		}
	}
	return nil
}

// Toggle returns the toggle with the given key
func (m *CalculatorModel) Toggle(k string) *components.Toggle {
	for _, t := range m.toggles {
		if t.Key == k {
			return t
		}
	}
	return nil
}

// FocusedKey returns the key of the focused field
func (m *CalculatorModel) FocusedKey() string {
	if m.focused < len(m.sliders) {
		return m.sliders[m.focused].Key
	}
	return m.toggles[m.focused-len(m.sliders)].Key
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *CalculatorModel) handleKeyPress(msg tea.KeyMsg) (*CalculatorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, calculatorKeys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, calculatorKeys.Down):
		m.moveFocus(1)
	case key.Matches(msg, calculatorKeys.BigLeft):
		m.adjust(-1, true)
	case key.Matches(msg, calculatorKeys.BigRight):
		m.adjust(1, true)
	case key.Matches(msg, calculatorKeys.Left):
		m.adjust(-1, false)
	case key.Matches(msg, calculatorKeys.Right):
		m.adjust(1, false)
	case key.Matches(msg, calculatorKeys.Reset):
		m.Reset()
	}
	return m, nil
}

func (m *CalculatorModel) fieldCount() int {
	return len(m.sliders) + len(m.toggles)
}

// moveFocus moves focus by delta, stopping at the ends
func (m *CalculatorModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= m.fieldCount() {
		return
	}
	m.focused = next
	m.applyFocus()
}

func (m *CalculatorModel) applyFocus() {
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
	for i, t := range m.toggles {
		t.SetFocused(len(m.sliders)+i == m.focused)
	}
}

// adjust changes the focused field and recalculates
func (m *CalculatorModel) adjust(direction int, big bool) {
	if m.focused < len(m.sliders) {
		s := m.sliders[m.focused]
		switch {
		case direction > 0 && big:
			s.IncrementBig()
		case direction > 0:
			s.Increment()
		case big:
			s.DecrementBig()
		default:
			s.Decrement()
		}
	} else {
		t := m.toggles[m.focused-len(m.sliders)]
		if direction > 0 {
			t.Next()
		} else {
			t.Prev()
		}
	}
	m.recalculate()
}

// recalculate rebuilds the profile from the form and evaluates it
func (m *CalculatorModel) recalculate() {
	at := m.now()
	in := domain.ProfileInput{
		PowerKW:          decimal.NewFromFloat(m.Slider(FieldPowerKW).Value),
		FiscalHorsepower: domain.FiscalHorsepower(m.Slider(FieldFiscalHP).Int()),
		CO2NEDC:          decimal.NewFromFloat(m.Slider(FieldCO2).Value),
		RegistrationYear: at.Year() - m.Slider(FieldAge).Int(),
		Region:           domain.Region(m.Toggle(FieldRegion).Value()),
		IsHybrid:         m.Toggle(FieldHybrid).On(),
		IsElectric:       m.Toggle(FieldElectric).On(),
	}
	if m.seed != nil {
		if wltp, ok := m.seed.Profile.CO2WLTP(); ok {
			in.CO2WLTP = &wltp
		}
	}

	profile, err := domain.NewVehicleTaxProfile(in)
	if err != nil {
		m.err = err
		return
	}

	previous := m.report
	m.previous = &previous
	m.err = nil
	m.profile = profile
	m.report = m.engine.CalculateAt(profile, at)
}

// View renders the calculator scene
func (m *CalculatorModel) View() string {
	form := m.renderForm()
	results := m.renderResults()

	content := lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	return content + "\n\n" + renderCalculatorHelp()
}

func (m *CalculatorModel) renderForm() string {
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(60)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	rendered := []string{titleStyle.Render(m.name), ""}
	for _, s := range m.sliders {
		rendered = append(rendered, s.Render(), "")
	}
	for _, t := range m.toggles {
		rendered = append(rendered, t.Render())
	}
	if m.err != nil {
		rendered = append(rendered, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}

	return containerStyle.Render(strings.Join(rendered, "\n"))
}

func (m *CalculatorModel) renderResults() string {
	r := m.report
	if !r.Supported {
		return renderNotice(r)
	}

	var prev *domain.TaxReport
	if m.previous != nil && m.previous.Supported {
		prev = m.previous
	}

	tax := r.RegistrationTax
	annual, _ := r.Annual()

	base := components.NewAmountCard("Base tax", tax.Base)
	after := components.NewAmountCard("After degressivity", tax.AfterDegressivity).
		WithDescription(fmt.Sprintf("age %d", r.AgeYears))
	eco := components.NewAmountCard("Eco-malus", tax.EcoMalus)
	if r.IsCollectorExempt {
		eco.WithDescription("collector vehicle")
	}
	total := components.NewAmountCard("Registration total", tax.Total).
		WithDescription(string(r.Classification)).
		WithHighlight()
	yearly := components.NewAmountCard("Annual tax", annual).
		WithDescription(fmt.Sprintf("%d CV", m.profile.FiscalHorsepower()))

	if prev != nil {
		prevAnnual, _ := prev.Annual()
		base.WithChange(prev.RegistrationTax.Base, tax.Base)
		after.WithChange(prev.RegistrationTax.AfterDegressivity, tax.AfterDegressivity)
		eco.WithChange(prev.RegistrationTax.EcoMalus, tax.EcoMalus)
		total.WithChange(prev.RegistrationTax.Total, tax.Total)
		yearly.WithChange(prevAnnual, annual)
	}

	return components.MetricGrid([]*components.MetricCard{base, after, eco, total, yearly}, 2)
}

// renderNotice renders the region notice in place of the figures
func renderNotice(r domain.TaxReport) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(r.Region.DisplayName() + ": tax not computed"))
	if r.Notice != nil {
		b.WriteString("\n\n" + r.Notice.Reason)
		if r.Notice.ReferenceURL != "" {
			b.WriteString("\n\nSee " + r.Notice.ReferenceURL)
		}
		flags := []string{}
		if r.Notice.IsHybrid {
			flags = append(flags, "hybrid")
		}
		if r.Notice.IsElectric {
			flags = append(flags, "electric")
		}
		if r.Notice.HasWLTP {
			flags = append(flags, "WLTP value known")
		}
		if len(flags) > 0 {
			b.WriteString("\n\nRelevant to the regional formula: " + strings.Join(flags, ", "))
		}
	}
	return tuistyles.NoticeStyle.Width(50).Render(b.String())
}

// renderCalculatorHelp renders keyboard shortcuts
func renderCalculatorHelp() string {
	return lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Render("↑/↓ field • ←/→ adjust • Shift+←/→ large step • r reset")
}
