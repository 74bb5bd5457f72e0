package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/tui/components"
	"github.com/rgehrsitz/vehtax/internal/tui/tuimsg"
	"github.com/rgehrsitz/vehtax/internal/tui/tuistyles"
)

// VehiclesModel represents the loaded-vehicles browsing scene
type VehiclesModel struct {
	entries       []domain.VehicleEntry
	source        string
	selectedIndex int
	cards         []*components.VehicleCard
	width         int
	height        int
}

// NewVehiclesModel creates a new vehicles scene model
func NewVehiclesModel() *VehiclesModel {
	return &VehiclesModel{}
}

// SetBatch replaces the vehicle list
func (m *VehiclesModel) SetBatch(batch *domain.VehicleBatch) {
	m.entries = nil
	m.cards = nil
	m.source = ""
	if batch != nil {
		m.entries = batch.Vehicles
		m.source = batch.Source
	}

	for _, entry := range m.entries {
		m.cards = append(m.cards, components.NewVehicleCard(entry).WithWidth(50))
	}

	if m.selectedIndex >= len(m.entries) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *VehiclesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Len returns the number of loaded vehicles
func (m *VehiclesModel) Len() int { return len(m.entries) }

// SelectedVehicle returns the highlighted entry
func (m *VehiclesModel) SelectedVehicle() (domain.VehicleEntry, bool) {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.entries) {
		return m.entries[m.selectedIndex], true
	}
	return domain.VehicleEntry{}, false
}

// Update handles messages for the vehicles scene
func (m *VehiclesModel) Update(msg tea.Msg) (*VehiclesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *VehiclesModel) handleKeyPress(msg tea.KeyMsg) (*VehiclesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.entries)-1 {
			m.selectedIndex++
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.selectVehicle()

	case key.Matches(msg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.entries)-1)
		return m, nil
	}

	return m, nil
}

// selectVehicle returns a command that seeds the calculator with the selection
func (m *VehiclesModel) selectVehicle() tea.Cmd {
	entry, ok := m.SelectedVehicle()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return tuimsg.VehicleSelectedMsg{Entry: entry}
	}
}

// View renders the vehicles scene
func (m *VehiclesModel) View() string {
	if len(m.entries) == 0 {
		return `No vehicles loaded.

Start vehtax-tui with a vehicles file to browse its entries,
or press 'c' to use the calculator directly.`
	}

	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		Render(fmt.Sprintf("Vehicles (%d)", len(m.entries)))

	var header strings.Builder
	header.WriteString(title)
	if m.source != "" {
		header.WriteString("\n" + tuistyles.SubtitleStyle.Render(m.source))
	}

	list := listStyle.Render(header.String() + "\n\n" + components.VehicleListCompact(m.cards, m.selectedIndex))
	detail := m.cards[m.selectedIndex].Render()

	content := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail)
	return content + "\n\n" + lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Render("↑/k up • ↓/j down • Enter open in calculator • g top • G bottom")
}
