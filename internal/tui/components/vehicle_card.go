package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/tui/tuistyles"
)

// VehicleCard displays a compact overview of a loaded vehicle
type VehicleCard struct {
	Name       string
	Region     domain.Region
	Highlights []string
	IsSelected bool
	Width      int
}

// NewVehicleCard builds a card from a validated vehicle entry
func NewVehicleCard(entry domain.VehicleEntry) *VehicleCard {
	p := entry.Profile
	card := &VehicleCard{
		Name:   entry.Name,
		Region: p.Region(),
		Width:  40,
	}
	card.AddHighlight(fmt.Sprintf("%s kW • %d CV", p.PowerKW().StringFixed(0), p.FiscalHorsepower()))
	card.AddHighlight(fmt.Sprintf("%s g/km CO2", p.CO2NEDC().StringFixed(0)))
	if date, ok := p.RegistrationDate(); ok {
		card.AddHighlight("first registered " + date.Format("2006-01-02"))
	} else {
		card.AddHighlight(fmt.Sprintf("first registered %d", p.RegistrationYear()))
	}
	return card
}

// AddHighlight adds a key attribute line
func (v *VehicleCard) AddHighlight(highlight string) *VehicleCard {
	v.Highlights = append(v.Highlights, highlight)
	return v
}

// SetSelected marks the card as selected
func (v *VehicleCard) SetSelected(selected bool) *VehicleCard {
	v.IsSelected = selected
	return v
}

// WithWidth sets the card width
func (v *VehicleCard) WithWidth(width int) *VehicleCard {
	v.Width = width
	return v
}

// Render returns the styled vehicle card
func (v *VehicleCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(v.Name))
	content.WriteString("\n")

	regionStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)
	content.WriteString(regionStyle.Render("→ " + v.Region.DisplayName()))
	content.WriteString("\n")

	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, h := range v.Highlights {
		content.WriteString(highlightStyle.Render("• " + h))
		content.WriteString("\n")
	}

	border := tuistyles.ColorBorder
	if v.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(v.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (v *VehicleCard) RenderCompact() string {
	name := lipgloss.NewStyle().Bold(true).Render(v.Name)
	region := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("(" + v.Region.DisplayName() + ")")
	return name + " " + region
}

// VehicleListCompact renders a compact list for the selection menu
func VehicleListCompact(cards []*VehicleCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No vehicles loaded")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}

	return strings.Join(rendered, "\n")
}
