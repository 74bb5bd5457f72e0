package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneVehicles:
		content = m.vehiclesModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("vehtax - Belgian vehicle tax calculator")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneCalculator {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.calculatorModel.Name())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("c", "calculator"),
		formatShortcut("v", "vehicles"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.batch != nil {
		loaded := SubtitleStyle.Render(fmt.Sprintf("%d vehicle(s) loaded", len(m.batch.Vehicles)))
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(loaded)-4))
		statusText = statusText + spacer + loaded
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	return BorderStyle.Render(fmt.Sprintf("⠋ %s", m.loadingMessage))
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
vehtax - Belgian vehicle tax calculator

KEYBOARD SHORTCUTS:
  c        Calculator
  v        Loaded vehicles
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

CALCULATOR:
  ↑/↓        Move between fields
  ←/→        Adjust the focused field
  Shift+←/→  Adjust by a large step
  r          Reset to the loaded vehicle

Amounts follow the Wallonia / Brussels schedules without indexation.
Flemish taxes are not computed; the calculator shows where to find them.
`
	return BorderStyle.Render(helpText)
}
