package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		m.vehiclesModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case VehiclesLoadedMsg:
		m.loading = false
		m.batch = msg.Batch
		m.vehiclesModel.SetBatch(msg.Batch)
		// the first vehicle seeds the form
		if msg.Batch != nil && len(msg.Batch.Vehicles) > 0 {
			m.calculatorModel.Seed(msg.Batch.Vehicles[0])
		}
		return m, nil

	case VehicleSelectedMsg:
		m.calculatorModel.Seed(msg.Entry)
		m.previousScene = m.currentScene
		m.currentScene = SceneCalculator
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneCalculator {
			target := m.previousScene
			if target == m.currentScene {
				target = SceneCalculator
			}
			return m, navigate(target)
		}

	case "c":
		if m.currentScene != SceneCalculator {
			return m, navigate(SceneCalculator)
		}

	case "v":
		if m.currentScene != SceneVehicles {
			return m, navigate(SceneVehicles)
		}
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneCalculator:
		updated, cmd := m.calculatorModel.Update(msg)
		m.calculatorModel = updated
		return m, cmd
	case SceneVehicles:
		updated, cmd := m.vehiclesModel.Update(msg)
		m.vehiclesModel = updated
		return m, cmd
	}
	return m, nil
}
