package tui

import (
	"github.com/rgehrsitz/vehtax/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneVehicles
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneVehicles:
		return "Vehicles"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Messages shared with the scenes
type (
	VehiclesLoadedMsg  = tuimsg.VehiclesLoadedMsg
	VehicleSelectedMsg = tuimsg.VehicleSelectedMsg
	ErrorMsg           = tuimsg.ErrorMsg
)
