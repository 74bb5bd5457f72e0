// Package tuimsg holds the messages exchanged between the TUI root model and
// its scenes. It exists so scenes can emit messages without importing tui.
package tuimsg

import (
	"github.com/rgehrsitz/vehtax/internal/domain"
)

// VehiclesLoadedMsg signals a vehicles file has been loaded and validated
type VehiclesLoadedMsg struct {
	Batch *domain.VehicleBatch
}

// VehicleSelectedMsg signals a loaded vehicle should seed the calculator
type VehicleSelectedMsg struct {
	Entry domain.VehicleEntry
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
