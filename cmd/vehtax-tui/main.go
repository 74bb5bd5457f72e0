package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/tui"
)

func main() {
	// Optional vehicles file; its first entry seeds the calculator
	vehiclesPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: vehtax-tui [vehicles-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		vehiclesPath = os.Args[1]
		if _, err := os.Stat(vehiclesPath); os.IsNotExist(err) {
			fmt.Printf("Error: vehicles file not found: %s\n", vehiclesPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(vehiclesPath, calculation.NewTaxEngine())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
