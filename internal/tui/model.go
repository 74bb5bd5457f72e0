package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/config"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Input data
	vehiclesPath string
	batch        *domain.VehicleBatch

	engine *calculation.TaxEngine

	calculatorModel *scenes.CalculatorModel
	vehiclesModel   *scenes.VehiclesModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. vehiclesPath may be empty, in
// which case the calculator starts from default values.
func NewModel(vehiclesPath string, engine *calculation.TaxEngine) Model {
	if engine == nil {
		engine = calculation.NewTaxEngine()
	}
	return Model{
		currentScene:    SceneCalculator,
		vehiclesPath:    vehiclesPath,
		engine:          engine,
		calculatorModel: scenes.NewCalculatorModel(engine),
		vehiclesModel:   scenes.NewVehiclesModel(),
		loading:         vehiclesPath != "",
		loadingMessage:  "Loading vehicles...",
		width:           100,
		height:          30,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.vehiclesPath == "" {
		return nil
	}
	return loadVehiclesCmd(m.vehiclesPath)
}

// loadVehiclesCmd returns a command that loads and validates a vehicles file
func loadVehiclesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		batch, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return VehiclesLoadedMsg{Batch: batch}
	}
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene { return m.currentScene }

// Calculator returns the calculator scene model
func (m Model) Calculator() *scenes.CalculatorModel { return m.calculatorModel }

// Err returns the error being displayed, if any
func (m Model) Err() error { return m.err }
