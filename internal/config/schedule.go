package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadScheduleFromFile loads an alternative tax schedule and validates its tables
func (ip *InputParser) LoadScheduleFromFile(filename string) (*domain.TaxSchedule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var schedule domain.TaxSchedule
	if err := yaml.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if schedule.Name == "" {
		schedule.Name = filename
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}
	return &schedule, nil
}

// MarshalSchedule renders a schedule as yaml or json
func MarshalSchedule(schedule *domain.TaxSchedule, format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(schedule)
	case "json":
		return json.MarshalIndent(schedule, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported schedule format %q (use yaml or json)", format)
	}
}
