package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
)

// CompareEngine orchestrates vehicle comparison
type CompareEngine struct {
	TaxEngine *calculation.TaxEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(taxEngine *calculation.TaxEngine) *CompareEngine {
	return &CompareEngine{TaxEngine: taxEngine}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseVehicleName string   // Name of the base vehicle; the first vehicle when empty
	Alternatives    []string // Vehicles to compare; every other vehicle when empty
	Years           int      // Ownership horizon; DefaultYears when zero
}

// Compare evaluates the base vehicle and its alternatives from one batch
func (ce *CompareEngine) Compare(
	ctx context.Context,
	batch *domain.VehicleBatch,
	options CompareOptions,
) (*ComparisonSet, error) {
	if batch == nil || len(batch.Vehicles) == 0 {
		return nil, fmt.Errorf("no vehicles to compare")
	}

	baseName := options.BaseVehicleName
	if baseName == "" {
		baseName = batch.Vehicles[0].Name
	}
	base, ok := batch.Find(baseName)
	if !ok {
		return nil, fmt.Errorf("base vehicle %s not found in %s", baseName, sourceName(batch))
	}

	selected := &domain.VehicleBatch{Source: batch.Source, Vehicles: []domain.VehicleEntry{base}}
	if len(options.Alternatives) == 0 {
		for _, v := range batch.Vehicles {
			if v.Name != baseName {
				selected.Vehicles = append(selected.Vehicles, v)
			}
		}
	} else {
		for _, name := range options.Alternatives {
			if name == baseName {
				continue
			}
			v, ok := batch.Find(name)
			if !ok {
				return nil, fmt.Errorf("vehicle %s not found in %s", name, sourceName(batch))
			}
			selected.Vehicles = append(selected.Vehicles, v)
		}
	}

	results, err := ce.TaxEngine.CalculateBatch(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate vehicles: %w", err)
	}

	metrics := NewMetricsCalculator(options.Years)
	baseResult := metrics.CalculateMetrics(results.Vehicles[0].Name, results.Vehicles[0].Report)

	alternatives := make([]ComparisonResult, 0, len(results.Vehicles)-1)
	for _, v := range results.Vehicles[1:] {
		alt := metrics.CalculateMetrics(v.Name, v.Report)
		alternatives = append(alternatives, metrics.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseVehicleName:    baseName,
		Years:              metrics.Years,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		SourcePath:         batch.Source,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func sourceName(batch *domain.VehicleBatch) string {
	if batch.Source == "" {
		return "input"
	}
	return batch.Source
}
