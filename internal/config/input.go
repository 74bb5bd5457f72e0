package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of vehicle input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a vehicles file (YAML or JSON) and builds validated profiles
func (ip *InputParser) LoadFromFile(filename string) (*domain.VehicleBatch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	batch, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	batch.Source = filename
	return batch, nil
}

// Parse decodes and validates vehicles file content
func (ip *InputParser) Parse(data []byte) (*domain.VehicleBatch, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateShape(doc); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	var file domain.VehiclesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	batch, err := ip.BuildBatch(&file)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return batch, nil
}

// BuildBatch converts file entries into profiles. The file-level region is
// the default for entries that do not name one.
func (ip *InputParser) BuildBatch(file *domain.VehiclesFile) (*domain.VehicleBatch, error) {
	defaultRegion := domain.RegionWalloniaBrussels
	if file.Region != "" {
		r, err := domain.ParseRegion(file.Region)
		if err != nil {
			return nil, err
		}
		defaultRegion = r
	}

	if len(file.Vehicles) == 0 {
		return nil, fmt.Errorf("no vehicles provided")
	}

	seen := make(map[string]bool, len(file.Vehicles))
	batch := &domain.VehicleBatch{Vehicles: make([]domain.VehicleEntry, 0, len(file.Vehicles))}
	for i, v := range file.Vehicles {
		if seen[v.Name] {
			return nil, fmt.Errorf("vehicle %d (%s): duplicate name", i, v.Name)
		}
		seen[v.Name] = true

		profile, err := ip.BuildProfile(v, defaultRegion)
		if err != nil {
			return nil, fmt.Errorf("vehicle %d (%s) validation failed: %w", i, v.Name, err)
		}
		batch.Vehicles = append(batch.Vehicles, domain.VehicleEntry{Name: v.Name, Profile: profile})
	}
	return batch, nil
}

// BuildProfile converts one entry, doing the unit conversions the engine expects
func (ip *InputParser) BuildProfile(v domain.VehicleInput, defaultRegion domain.Region) (domain.VehicleTaxProfile, error) {
	in := domain.ProfileInput{
		FiscalHorsepower: domain.FiscalHorsepower(v.FiscalHorsepower),
		CO2NEDC:          decimal.NewFromFloat(v.CO2),
		RegistrationYear: v.Year,
		Region:           defaultRegion,
		IsHybrid:         v.IsHybrid,
		IsElectric:       v.IsElectric,
	}

	switch {
	case v.PowerKW != nil && v.PowerHP != nil:
		return domain.VehicleTaxProfile{}, &domain.InvalidProfileError{Field: "power", Reason: "set either power_kw or power_hp, not both"}
	case v.PowerKW != nil:
		in.PowerKW = decimal.NewFromFloat(*v.PowerKW)
	case v.PowerHP != nil:
		in.PowerKW = domain.HorsepowerToKW(decimal.NewFromFloat(*v.PowerHP))
	default:
		return domain.VehicleTaxProfile{}, &domain.InvalidProfileError{Field: "power", Reason: "requires power_kw or power_hp"}
	}

	if v.CO2WLTP != nil {
		wltp := decimal.NewFromFloat(*v.CO2WLTP)
		in.CO2WLTP = &wltp
	}

	if v.FirstRegistrationDate != "" {
		date, err := dateutil.ParseDate(v.FirstRegistrationDate)
		if err != nil {
			return domain.VehicleTaxProfile{}, &domain.InvalidProfileError{Field: "first_registration_date", Reason: fmt.Sprintf("%q is not a date (use YYYY-MM-DD)", v.FirstRegistrationDate)}
		}
		in.RegistrationDate = &date
	}

	if v.Region != "" {
		r, err := domain.ParseRegion(v.Region)
		if err != nil {
			return domain.VehicleTaxProfile{}, &domain.InvalidProfileError{Field: "region", Reason: err.Error()}
		}
		in.Region = r
	}

	return domain.NewVehicleTaxProfile(in)
}

// CreateExampleFile returns a sample vehicles file covering both regions
func CreateExampleFile() *domain.VehiclesFile {
	num := func(v float64) *float64 { return &v }
	return &domain.VehiclesFile{
		Region: string(domain.RegionWalloniaBrussels),
		Vehicles: []domain.VehicleInput{
			{
				Name:                  "family-suv",
				PowerKW:               num(150),
				FiscalHorsepower:      11,
				CO2:                   160,
				CO2WLTP:               num(182),
				FirstRegistrationDate: "2025-01-15",
			},
			{
				Name:             "used-hatchback",
				PowerHP:          num(122),
				FiscalHorsepower: 8,
				CO2:              120,
				Year:             2019,
			},
			{
				Name:             "classic-roadster",
				PowerKW:          num(80),
				FiscalHorsepower: 17,
				CO2:              280,
				Year:             1990,
			},
			{
				Name:             "antwerp-hybrid",
				PowerKW:          num(135),
				FiscalHorsepower: 10,
				CO2:              95,
				CO2WLTP:          num(110),
				Year:             2023,
				Region:           string(domain.RegionFlanders),
				IsHybrid:         true,
			},
		},
	}
}

// SaveToFile writes a vehicles file as YAML
func (ip *InputParser) SaveToFile(file *domain.VehiclesFile, filename string) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
