package domain

// VehiclesFile is the on-disk vehicles document (YAML or JSON). Field names
// follow the listing form fields that usually feed the engine.
type VehiclesFile struct {
	Region   string         `yaml:"region,omitempty" json:"region,omitempty"`
	Vehicles []VehicleInput `yaml:"vehicles" json:"vehicles"`
}

// VehicleInput is one vehicle as entered by a user. Exactly one of PowerKW
// and PowerHP is expected; PowerHP is converted to kW.
type VehicleInput struct {
	Name                  string   `yaml:"name" json:"name"`
	PowerKW               *float64 `yaml:"power_kw,omitempty" json:"power_kw,omitempty"`
	PowerHP               *float64 `yaml:"power_hp,omitempty" json:"power_hp,omitempty"`
	FiscalHorsepower      int      `yaml:"fiscal_horsepower" json:"fiscal_horsepower"`
	CO2                   float64  `yaml:"co2" json:"co2"`
	CO2WLTP               *float64 `yaml:"co2_wltp,omitempty" json:"co2_wltp,omitempty"`
	FirstRegistrationDate string   `yaml:"first_registration_date,omitempty" json:"first_registration_date,omitempty"`
	Year                  int      `yaml:"year,omitempty" json:"year,omitempty"`
	Region                string   `yaml:"region,omitempty" json:"region,omitempty"`
	IsHybrid              bool     `yaml:"is_hybrid,omitempty" json:"is_hybrid,omitempty"`
	IsElectric            bool     `yaml:"is_electric,omitempty" json:"is_electric,omitempty"`
}

// VehicleEntry is a named, validated profile
type VehicleEntry struct {
	Name    string
	Profile VehicleTaxProfile
}

// VehicleBatch is a validated vehicles file ready for the engine
type VehicleBatch struct {
	Source   string
	Vehicles []VehicleEntry
}

// Find returns the entry with the given name
func (b *VehicleBatch) Find(name string) (VehicleEntry, bool) {
	for _, v := range b.Vehicles {
		if v.Name == name {
			return v, true
		}
	}
	return VehicleEntry{}, false
}
