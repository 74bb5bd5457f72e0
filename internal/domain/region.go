package domain

import (
	"fmt"
	"strings"
)

// Region identifies the Belgian taxing authority that applies to a vehicle
type Region string

const (
	// RegionWalloniaBrussels covers Wallonia and the Brussels-Capital Region,
	// which share the TMC and circulation tax schedules
	RegionWalloniaBrussels Region = "wallonia_brussels"
	// RegionFlanders uses the "green formula", which this engine does not compute
	RegionFlanders Region = "flanders"
)

// Regions returns every region the engine knows about, in display order
func Regions() []Region {
	return []Region{RegionWalloniaBrussels, RegionFlanders}
}

// IsValid reports whether r is a known region
func (r Region) IsValid() bool {
	switch r {
	case RegionWalloniaBrussels, RegionFlanders:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable region name
func (r Region) DisplayName() string {
	switch r {
	case RegionWalloniaBrussels:
		return "Wallonia / Brussels"
	case RegionFlanders:
		return "Flanders"
	default:
		return string(r)
	}
}

// ParseRegion accepts the canonical identifiers plus a few common spellings
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wallonia_brussels", "wallonia-brussels", "wallonia", "brussels", "wallonie", "bruxelles":
		return RegionWalloniaBrussels, nil
	case "flanders", "vlaanderen", "flandre":
		return RegionFlanders, nil
	default:
		return "", fmt.Errorf("unknown region %q (expected %s or %s)", s, RegionWalloniaBrussels, RegionFlanders)
	}
}
