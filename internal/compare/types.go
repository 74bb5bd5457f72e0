package compare

import (
	"fmt"

	"github.com/rgehrsitz/vehtax/internal/calculation"
	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultYears is the ownership horizon used when none is given
const DefaultYears = 5

// ComparisonResult represents a single vehicle with its comparison metrics.
// Amounts are zero and Supported is false when the region is not computed.
type ComparisonResult struct {
	VehicleName    string                `json:"vehicleName"`
	Region         domain.Region         `json:"region"`
	Supported      bool                  `json:"supported"`
	AgeYears       int                   `json:"ageYears"`
	Classification domain.Classification `json:"classification,omitempty"`
	Notice         string                `json:"notice,omitempty"`

	// Key Metrics
	RegistrationTotal decimal.Decimal `json:"registrationTotal"`
	AnnualTax         decimal.Decimal `json:"annualTax"`
	HorizonCost       decimal.Decimal `json:"horizonCost"` // one-time + annual x years

	// Comparison to Base (only set when both vehicles are supported)
	RegistrationDiffFromBase decimal.Decimal `json:"registrationDiffFromBase"`
	AnnualDiffFromBase       decimal.Decimal `json:"annualDiffFromBase"`
	HorizonDiffFromBase      decimal.Decimal `json:"horizonDiffFromBase"`
	HorizonPctFromBase       decimal.Decimal `json:"horizonPctFromBase"`
}

// ComparisonSet represents a base vehicle compared to its alternatives
type ComparisonSet struct {
	BaseVehicleName    string             `json:"baseVehicleName"`
	Years              int                `json:"years"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	SourcePath         string             `json:"sourcePath"`
}

// All returns the base result followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts comparison metrics from tax reports
type MetricsCalculator struct {
	Years int
}

// NewMetricsCalculator creates a metrics calculator for an ownership horizon in years
func NewMetricsCalculator(years int) *MetricsCalculator {
	if years <= 0 {
		years = DefaultYears
	}
	return &MetricsCalculator{Years: years}
}

// CalculateMetrics computes the comparison metrics for one vehicle
func (mc *MetricsCalculator) CalculateMetrics(name string, report domain.TaxReport) ComparisonResult {
	result := ComparisonResult{
		VehicleName:    name,
		Region:         report.Region,
		Supported:      report.Supported,
		AgeYears:       report.AgeYears,
		Classification: report.Classification,
	}

	if report.Notice != nil {
		result.Notice = report.Notice.Reason
	}

	horizon, ok := calculation.TotalCostOfOwnership(report, mc.Years)
	if !ok {
		result.Supported = false
		return result
	}
	result.RegistrationTotal, _ = report.OneTimeTotal()
	result.AnnualTax, _ = report.Annual()
	result.HorizonCost = horizon
	return result
}

// CalculateComparison computes the deltas between a vehicle and the base
func (mc *MetricsCalculator) CalculateComparison(vehicle, base ComparisonResult) ComparisonResult {
	if !vehicle.Supported || !base.Supported {
		return vehicle
	}

	vehicle.RegistrationDiffFromBase = vehicle.RegistrationTotal.Sub(base.RegistrationTotal)
	vehicle.AnnualDiffFromBase = vehicle.AnnualTax.Sub(base.AnnualTax)
	vehicle.HorizonDiffFromBase = vehicle.HorizonCost.Sub(base.HorizonCost)

	if !base.HorizonCost.IsZero() {
		vehicle.HorizonPctFromBase = vehicle.HorizonDiffFromBase.
			Div(base.HorizonCost).
			Mul(decimal.NewFromInt(100))
	}

	return vehicle
}

// GenerateRecommendations names the cheapest vehicle for the one-time tax,
// the annual tax and the whole horizon. Vehicles without computed figures
// are listed separately and never ranked.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	ranked := []ComparisonResult{}
	unranked := []string{}
	for _, r := range compSet.All() {
		if r.Supported {
			ranked = append(ranked, r)
		} else {
			unranked = append(unranked, r.VehicleName)
		}
	}

	metrics := []struct {
		label string
		value func(ComparisonResult) decimal.Decimal
	}{
		{"Lowest Registration Tax", func(r ComparisonResult) decimal.Decimal { return r.RegistrationTotal }},
		{"Lowest Annual Tax", func(r ComparisonResult) decimal.Decimal { return r.AnnualTax }},
		{fmt.Sprintf("Lowest %d-Year Cost", compSet.Years), func(r ComparisonResult) decimal.Decimal { return r.HorizonCost }},
	}

	if len(ranked) > 0 {
		for _, m := range metrics {
			best := ranked[0]
			for _, r := range ranked[1:] {
				if m.value(r).LessThan(m.value(best)) {
					best = r
				}
			}

			if best.VehicleName == compSet.BaseResult.VehicleName {
				continue
			}

			if compSet.BaseResult.Supported {
				savings := m.value(*compSet.BaseResult).Sub(m.value(best))
				if !savings.IsPositive() {
					continue
				}
				recommendations = append(recommendations,
					m.label+": "+best.VehicleName+" saves €"+savings.StringFixed(2)+
						" compared to "+compSet.BaseResult.VehicleName)
			} else {
				recommendations = append(recommendations,
					m.label+": "+best.VehicleName+" at €"+m.value(best).StringFixed(2))
			}
		}
	}

	for _, name := range unranked {
		recommendations = append(recommendations,
			"Not Ranked: "+name+" (tax not computed for its region)")
	}

	return recommendations
}
