package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

func supportedReport(total, annual int64) domain.TaxReport {
	a := decimal.NewFromInt(annual)
	return domain.TaxReport{
		Region:    domain.RegionWalloniaBrussels,
		Supported: true,
		RegistrationTax: &domain.RegistrationTax{
			Base:              decimal.NewFromInt(total),
			AfterDegressivity: decimal.NewFromInt(total),
			Total:             decimal.NewFromInt(total),
		},
		AnnualTax:      &a,
		Classification: domain.ClassificationLow,
	}
}

func flandersReport() domain.TaxReport {
	return domain.TaxReport{
		Region: domain.RegionFlanders,
		Notice: &domain.RegionNotice{Reason: "Flemish tax is not computed"},
	}
}

func TestNewMetricsCalculator_DefaultYears(t *testing.T) {
	if got := NewMetricsCalculator(0).Years; got != DefaultYears {
		t.Errorf("Expected default horizon %d, got %d", DefaultYears, got)
	}
	if got := NewMetricsCalculator(-3).Years; got != DefaultYears {
		t.Errorf("Expected default horizon for negative years, got %d", got)
	}
	if got := NewMetricsCalculator(10).Years; got != 10 {
		t.Errorf("Expected horizon 10, got %d", got)
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator(5)

	result := calc.CalculateMetrics("suv", supportedReport(2653, 500))

	if result.VehicleName != "suv" {
		t.Errorf("Expected vehicle name 'suv', got %s", result.VehicleName)
	}
	if !result.Supported {
		t.Error("Expected supported result")
	}
	if !result.RegistrationTotal.Equal(decimal.NewFromInt(2653)) {
		t.Errorf("Expected registration total 2653, got %s", result.RegistrationTotal)
	}
	if !result.AnnualTax.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected annual tax 500, got %s", result.AnnualTax)
	}
	// 2653 + 5 x 500
	if !result.HorizonCost.Equal(decimal.NewFromInt(5153)) {
		t.Errorf("Expected horizon cost 5153, got %s", result.HorizonCost)
	}
}

func TestMetricsCalculator_CalculateMetrics_Unsupported(t *testing.T) {
	result := NewMetricsCalculator(5).CalculateMetrics("antwerp", flandersReport())

	if result.Supported {
		t.Error("Expected unsupported result")
	}
	if !result.HorizonCost.IsZero() || !result.RegistrationTotal.IsZero() {
		t.Error("Expected zero amounts for an unsupported region")
	}
	if result.Notice != "Flemish tax is not computed" {
		t.Errorf("Expected notice to be carried, got %q", result.Notice)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator(5)
	base := calc.CalculateMetrics("base", supportedReport(2000, 400))   // 4000
	other := calc.CalculateMetrics("other", supportedReport(1000, 300)) // 2500

	result := calc.CalculateComparison(other, base)

	if !result.RegistrationDiffFromBase.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("Expected registration diff -1000, got %s", result.RegistrationDiffFromBase)
	}
	if !result.AnnualDiffFromBase.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("Expected annual diff -100, got %s", result.AnnualDiffFromBase)
	}
	if !result.HorizonDiffFromBase.Equal(decimal.NewFromInt(-1500)) {
		t.Errorf("Expected horizon diff -1500, got %s", result.HorizonDiffFromBase)
	}
	if result.HorizonPctFromBase.StringFixed(1) != "-37.5" {
		t.Errorf("Expected -37.5%%, got %s", result.HorizonPctFromBase.StringFixed(1))
	}
}

func TestMetricsCalculator_CalculateComparison_Unsupported(t *testing.T) {
	calc := NewMetricsCalculator(5)
	base := calc.CalculateMetrics("base", supportedReport(2000, 400))
	flemish := calc.CalculateMetrics("antwerp", flandersReport())

	result := calc.CalculateComparison(flemish, base)
	if !result.HorizonDiffFromBase.IsZero() {
		t.Errorf("Expected no delta for an unsupported vehicle, got %s", result.HorizonDiffFromBase)
	}

	result = calc.CalculateComparison(base, flemish)
	if !result.HorizonDiffFromBase.IsZero() {
		t.Errorf("Expected no delta against an unsupported base, got %s", result.HorizonDiffFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	calc := NewMetricsCalculator(5)
	base := calc.CalculateMetrics("suv", supportedReport(2653, 500))         // 5153
	cheapOnce := calc.CalculateMetrics("classic", supportedReport(61, 1400)) // 7061
	cheapYearly := calc.CalculateMetrics("hatch", supportedReport(272, 300)) // 1772

	compSet := &ComparisonSet{
		BaseVehicleName: "suv",
		Years:           5,
		BaseResult:      &base,
		AlternativeResults: []ComparisonResult{
			calc.CalculateComparison(cheapOnce, base),
			calc.CalculateComparison(cheapYearly, base),
			calc.CalculateMetrics("antwerp", flandersReport()),
		},
	}

	recs := GenerateRecommendations(compSet)
	expected := []string{
		"Lowest Registration Tax: classic saves €2592.00 compared to suv",
		"Lowest Annual Tax: hatch saves €200.00 compared to suv",
		"Lowest 5-Year Cost: hatch saves €3381.00 compared to suv",
		"Not Ranked: antwerp (tax not computed for its region)",
	}

	if len(recs) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(expected), len(recs), recs)
	}
	for i := range expected {
		if recs[i] != expected[i] {
			t.Errorf("Recommendation %d: expected %q, got %q", i, expected[i], recs[i])
		}
	}
}

func TestGenerateRecommendations_BaseIsCheapest(t *testing.T) {
	calc := NewMetricsCalculator(5)
	base := calc.CalculateMetrics("hatch", supportedReport(272, 300))
	alt := calc.CalculateMetrics("suv", supportedReport(2653, 500))

	compSet := &ComparisonSet{
		BaseVehicleName:    "hatch",
		Years:              5,
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{calc.CalculateComparison(alt, base)},
	}

	if recs := GenerateRecommendations(compSet); len(recs) != 0 {
		t.Errorf("Expected no recommendations when the base is cheapest, got %v", recs)
	}
}

func TestGenerateRecommendations_UnsupportedBase(t *testing.T) {
	calc := NewMetricsCalculator(3)
	base := calc.CalculateMetrics("antwerp", flandersReport())
	alt := calc.CalculateMetrics("hatch", supportedReport(272, 300))

	compSet := &ComparisonSet{
		BaseVehicleName:    "antwerp",
		Years:              3,
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{calc.CalculateComparison(alt, base)},
	}

	recs := GenerateRecommendations(compSet)
	if len(recs) != 4 {
		t.Fatalf("Expected 4 recommendations, got %v", recs)
	}
	if recs[2] != "Lowest 3-Year Cost: hatch at €1172.00" {
		t.Errorf("Unexpected horizon recommendation %q", recs[2])
	}
	if !strings.HasPrefix(recs[3], "Not Ranked: antwerp") {
		t.Errorf("Expected the base to be listed as not ranked, got %q", recs[3])
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	base := NewMetricsCalculator(5).CalculateMetrics("suv", supportedReport(2653, 500))
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &base, Years: 5})
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}

func TestComparisonSet_All(t *testing.T) {
	base := ComparisonResult{VehicleName: "a"}
	compSet := &ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{{VehicleName: "b"}, {VehicleName: "c"}},
	}

	all := compSet.All()
	if len(all) != 3 || all[0].VehicleName != "a" || all[2].VehicleName != "c" {
		t.Errorf("Unexpected ordering: %+v", all)
	}
}
