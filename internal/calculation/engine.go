package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxEngine orchestrates the regional tax calculations. It holds only
// read-only tables and may be shared between goroutines.
type TaxEngine struct {
	Schedule    *domain.TaxSchedule
	AgeResolver *AgeResolver
	Policies    []RegionPolicy
	Logger      Logger
}

// NewTaxEngine creates an engine on the built-in schedule
func NewTaxEngine() *TaxEngine {
	return newTaxEngine(DefaultSchedule())
}

// NewTaxEngineWithSchedule creates an engine on a custom schedule after validating it
func NewTaxEngineWithSchedule(schedule *domain.TaxSchedule) (*TaxEngine, error) {
	if schedule == nil {
		return nil, fmt.Errorf("tax schedule is required")
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax schedule %q: %w", schedule.Name, err)
	}
	return newTaxEngine(schedule), nil
}

func newTaxEngine(schedule *domain.TaxSchedule) *TaxEngine {
	return &TaxEngine{
		Schedule:    schedule,
		AgeResolver: NewAgeResolver(schedule.CollectorAge),
		Policies: []RegionPolicy{
			NewWalloniaBrusselsPolicy(schedule),
			NewFlandersPolicy(schedule),
		},
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine
func (te *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		te.Logger = NopLogger{}
		return
	}
	te.Logger = l
}

// Calculate evaluates a profile at the engine's current time
func (te *TaxEngine) Calculate(profile domain.VehicleTaxProfile) domain.TaxReport {
	return te.CalculateAt(profile, nowFunc())
}

// CalculateAt evaluates a profile as of the given instant
func (te *TaxEngine) CalculateAt(profile domain.VehicleTaxProfile, at time.Time) domain.TaxReport {
	years, collector := te.AgeResolver.ResolveAge(profile, at)
	age := AgeAssessment{Years: years, CollectorExempt: collector}

	for _, policy := range te.Policies {
		if policy.Applies(profile.Region()) {
			report := policy.Assess(profile, age)
			te.Logger.Debugf("region=%s age=%d collector=%t supported=%t", profile.Region(), years, collector, report.Supported)
			return report
		}
	}

	te.Logger.Warnf("no tax policy for region %q", profile.Region())
	return unsupportedReport(profile, age, domain.UnsupportedRegionNotice{
		Reason: fmt.Sprintf("no tax rules are available for region %q", profile.Region()),
	})
}

// CalculateBatch evaluates every vehicle of a batch, stopping early if ctx is done
func (te *TaxEngine) CalculateBatch(ctx context.Context, batch *domain.VehicleBatch) (*domain.BatchResult, error) {
	if batch == nil {
		return nil, fmt.Errorf("vehicle batch is required")
	}
	at := nowFunc()
	result := &domain.BatchResult{
		Schedule:    te.Schedule.Name,
		EvaluatedAt: at,
		Vehicles:    make([]domain.VehicleResult, 0, len(batch.Vehicles)),
	}

	te.Logger.Infof("evaluating %d vehicle(s) with schedule %s", len(batch.Vehicles), te.Schedule.Name)
	for _, v := range batch.Vehicles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch evaluation cancelled: %w", err)
		}
		result.Vehicles = append(result.Vehicles, domain.VehicleResult{
			Name:    v.Name,
			Profile: v.Profile,
			Report:  te.CalculateAt(v.Profile, at),
		})
	}
	return result, nil
}

// TotalCostOfOwnership returns the one-time tax plus years of annual tax.
// ok is false for a report without computed figures.
func TotalCostOfOwnership(report domain.TaxReport, years int) (total decimal.Decimal, ok bool) {
	oneTime, ok := report.OneTimeTotal()
	if !ok {
		return decimal.Zero, false
	}
	annual, ok := report.Annual()
	if !ok {
		return decimal.Zero, false
	}
	if years < 0 {
		years = 0
	}
	return oneTime.Add(annual.Mul(decimal.NewFromInt(int64(years)))), true
}
