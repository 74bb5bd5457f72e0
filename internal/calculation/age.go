package calculation

import (
	"time"

	"github.com/rgehrsitz/vehtax/internal/domain"
	"github.com/rgehrsitz/vehtax/pkg/dateutil"
)

// AgeResolver derives a vehicle's age in complete years
type AgeResolver struct {
	CollectorAge int
}

// NewAgeResolver creates an age resolver; vehicles at or above collectorAge are exempt from the eco-malus
func NewAgeResolver(collectorAge int) *AgeResolver {
	return &AgeResolver{CollectorAge: collectorAge}
}

// ResolveAge returns the age at the given instant and whether the vehicle is a collector vehicle.
// The registration date gives an exact age; without it the year difference is used.
// Ages never go below zero.
func (ar *AgeResolver) ResolveAge(profile domain.VehicleTaxProfile, at time.Time) (int, bool) {
	var age int
	if date, ok := profile.RegistrationDate(); ok {
		age = dateutil.Age(date, at)
	} else {
		age = dateutil.YearsSince(profile.RegistrationYear(), at)
	}
	if age < 0 {
		age = 0
	}
	return age, age >= ar.CollectorAge
}
