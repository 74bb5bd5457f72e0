package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is matched by every *InvalidProfileError via errors.Is
var ErrInvalidProfile = errors.New("invalid vehicle tax profile")

// InvalidProfileError reports a VehicleTaxProfile field that is missing or out of domain.
// It is returned only at construction; calculators never see an invalid profile.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid vehicle profile: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidProfile) match any field error
func (e *InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// ScheduleError reports a malformed tax table in a TaxSchedule
type ScheduleError struct {
	Table  string
	Index  int
	Reason string
}

func (e *ScheduleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("schedule %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("schedule %s[%d]: %s", e.Table, e.Index, e.Reason)
}
