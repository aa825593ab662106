package domain

import "time"

// BaseShiftHours is the working time of a full-time shift. A staff member's
// planning budget scales linearly with their part-time fraction.
const BaseShiftHours = 7.0

const (
	newIntakeDuration = 120 * time.Minute
	homeVisitDuration = 35 * time.Minute
)

// VisitDuration returns the expected on-site service duration for a visit
// classification. Unknown classifications and phone contacts take zero.
func VisitDuration(t VisitType) time.Duration {
	switch t {
	case VisitNewIntake:
		return newIntakeDuration
	case VisitHomeVisit:
		return homeVisitDuration
	default:
		return 0
	}
}

// WorkBudgetHours returns the maximum planned working hours for a part-time
// fraction. The fraction is clamped to [0,100] before use.
func WorkBudgetHours(fraction int) float64 {
	return float64(ClampFraction(fraction)) / 100.0 * BaseShiftHours
}

// WorkBudget returns the same budget as a duration, for the optimizer's
// per-vehicle route duration limit.
func WorkBudget(fraction int) time.Duration {
	return time.Duration(WorkBudgetHours(fraction) * float64(time.Hour))
}
