package services

import (
	"errors"
	"fmt"
	"math"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// ErrReconcileDesync marks a solver response that references indices outside
// the snapshots the request was built from. This is a programming or data
// desync fault, not a user-recoverable condition.
var ErrReconcileDesync = errors.New("solver response does not match request snapshot")

// Reconcile maps a raw solver response back onto named staff and patients.
//
// Every member of activeStaff gets a route container, empty if the solver
// assigned them nothing or they were not eligible. Stops are appended in
// the order the solver returned visits; that order is the intended visiting
// sequence. Routable patients appearing in no container form the
// unassigned-regular set, in original roster order. The phone-contact set
// is never derived from the solver: it is always the full phone roster.
//
// Pure function: the schedule is returned as a value, nothing is stored.
func Reconcile(
	resp ports.OptimizationResponse,
	eligibleStaff []*domain.StaffMember,
	activeStaff []*domain.StaffMember,
	routablePatients []*domain.Patient,
	phonePatients []*domain.Patient,
) (*domain.Schedule, error) {
	schedule := &domain.Schedule{
		Routes:            make([]domain.RouteContainer, 0, len(activeStaff)),
		UnassignedRegular: []domain.Stop{},
		UnassignedPhone:   []domain.Stop{},
	}

	byName := make(map[string]*domain.RouteContainer, len(activeStaff))
	for _, s := range activeStaff {
		schedule.Routes = append(schedule.Routes, domain.RouteContainer{
			StaffName:     s.Name,
			Role:          s.Role,
			DurationHours: 0,
			MaxHours:      round2(domain.WorkBudgetHours(s.PartTimeFraction)),
			Start:         s.Location,
			Stops:         []domain.Stop{},
		})
	}
	for i := range schedule.Routes {
		byName[schedule.Routes[i].StaffName] = &schedule.Routes[i]
	}

	for i, route := range resp.Routes {
		if route.VehicleIndex < 0 || route.VehicleIndex >= len(eligibleStaff) {
			return nil, fmt.Errorf("reconcile: route %d: vehicle index %d: %w",
				i, route.VehicleIndex, ErrReconcileDesync)
		}
		staff := eligibleStaff[route.VehicleIndex]

		container, ok := byName[staff.Name]
		if !ok {
			return nil, fmt.Errorf("reconcile: route %d: staff %q not in active roster: %w",
				i, staff.Name, ErrReconcileDesync)
		}

		// Absent timestamps degrade to zero duration rather than failing.
		if route.StartTime != nil && route.EndTime != nil {
			container.DurationHours = round2(route.EndTime.Sub(*route.StartTime).Hours())
		}

		for _, visit := range route.Visits {
			if visit.ShipmentIndex < 0 {
				continue // sentinel: not a real visit
			}
			if visit.ShipmentIndex >= len(routablePatients) {
				return nil, fmt.Errorf("reconcile: route %d: shipment index %d: %w",
					i, visit.ShipmentIndex, ErrReconcileDesync)
			}
			container.Stops = append(container.Stops, domain.NewStop(routablePatients[visit.ShipmentIndex]))
		}
	}

	assigned := make(map[string]struct{})
	for _, r := range schedule.Routes {
		for _, stop := range r.Stops {
			assigned[stop.Patient] = struct{}{}
		}
	}
	// Matching is by name: two patients sharing a name are indistinguishable
	// here, mirroring the roster's de facto key.
	for _, p := range routablePatients {
		if _, ok := assigned[p.Name]; !ok {
			schedule.UnassignedRegular = append(schedule.UnassignedRegular, domain.NewStop(p))
		}
	}

	for _, p := range phonePatients {
		schedule.UnassignedPhone = append(schedule.UnassignedPhone, domain.NewStop(p))
	}

	return schedule, nil
}

// Reconcile resolves the solver response against this run's own snapshots.
func (r *OptimizationRun) Reconcile(resp ports.OptimizationResponse) (*domain.Schedule, error) {
	return Reconcile(resp, r.EligibleStaff, r.ActiveStaff, r.RoutablePatients, r.PhonePatients)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
