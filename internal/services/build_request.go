package services

import (
	"fmt"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// Tunables for the solver request. A zero SoftCapRatio disables the soft
// duration cap; when set, each vehicle gets SoftCapRatio*budget as a soft
// limit with OverageCostMultiplier applied beyond it.
type RequestOptions struct {
	CostPerHour           float64
	SoftCapRatio          float64
	OverageCostMultiplier float64
}

func DefaultRequestOptions() RequestOptions {
	return RequestOptions{CostPerHour: 1}
}

// OptimizationRun pairs one solver request with the exact roster snapshots
// it was built from. The solver response references shipments and vehicles
// by positional index, so the ordered EligibleStaff and RoutablePatients
// sequences must outlive the request unmodified; keeping them together in
// a single-use value makes that coupling explicit.
type OptimizationRun struct {
	EligibleStaff    []*domain.StaffMember
	ActiveStaff      []*domain.StaffMember
	RoutablePatients []*domain.Patient
	PhonePatients    []*domain.Patient
	Request          ports.OptimizationRequest
}

// NewOptimizationRun partitions the rosters and builds the solver input
// model: one shipment per routable patient, one vehicle per eligible staff
// member, planning window from the selected weekday and week.
//
// Pure transform, no I/O. A routable patient or eligible staff member
// without resolved coordinates fails the build before any network call.
func NewOptimizationRun(
	staff []*domain.StaffMember,
	patients []*domain.Patient,
	weekday string,
	week *int,
	now time.Time,
	opts RequestOptions,
) (*OptimizationRun, error) {
	run := &OptimizationRun{}

	for _, s := range staff {
		if !s.IsActive {
			continue
		}
		run.ActiveStaff = append(run.ActiveStaff, s)
		if s.Role == domain.RoleNurse {
			run.EligibleStaff = append(run.EligibleStaff, s)
		}
	}

	for _, p := range patients {
		switch {
		case p.Routable():
			run.RoutablePatients = append(run.RoutablePatients, p)
		case p.VisitType == domain.VisitPhoneContact:
			run.PhonePatients = append(run.PhonePatients, p)
		}
	}

	shipments := make([]ports.Shipment, 0, len(run.RoutablePatients))
	for _, p := range run.RoutablePatients {
		if p.Location == nil {
			return nil, fmt.Errorf("build request: patient %q has no coordinates", p.Name)
		}
		shipments = append(shipments, ports.Shipment{
			PickupLocation:  *p.Location,
			ServiceDuration: domain.VisitDuration(p.VisitType),
		})
	}

	vehicles := make([]ports.VehicleModel, 0, len(run.EligibleStaff))
	for _, s := range run.EligibleStaff {
		if s.Location == nil {
			return nil, fmt.Errorf("build request: staff member %q has no coordinates", s.Name)
		}

		budget := domain.WorkBudget(s.PartTimeFraction)
		v := ports.VehicleModel{
			StartLocation: *s.Location,
			EndLocation:   *s.Location,
			CostPerHour:   opts.CostPerHour,
			MaxDuration:   budget,
		}
		if opts.SoftCapRatio > 0 {
			v.SoftMaxDuration = time.Duration(opts.SoftCapRatio * float64(budget))
			v.OverageCostMultiplier = opts.OverageCostMultiplier
		}
		vehicles = append(vehicles, v)
	}

	start, end, err := PlanningWindow(weekday, week, now)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	run.Request = ports.OptimizationRequest{
		Shipments:   shipments,
		Vehicles:    vehicles,
		WindowStart: start,
		WindowEnd:   end,
	}
	return run, nil
}
