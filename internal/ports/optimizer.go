package ports

import (
	"context"
	"time"

	"visit-route-service/internal/domain"
)

// One pickup task for the solver: a patient location plus the expected
// on-site service duration.
type Shipment struct {
	PickupLocation  domain.Coordinates
	ServiceDuration time.Duration
}

// One vehicle entry for the solver. Start and end location are the staff
// member's home. MaxDuration caps the route via the solver's cost model;
// SoftMaxDuration (optional, zero disables it) adds an overage cost
// multiplier instead of a hard bound.
type VehicleModel struct {
	StartLocation         domain.Coordinates
	EndLocation           domain.Coordinates
	CostPerHour           float64
	MaxDuration           time.Duration
	SoftMaxDuration       time.Duration
	OverageCostMultiplier float64
}

// The solver input model. Shipment and vehicle order is significant: the
// response references both by positional index, so the submitted sequences
// must be retained unmodified until the response has been reconciled.
type OptimizationRequest struct {
	Shipments   []Shipment
	Vehicles    []VehicleModel
	WindowStart time.Time
	WindowEnd   time.Time
}

// A single visit of a solver route. ShipmentIndex points into the request's
// shipment list; a negative value is a sentinel for "not a real visit"
// (vehicle start, breaks) and is skipped during reconciliation.
type Visit struct {
	ShipmentIndex int
}

// One route of the solver response. VehicleIndex points into the request's
// vehicle list. Timestamps may be absent for unused vehicles.
type SolverRoute struct {
	VehicleIndex int
	StartTime    *time.Time
	EndTime      *time.Time
	Visits       []Visit
}

type OptimizationResponse struct {
	Routes []SolverRoute
}

// Contract for the external route optimization service. Consumed as a
// black box: one blocking call, one labeled error on failure, no retries
// beyond the transport's transient-error backoff.
type TourOptimizer interface {
	OptimizeTours(ctx context.Context, req OptimizationRequest) (OptimizationResponse, error)
}
