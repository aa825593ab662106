package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

func locatedStaff(name, role string, fraction int, active bool) *domain.StaffMember {
	s := domain.NewStaffMember(name, "addr "+name, role, fraction)
	s.IsActive = active
	s.Location = &domain.Coordinates{Lon: 13.4, Lat: 52.5}
	return s
}

func locatedPatient(name string, visitType domain.VisitType) *domain.Patient {
	p := domain.NewPatient(name, "addr "+name, visitType, "")
	p.Location = &domain.Coordinates{Lon: 13.5, Lat: 52.6}
	return p
}

func TestNewOptimizationRunPartitionsRosters(t *testing.T) {
	staff := []*domain.StaffMember{
		locatedStaff("Anna", domain.RoleNurse, 100, true),
		locatedStaff("Bert", "admin", 100, true),
		locatedStaff("Clara", domain.RoleNurse, 50, false),
	}
	patients := []*domain.Patient{
		locatedPatient("P1", domain.VisitHomeVisit),
		locatedPatient("P2", domain.VisitPhoneContact),
		locatedPatient("P3", domain.VisitNewIntake),
	}

	run, err := NewOptimizationRun(staff, patients, "Monday", nil,
		time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC), DefaultRequestOptions())
	require.NoError(t, err)

	// Inactive staff stay out entirely; active non-nurses get a container
	// later but never a vehicle.
	require.Len(t, run.ActiveStaff, 2)
	require.Len(t, run.EligibleStaff, 1)
	assert.Equal(t, "Anna", run.EligibleStaff[0].Name)

	require.Len(t, run.RoutablePatients, 2)
	assert.Equal(t, "P1", run.RoutablePatients[0].Name)
	assert.Equal(t, "P3", run.RoutablePatients[1].Name)
	require.Len(t, run.PhonePatients, 1)
	assert.Equal(t, "P2", run.PhonePatients[0].Name)

	// One shipment per routable patient, one vehicle per eligible staff
	// member, in matching order.
	require.Len(t, run.Request.Shipments, 2)
	assert.Equal(t, 35*time.Minute, run.Request.Shipments[0].ServiceDuration)
	assert.Equal(t, 120*time.Minute, run.Request.Shipments[1].ServiceDuration)

	require.Len(t, run.Request.Vehicles, 1)
	v := run.Request.Vehicles[0]
	assert.Equal(t, *staff[0].Location, v.StartLocation)
	assert.Equal(t, *staff[0].Location, v.EndLocation)
	assert.Equal(t, 7*time.Hour, v.MaxDuration)
	assert.Equal(t, 1.0, v.CostPerHour)
	assert.Zero(t, v.SoftMaxDuration)
}

func TestNewOptimizationRunWindow(t *testing.T) {
	staff := []*domain.StaffMember{locatedStaff("Anna", domain.RoleNurse, 100, true)}
	patients := []*domain.Patient{locatedPatient("P1", domain.VisitHomeVisit)}

	week := 2
	run, err := NewOptimizationRun(staff, patients, "Wednesday", &week,
		time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), DefaultRequestOptions())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC), run.Request.WindowStart)
	assert.Equal(t, time.Date(2024, time.January, 10, 16, 0, 0, 0, time.UTC), run.Request.WindowEnd)
}

func TestNewOptimizationRunSoftCap(t *testing.T) {
	staff := []*domain.StaffMember{locatedStaff("Anna", domain.RoleNurse, 100, true)}
	patients := []*domain.Patient{locatedPatient("P1", domain.VisitHomeVisit)}

	opts := RequestOptions{CostPerHour: 1, SoftCapRatio: 0.9, OverageCostMultiplier: 2}
	run, err := NewOptimizationRun(staff, patients, "Monday", nil, time.Now(), opts)
	require.NoError(t, err)

	v := run.Request.Vehicles[0]
	assert.Equal(t, time.Duration(0.9*float64(7*time.Hour)), v.SoftMaxDuration)
	assert.Equal(t, 2.0, v.OverageCostMultiplier)
}

func TestNewOptimizationRunMissingCoordinates(t *testing.T) {
	staff := []*domain.StaffMember{locatedStaff("Anna", domain.RoleNurse, 100, true)}

	ungeocoded := domain.NewPatient("P1", "nowhere", domain.VisitHomeVisit, "")
	_, err := NewOptimizationRun(staff, []*domain.Patient{ungeocoded}, "Monday", nil,
		time.Now(), DefaultRequestOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `patient "P1" has no coordinates`)

	bare := domain.NewStaffMember("Berta", "nowhere", domain.RoleNurse, 100)
	_, err = NewOptimizationRun([]*domain.StaffMember{bare},
		[]*domain.Patient{locatedPatient("P2", domain.VisitHomeVisit)}, "Monday", nil,
		time.Now(), DefaultRequestOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `staff member "Berta" has no coordinates`)

	// Phone contacts never enter the request, so their coordinates are
	// irrelevant.
	phone := domain.NewPatient("P3", "nowhere", domain.VisitPhoneContact, "")
	run, err := NewOptimizationRun(staff,
		[]*domain.Patient{locatedPatient("P2", domain.VisitHomeVisit), phone}, "Monday", nil,
		time.Now(), DefaultRequestOptions())
	require.NoError(t, err)
	assert.Len(t, run.Request.Shipments, 1)
}
