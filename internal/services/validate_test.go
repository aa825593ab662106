package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visit-route-service/internal/domain"
)

func TestValidateOptimizationInput(t *testing.T) {
	nurse := domain.NewStaffMember("Anna", "x", domain.RoleNurse, 100)
	patient := domain.NewPatient("Erika", "y", domain.VisitHomeVisit, "")

	err := ValidateOptimizationInput([]*domain.StaffMember{nurse}, []*domain.Patient{patient})
	assert.NoError(t, err)
}

func TestValidateOptimizationInputNoActiveNurse(t *testing.T) {
	patient := domain.NewPatient("Erika", "y", domain.VisitHomeVisit, "")

	err := ValidateOptimizationInput(nil, []*domain.Patient{patient})
	assert.EqualError(t, err, "at least one active nurse must be available")

	inactive := domain.NewStaffMember("Anna", "x", domain.RoleNurse, 100)
	inactive.IsActive = false
	err = ValidateOptimizationInput([]*domain.StaffMember{inactive}, []*domain.Patient{patient})
	assert.EqualError(t, err, "at least one active nurse must be available")

	admin := domain.NewStaffMember("Bert", "x", "admin", 100)
	err = ValidateOptimizationInput([]*domain.StaffMember{admin}, []*domain.Patient{patient})
	assert.EqualError(t, err, "at least one active nurse must be available")
}

func TestValidateOptimizationInputNoPatients(t *testing.T) {
	nurse := domain.NewStaffMember("Anna", "x", domain.RoleNurse, 100)

	err := ValidateOptimizationInput([]*domain.StaffMember{nurse}, nil)
	assert.EqualError(t, err, "at least one patient is required")
}
