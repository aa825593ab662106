package services

import (
	"errors"

	"visit-route-service/internal/domain"
)

// ValidateOptimizationInput checks rosters before any network call.
// It fails when no active nurse exists or the patient list is empty.
func ValidateOptimizationInput(staff []*domain.StaffMember, patients []*domain.Patient) error {
	hasActiveNurse := false
	for _, s := range staff {
		if s.Eligible() {
			hasActiveNurse = true
			break
		}
	}
	if !hasActiveNurse {
		return errors.New("at least one active nurse must be available")
	}

	if len(patients) == 0 {
		return errors.New("at least one patient is required")
	}

	return nil
}
