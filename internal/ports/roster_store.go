package ports

import (
	"context"

	"visit-route-service/internal/domain"
)

// Port: holds the patient and staff rosters for the active weekday.
// Rosters are replaced wholesale on upload; the staff active flag is the
// only field mutated in place afterwards.
type RosterStore interface {
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
	ReplacePatients(ctx context.Context, patients []*domain.Patient) error

	ListStaff(ctx context.Context) ([]*domain.StaffMember, error)
	ReplaceStaff(ctx context.Context, staff []*domain.StaffMember) error

	// Toggle a staff member's active flag by id. Unknown ids are ignored.
	SetStaffActive(ctx context.Context, id string, active bool) error
}
