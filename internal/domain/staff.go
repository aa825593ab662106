package domain

import "github.com/google/uuid"

// Staff role qualifying for physical route assignment. Other roles may be
// present and active in the roster but are never given stops.
const RoleNurse = "nurse"

// Represents one staff member of the visiting service.
// The staff roster is replaced wholesale on upload; IsActive is the only
// field mutated afterwards, in place, via selection toggles.
type StaffMember struct {
	ID               string
	Name             string
	StartAddress     string
	Role             string
	PartTimeFraction int
	IsActive         bool
	Location         *Coordinates
}

// NewStaffMember builds a roster entry with a stable synthetic id.
// The part-time fraction is clamped to [0,100] here, once, rather than on
// every access; callers passing no meaningful fraction should pass 100.
func NewStaffMember(name, startAddress, role string, partTimeFraction int) *StaffMember {
	return &StaffMember{
		ID:               uuid.NewString(),
		Name:             name,
		StartAddress:     startAddress,
		Role:             role,
		PartTimeFraction: ClampFraction(partTimeFraction),
		IsActive:         true,
	}
}

// Eligible reports whether this member can be assigned a physical round:
// active and a nurse.
func (s *StaffMember) Eligible() bool {
	return s.IsActive && s.Role == RoleNurse
}

// ClampFraction bounds a part-time fraction to [0,100].
func ClampFraction(fraction int) int {
	if fraction < 0 {
		return 0
	}
	if fraction > 100 {
		return 100
	}
	return fraction
}
