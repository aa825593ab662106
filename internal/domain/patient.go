package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Classification of a requested visit. The set is closed: anything outside
// it carries no service duration and is never routed.
type VisitType string

const (
	VisitNewIntake    VisitType = "new-intake"
	VisitHomeVisit    VisitType = "home-visit"
	VisitPhoneContact VisitType = "phone-contact"
)

// Represents a single patient visit request for the active weekday.
// The entire patient roster is replaced wholesale on upload; individual
// entries are never mutated afterwards. Location is nil when geocoding
// failed for the address.
type Patient struct {
	ID           string
	Name         string
	Address      string
	VisitType    VisitType
	TimeInfo     string
	PhoneNumbers string
	Location     *Coordinates
}

// NewPatient builds a roster entry with a stable synthetic id.
// Phone numbers are merged into a single line-separated field.
func NewPatient(name, address string, visitType VisitType, timeInfo string, phones ...string) *Patient {
	nums := make([]string, 0, len(phones))
	for _, ph := range phones {
		ph = strings.TrimSpace(ph)
		if ph != "" {
			nums = append(nums, ph)
		}
	}

	return &Patient{
		ID:           uuid.NewString(),
		Name:         name,
		Address:      address,
		VisitType:    visitType,
		TimeInfo:     timeInfo,
		PhoneNumbers: strings.Join(nums, "\n"),
	}
}

// Routable reports whether the visit requires physical presence.
// Phone contacts are fulfilled remotely and never enter the optimizer.
func (p *Patient) Routable() bool {
	return p.VisitType == VisitNewIntake || p.VisitType == VisitHomeVisit
}
