package services

import (
	"visit-route-service/internal/domain"
)

// ApplyManualEdit re-normalizes a client-submitted schedule, e.g. after
// drag-and-drop reassignment in a UI.
//
// This is a trust boundary, not a re-optimization: for every submitted
// route whose staff name matches an active staff member, the container is
// rebuilt with the authoritative start location from the roster while the
// client is trusted for stop order and duration figures. Routes naming
// unknown staff are dropped silently; that protects against stale or
// deleted staff references. The unassigned sets pass through unvalidated.
func ApplyManualEdit(submitted *domain.Schedule, staff []*domain.StaffMember) *domain.Schedule {
	byName := make(map[string]*domain.StaffMember, len(staff))
	for _, s := range staff {
		if s.IsActive {
			byName[s.Name] = s
		}
	}

	out := &domain.Schedule{
		Routes:            make([]domain.RouteContainer, 0, len(submitted.Routes)),
		UnassignedRegular: submitted.UnassignedRegular,
		UnassignedPhone:   submitted.UnassignedPhone,
	}

	for _, route := range submitted.Routes {
		member, ok := byName[route.StaffName]
		if !ok {
			continue
		}

		out.Routes = append(out.Routes, domain.RouteContainer{
			StaffName:     route.StaffName,
			Role:          route.Role,
			DurationHours: route.DurationHours,
			MaxHours:      route.MaxHours,
			Start:         member.Location,
			Stops:         route.Stops,
		})
	}

	return out
}
