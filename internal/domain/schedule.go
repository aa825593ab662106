package domain

// Represents a single stop of a planned round: a display snapshot of the
// patient visit it serves plus the location to drive to.
type Stop struct {
	Patient      string
	Address      string
	VisitType    VisitType
	TimeInfo     string
	PhoneNumbers string
	Location     *Coordinates
}

// NewStop snapshots a patient's displayable fields into a stop record.
func NewStop(p *Patient) Stop {
	return Stop{
		Patient:      p.Name,
		Address:      p.Address,
		VisitType:    p.VisitType,
		TimeInfo:     p.TimeInfo,
		PhoneNumbers: p.PhoneNumbers,
		Location:     p.Location,
	}
}

// Represents the planned round of one staff member.
// One container exists per active staff member, present even when the
// solver assigned them nothing. DurationHours records whatever the solver
// returned; staying within MaxHours is part of the solver's cost model,
// not a guarantee of this layer. Stop order is the intended visiting
// sequence and must be preserved exactly.
type RouteContainer struct {
	StaffName     string
	Role          string
	DurationHours float64
	MaxHours      float64
	Start         *Coordinates
	Stops         []Stop
}

// The reconciled weekly-visit schedule for one weekday.
// UnassignedRegular holds routable patients the solver placed on no round,
// in original roster order. UnassignedPhone always holds the full
// phone-contact roster; those visits are never routed by construction.
type Schedule struct {
	Routes            []RouteContainer
	UnassignedRegular []Stop
	UnassignedPhone   []Stop
}

// Selection is the per-session scope: which weekday's roster snapshot is
// active and, once a roster has been uploaded, which calendar week.
type Selection struct {
	Weekday string
	Week    *int
}

// DefaultWeekday is the selection before any roster upload.
const DefaultWeekday = "Monday"
