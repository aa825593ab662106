package dto

import "visit-route-service/internal/domain"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type StopDTO struct {
	Patient      string  `json:"patient"`
	Address      string  `json:"address"`
	VisitType    string  `json:"visit_type"`
	TimeInfo     string  `json:"time_info"`
	PhoneNumbers string  `json:"phone_numbers"`
	Location     *LatLng `json:"location"`
}

type RouteDTO struct {
	Staff       string    `json:"staff"`
	Role        string    `json:"role"`
	DurationHrs float64   `json:"duration_hrs"`
	MaxHours    float64   `json:"max_hours"`
	Start       *LatLng   `json:"start"`
	Stops       []StopDTO `json:"stops"`
}

type ScheduleResponse struct {
	Routes            []RouteDTO `json:"routes"`
	UnassignedRegular []StopDTO  `json:"unassigned_regular"`
	UnassignedPhone   []StopDTO  `json:"unassigned_phone"`
}

// Client-submitted schedule after manual editing. Same shape as the
// response; the server re-attaches authoritative staff fields and drops
// routes naming unknown staff.
type UpdateScheduleRequest struct {
	Routes            []RouteDTO `json:"routes"`
	UnassignedRegular []StopDTO  `json:"unassigned_regular"`
	UnassignedPhone   []StopDTO  `json:"unassigned_phone"`
}

func CoordsToLatLng(c *domain.Coordinates) *LatLng {
	if c == nil {
		return nil
	}
	return &LatLng{Lat: c.Lat, Lng: c.Lon}
}

func latLngToCoords(l *LatLng) *domain.Coordinates {
	if l == nil {
		return nil
	}
	return &domain.Coordinates{Lat: l.Lat, Lon: l.Lng}
}

func stopToDTO(s domain.Stop) StopDTO {
	return StopDTO{
		Patient:      s.Patient,
		Address:      s.Address,
		VisitType:    string(s.VisitType),
		TimeInfo:     s.TimeInfo,
		PhoneNumbers: s.PhoneNumbers,
		Location:     CoordsToLatLng(s.Location),
	}
}

func stopFromDTO(s StopDTO) domain.Stop {
	return domain.Stop{
		Patient:      s.Patient,
		Address:      s.Address,
		VisitType:    domain.VisitType(s.VisitType),
		TimeInfo:     s.TimeInfo,
		PhoneNumbers: s.PhoneNumbers,
		Location:     latLngToCoords(s.Location),
	}
}

func stopsToDTO(stops []domain.Stop) []StopDTO {
	out := make([]StopDTO, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopToDTO(s))
	}
	return out
}

func stopsFromDTO(stops []StopDTO) []domain.Stop {
	out := make([]domain.Stop, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopFromDTO(s))
	}
	return out
}

// FromSchedule shapes a reconciled schedule for the wire.
func FromSchedule(s *domain.Schedule) ScheduleResponse {
	res := ScheduleResponse{
		Routes:            make([]RouteDTO, 0, len(s.Routes)),
		UnassignedRegular: stopsToDTO(s.UnassignedRegular),
		UnassignedPhone:   stopsToDTO(s.UnassignedPhone),
	}

	for _, r := range s.Routes {
		res.Routes = append(res.Routes, RouteDTO{
			Staff:       r.StaffName,
			Role:        r.Role,
			DurationHrs: r.DurationHours,
			MaxHours:    r.MaxHours,
			Start:       CoordsToLatLng(r.Start),
			Stops:       stopsToDTO(r.Stops),
		})
	}

	return res
}

// ToSchedule converts a client submission back into domain form.
func (req UpdateScheduleRequest) ToSchedule() *domain.Schedule {
	s := &domain.Schedule{
		Routes:            make([]domain.RouteContainer, 0, len(req.Routes)),
		UnassignedRegular: stopsFromDTO(req.UnassignedRegular),
		UnassignedPhone:   stopsFromDTO(req.UnassignedPhone),
	}

	for _, r := range req.Routes {
		s.Routes = append(s.Routes, domain.RouteContainer{
			StaffName:     r.Staff,
			Role:          r.Role,
			DurationHours: r.DurationHrs,
			MaxHours:      r.MaxHours,
			Start:         latLngToCoords(r.Start),
			Stops:         stopsFromDTO(r.Stops),
		})
	}

	return s
}
