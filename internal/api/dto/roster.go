package dto

// One pre-parsed patient spreadsheet row. Column validation and file
// parsing happen client-side; this API receives rows as JSON.
type PatientRow struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	VisitType string `json:"visit_type" validate:"required,oneof=new-intake home-visit phone-contact"`
	TimeInfo  string `json:"time_info"`
	Phone     string `json:"phone"`
	Phone2    string `json:"phone2"`
}

// Bulk replace of the patient roster for the selected weekday. The week
// number, when present, becomes the session's active week.
type ReplacePatientsRequest struct {
	Week     *int         `json:"week" validate:"omitempty,min=0,max=53"`
	Patients []PatientRow `json:"patients" validate:"required,dive"`
}

type StaffRow struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Role    string `json:"role"`
	// Nil means full-time; values outside [0,100] are clamped on ingest.
	PartTimeFraction *int `json:"part_time_fraction"`
}

type ReplaceStaffRequest struct {
	Staff []StaffRow `json:"staff" validate:"required,dive"`
}

type StaffToggle struct {
	ID     string `json:"id" validate:"required"`
	Active bool   `json:"active"`
}

// Selection toggles; the only staff mutation after upload.
type UpdateSelectionRequest struct {
	Staff []StaffToggle `json:"staff" validate:"required,dive"`
}

type PatientResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	VisitType    string  `json:"visit_type"`
	TimeInfo     string  `json:"time_info"`
	PhoneNumbers string  `json:"phone_numbers"`
	Location     *LatLng `json:"location"`
}

type ListPatientsResponse struct {
	Patients []PatientResponse `json:"patients"`
}

type StaffResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	StartAddress     string  `json:"start_address"`
	Role             string  `json:"role"`
	PartTimeFraction int     `json:"part_time_fraction"`
	IsActive         bool    `json:"is_active"`
	Location         *LatLng `json:"location"`
}

type ListStaffResponse struct {
	Staff []StaffResponse `json:"staff"`
}

type ReplaceRosterResponse struct {
	Imported int `json:"imported"`
	// Entries whose address could not be geocoded; they stay in the
	// roster without coordinates.
	Ungeocoded []string `json:"ungeocoded,omitempty"`
}

type PatientMarker struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	VisitType string  `json:"visit_type"`
	Location  *LatLng `json:"location"`
}

type StaffMarker struct {
	Name         string  `json:"name"`
	StartAddress string  `json:"start_address"`
	Role         string  `json:"role"`
	Location     *LatLng `json:"location"`
}

// Map markers: all patients plus active staff.
type MarkersResponse struct {
	Patients []PatientMarker `json:"patients"`
	Staff    []StaffMarker   `json:"staff"`
}

type WeekdayRequest struct {
	Weekday string `json:"weekday" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

type WeekdayResponse struct {
	Weekday      string `json:"weekday"`
	Week         *int   `json:"week,omitempty"`
	PatientCount int    `json:"patient_count"`
}
