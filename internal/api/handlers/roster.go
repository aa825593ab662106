package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// RosterHandler exposes roster upload, listing and staff selection.
// Uploads replace the respective roster wholesale and geocode every row;
// a failed geocode is logged and leaves the entry without coordinates,
// it never aborts the upload.
type RosterHandler struct {
	Store    ports.RosterStore
	Sessions ports.SessionStore
	Geocoder ports.Geocoder
}

func (h *RosterHandler) Patients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPatients(w, r)
	case http.MethodPut:
		h.replacePatients(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RosterHandler) listPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.Store.ListPatients(r.Context())
	if err != nil {
		zap.L().Error("list patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPatientsResponse{Patients: make([]dto.PatientResponse, 0, len(patients))}
	for _, p := range patients {
		res.Patients = append(res.Patients, dto.PatientResponse{
			ID:           p.ID,
			Name:         p.Name,
			Address:      p.Address,
			VisitType:    string(p.VisitType),
			TimeInfo:     p.TimeInfo,
			PhoneNumbers: p.PhoneNumbers,
			Location:     dto.CoordsToLatLng(p.Location),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RosterHandler) replacePatients(w http.ResponseWriter, r *http.Request) {
	var req dto.ReplacePatientsRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	patients := make([]*domain.Patient, 0, len(req.Patients))
	var ungeocoded []string
	for _, row := range req.Patients {
		p := domain.NewPatient(row.Name, row.Address, domain.VisitType(row.VisitType),
			row.TimeInfo, row.Phone, row.Phone2)

		coord, err := h.Geocoder.Geocode(r.Context(), row.Address)
		if err != nil {
			zap.L().Warn("geocoding patient address failed",
				zap.String("patient", row.Name),
				zap.String("address", row.Address),
				zap.Error(err),
			)
			ungeocoded = append(ungeocoded, row.Name)
		} else {
			p.Location = &coord
		}

		patients = append(patients, p)
	}

	if err := h.Store.ReplacePatients(r.Context(), patients); err != nil {
		zap.L().Error("replace patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// A roster upload fixes the session's calendar week.
	if req.Week != nil {
		if err := h.Sessions.SetWeek(r.Context(), sessionID(r), *req.Week); err != nil {
			zap.L().Error("set week failed", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.ReplaceRosterResponse{
		Imported:   len(patients),
		Ungeocoded: ungeocoded,
	})
}

func (h *RosterHandler) Staff(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listStaff(w, r)
	case http.MethodPut:
		h.replaceStaff(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RosterHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Store.ListStaff(r.Context())
	if err != nil {
		zap.L().Error("list staff failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStaffResponse{Staff: make([]dto.StaffResponse, 0, len(staff))}
	for _, s := range staff {
		res.Staff = append(res.Staff, dto.StaffResponse{
			ID:               s.ID,
			Name:             s.Name,
			StartAddress:     s.StartAddress,
			Role:             s.Role,
			PartTimeFraction: s.PartTimeFraction,
			IsActive:         s.IsActive,
			Location:         dto.CoordsToLatLng(s.Location),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RosterHandler) replaceStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.ReplaceStaffRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	staff := make([]*domain.StaffMember, 0, len(req.Staff))
	var ungeocoded []string
	for _, row := range req.Staff {
		fraction := 100
		if row.PartTimeFraction != nil {
			fraction = *row.PartTimeFraction
		}
		s := domain.NewStaffMember(row.Name, row.Address, row.Role, fraction)

		coord, err := h.Geocoder.Geocode(r.Context(), row.Address)
		if err != nil {
			zap.L().Warn("geocoding staff address failed",
				zap.String("staff", row.Name),
				zap.String("address", row.Address),
				zap.Error(err),
			)
			ungeocoded = append(ungeocoded, row.Name)
		} else {
			s.Location = &coord
		}

		staff = append(staff, s)
	}

	if err := h.Store.ReplaceStaff(r.Context(), staff); err != nil {
		zap.L().Error("replace staff failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReplaceRosterResponse{
		Imported:   len(staff),
		Ungeocoded: ungeocoded,
	})
}

// Selection toggles the active flag of staff members, in place.
func (h *RosterHandler) Selection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.UpdateSelectionRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	for _, toggle := range req.Staff {
		if err := h.Store.SetStaffActive(r.Context(), toggle.ID, toggle.Active); err != nil {
			zap.L().Error("set staff active failed", zap.String("id", toggle.ID), zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Markers returns map pins for all patients and active staff.
func (h *RosterHandler) Markers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	patients, err := h.Store.ListPatients(r.Context())
	if err != nil {
		zap.L().Error("list patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	staff, err := h.Store.ListStaff(r.Context())
	if err != nil {
		zap.L().Error("list staff failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.MarkersResponse{
		Patients: make([]dto.PatientMarker, 0, len(patients)),
		Staff:    make([]dto.StaffMarker, 0, len(staff)),
	}
	for _, p := range patients {
		res.Patients = append(res.Patients, dto.PatientMarker{
			Name:      p.Name,
			Address:   p.Address,
			VisitType: string(p.VisitType),
			Location:  dto.CoordsToLatLng(p.Location),
		})
	}
	for _, s := range staff {
		if !s.IsActive {
			continue
		}
		res.Staff = append(res.Staff, dto.StaffMarker{
			Name:         s.Name,
			StartAddress: s.StartAddress,
			Role:         s.Role,
			Location:     dto.CoordsToLatLng(s.Location),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
