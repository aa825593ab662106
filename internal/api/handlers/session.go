package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
)

// SessionHandler reads and updates the session's weekday selection.
type SessionHandler struct {
	Roster   ports.RosterStore
	Sessions ports.SessionStore
}

func (h *SessionHandler) Weekday(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getWeekday(w, r)
	case http.MethodPost:
		h.setWeekday(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SessionHandler) getWeekday(w http.ResponseWriter, r *http.Request) {
	sel, err := h.Sessions.Selection(r.Context(), sessionID(r))
	if err != nil {
		zap.L().Error("load selection failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	patients, err := h.Roster.ListPatients(r.Context())
	if err != nil {
		zap.L().Error("list patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.WeekdayResponse{
		Weekday:      sel.Weekday,
		Week:         sel.Week,
		PatientCount: len(patients),
	})
}

func (h *SessionHandler) setWeekday(w http.ResponseWriter, r *http.Request) {
	var req dto.WeekdayRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Sessions.SetWeekday(r.Context(), sessionID(r), req.Weekday); err != nil {
		zap.L().Error("set weekday failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	sel, err := h.Sessions.Selection(r.Context(), sessionID(r))
	if err != nil {
		zap.L().Error("load selection failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	patients, err := h.Roster.ListPatients(r.Context())
	if err != nil {
		zap.L().Error("list patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.WeekdayResponse{
		Weekday:      sel.Weekday,
		Week:         sel.Week,
		PatientCount: len(patients),
	})
}
