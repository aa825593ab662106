package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// ScheduleHandler serves the session's saved schedule and accepts manual
// edits. Edits are re-normalized, never re-optimized.
type ScheduleHandler struct {
	Roster   ports.RosterStore
	Sessions ports.SessionStore
}

func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ScheduleHandler) get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Sessions.Schedule(r.Context(), sessionID(r))
	if err != nil {
		zap.L().Error("load schedule failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if schedule == nil {
		// No optimization ran yet in this session; an empty schedule
		// keeps the client contract uniform.
		schedule = &domain.Schedule{
			Routes:            []domain.RouteContainer{},
			UnassignedRegular: []domain.Stop{},
			UnassignedPhone:   []domain.Stop{},
		}
	}

	writeJSON(w, r, http.StatusOK, dto.FromSchedule(schedule))
}

func (h *ScheduleHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateScheduleRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	staff, err := h.Roster.ListStaff(r.Context())
	if err != nil {
		zap.L().Error("list staff failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	normalized := services.ApplyManualEdit(req.ToSchedule(), staff)

	if err := h.Sessions.SaveSchedule(r.Context(), sessionID(r), normalized); err != nil {
		zap.L().Error("save schedule failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSchedule(normalized))
}
