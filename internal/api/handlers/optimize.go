package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// OptimizeHandler runs the full pipeline: validate rosters, build the
// solver request, call the external optimizer, reconcile the response and
// save the resulting schedule under the caller's session.
type OptimizeHandler struct {
	Roster    ports.RosterStore
	Sessions  ports.SessionStore
	Optimizer ports.TourOptimizer
	Options   services.RequestOptions
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	staff, err := h.Roster.ListStaff(ctx)
	if err != nil {
		zap.L().Error("list staff failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	patients, err := h.Roster.ListPatients(ctx)
	if err != nil {
		zap.L().Error("list patients failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// Validation happens before any network call.
	if err := services.ValidateOptimizationInput(staff, patients); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sel, err := h.Sessions.Selection(ctx, sessionID(r))
	if err != nil {
		zap.L().Error("load selection failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	run, err := services.NewOptimizationRun(staff, patients, sel.Weekday, sel.Week, time.Now(), h.Options)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Optimizer.OptimizeTours(ctx, run.Request)
	if err != nil {
		zap.L().Error("optimization failed", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	}

	schedule, err := run.Reconcile(resp)
	if err != nil {
		// Index desync between request and response; not user-recoverable.
		if errors.Is(err, services.ErrReconcileDesync) {
			zap.L().Error("reconciliation desync", zap.Error(err))
		} else {
			zap.L().Error("reconciliation failed", zap.Error(err))
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Sessions.SaveSchedule(ctx, sessionID(r), schedule); err != nil {
		zap.L().Error("save schedule failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSchedule(schedule))
}
