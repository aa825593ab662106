package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/export"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// ExportHandler renders the session's saved schedule as an export
// document. ?format=text returns a plain-text attachment, anything else
// the structured JSON document.
type ExportHandler struct {
	Sessions ports.SessionStore
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schedule, err := h.Sessions.Schedule(r.Context(), sessionID(r))
	if err != nil {
		zap.L().Error("load schedule failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if schedule == nil {
		writeError(w, r, http.StatusNotFound, "no schedule to export, run an optimization first")
		return
	}

	sel, err := h.Sessions.Selection(r.Context(), sessionID(r))
	if err != nil {
		zap.L().Error("load selection failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now()
	week := services.CurrentWeek(now)
	if sel.Week != nil {
		week = *sel.Week
	}

	date, err := services.DateFromWeek(week, sel.Weekday, now.Year())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	formatted := date.Format("02_01_2006")

	doc := export.BuildDocument(schedule.Routes, schedule.UnassignedPhone,
		schedule.UnassignedRegular, sel.Weekday, formatted)

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "Optimized_routes_"+formatted+".txt"))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(export.RenderText(doc))); err != nil {
			zap.L().Warn("write export failed", zap.Error(err))
		}
		return
	}

	writeJSON(w, r, http.StatusOK, doc)
}
