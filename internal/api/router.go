package api

import (
	"net/http"

	"visit-route-service/internal/api/handlers"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	roster ports.RosterStore,
	sessions ports.SessionStore,
	geocoder ports.Geocoder,
	optimizer ports.TourOptimizer,
	opts services.RequestOptions,
) http.Handler {
	mux := http.NewServeMux()

	rosterHandler := &handlers.RosterHandler{Store: roster, Sessions: sessions, Geocoder: geocoder}
	sessionHandler := &handlers.SessionHandler{Roster: roster, Sessions: sessions}
	optimizeHandler := &handlers.OptimizeHandler{
		Roster:    roster,
		Sessions:  sessions,
		Optimizer: optimizer,
		Options:   opts,
	}
	scheduleHandler := &handlers.ScheduleHandler{Roster: roster, Sessions: sessions}
	exportHandler := &handlers.ExportHandler{Sessions: sessions}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/roster/patients", rosterHandler.Patients)
	mux.HandleFunc("/roster/staff", rosterHandler.Staff)
	mux.HandleFunc("/roster/staff/selection", rosterHandler.Selection)
	mux.HandleFunc("/markers", rosterHandler.Markers)
	mux.HandleFunc("/session/weekday", sessionHandler.Weekday)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/schedule", scheduleHandler.Schedule)
	mux.HandleFunc("/export", exportHandler.Export)

	return loggingMiddleware(mux)
}
