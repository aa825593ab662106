package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/adapters/geocode"
	"visit-route-service/internal/adapters/optimizer"
	"visit-route-service/internal/adapters/store"
	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

func newTestServer(t *testing.T, mock *optimizer.MockTourOptimizer) *httptest.Server {
	t.Helper()

	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"Hauptstr. 1": {Lon: 13.40, Lat: 52.50},
		"Nebenstr. 2": {Lon: 13.41, Lat: 52.51},
		"Ringweg 3":   {Lon: 13.42, Lat: 52.52},
		"Am Anger 4":  {Lon: 13.43, Lat: 52.53},
		"Parkallee 5": {Lon: 13.44, Lat: 52.54},
	})

	memory := store.NewMemoryStore()
	router := NewRouter(memory, memory, geocoder, mock, services.DefaultRequestOptions())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func uploadRosters(t *testing.T, baseURL string) {
	t.Helper()

	resp := doJSON(t, http.MethodPut, baseURL+"/roster/staff", map[string]any{
		"staff": []map[string]any{
			{"name": "Anna", "address": "Hauptstr. 1", "role": "nurse"},
			{"name": "Bert", "address": "Nebenstr. 2", "role": "nurse", "part_time_fraction": 50},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	week := 2
	resp = doJSON(t, http.MethodPut, baseURL+"/roster/patients", map[string]any{
		"week": week,
		"patients": []map[string]any{
			{"name": "P1", "address": "Ringweg 3", "visit_type": "home-visit", "phone": "030 111"},
			{"name": "P2", "address": "Am Anger 4", "visit_type": "new-intake"},
			{"name": "T1", "address": "Parkallee 5", "visit_type": "phone-contact"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestOptimizeFlow(t *testing.T) {
	start := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	mock := &optimizer.MockTourOptimizer{Response: ports.OptimizationResponse{
		Routes: []ports.SolverRoute{{
			VehicleIndex: 0,
			StartTime:    &start,
			EndTime:      &end,
			Visits:       []ports.Visit{{ShipmentIndex: 1}, {ShipmentIndex: 0}},
		}},
	}}

	srv := newTestServer(t, mock)
	uploadRosters(t, srv.URL)

	resp := doJSON(t, http.MethodPost, srv.URL+"/session/weekday",
		map[string]any{"weekday": "Wednesday"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	wd := decodeBody[dto.WeekdayResponse](t, resp)
	assert.Equal(t, "Wednesday", wd.Weekday)
	require.NotNil(t, wd.Week)
	assert.Equal(t, 2, *wd.Week)
	assert.Equal(t, 3, wd.PatientCount)

	resp = doJSON(t, http.MethodPost, srv.URL+"/optimize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	schedule := decodeBody[dto.ScheduleResponse](t, resp)

	// The submitted request carried both nurses and only the two routable
	// patients, against the selected week's window.
	require.Len(t, mock.LastRequest.Vehicles, 2)
	require.Len(t, mock.LastRequest.Shipments, 2)
	assert.Equal(t, time.Wednesday, mock.LastRequest.WindowStart.Weekday())
	assert.Equal(t, 8, mock.LastRequest.WindowStart.Hour())
	assert.Equal(t, 16, mock.LastRequest.WindowEnd.Hour())

	require.Len(t, schedule.Routes, 2)
	anna := schedule.Routes[0]
	assert.Equal(t, "Anna", anna.Staff)
	assert.Equal(t, 1.5, anna.DurationHrs)
	assert.Equal(t, 7.0, anna.MaxHours)
	require.Len(t, anna.Stops, 2)
	assert.Equal(t, "P2", anna.Stops[0].Patient)
	assert.Equal(t, "P1", anna.Stops[1].Patient)

	bert := schedule.Routes[1]
	assert.Equal(t, "Bert", bert.Staff)
	assert.Equal(t, 3.5, bert.MaxHours)
	assert.Empty(t, bert.Stops)

	assert.Empty(t, schedule.UnassignedRegular)
	require.Len(t, schedule.UnassignedPhone, 1)
	assert.Equal(t, "T1", schedule.UnassignedPhone[0].Patient)

	// The schedule persists for later retrieval.
	resp = doJSON(t, http.MethodGet, srv.URL+"/schedule", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decodeBody[dto.ScheduleResponse](t, resp)
	assert.Equal(t, schedule, saved)
}

func TestOptimizeWithoutPatients(t *testing.T) {
	srv := newTestServer(t, &optimizer.MockTourOptimizer{})

	resp := doJSON(t, http.MethodPut, srv.URL+"/roster/staff", map[string]any{
		"staff": []map[string]any{
			{"name": "Anna", "address": "Hauptstr. 1", "role": "nurse"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/optimize", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "at least one patient is required", body["error"])
}

func TestOptimizeUpstreamFailure(t *testing.T) {
	mock := &optimizer.MockTourOptimizer{Err: assertAnError{}}
	srv := newTestServer(t, mock)
	uploadRosters(t, srv.URL)

	resp := doJSON(t, http.MethodPost, srv.URL+"/optimize", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	resp.Body.Close()
}

type assertAnError struct{}

func (assertAnError) Error() string { return "solver unavailable" }

func TestManualEditFlow(t *testing.T) {
	srv := newTestServer(t, &optimizer.MockTourOptimizer{})
	uploadRosters(t, srv.URL)

	resp := doJSON(t, http.MethodPut, srv.URL+"/schedule", dto.UpdateScheduleRequest{
		Routes: []dto.RouteDTO{
			{Staff: "Anna", Role: "nurse", DurationHrs: 2, MaxHours: 7,
				Stops: []dto.StopDTO{{Patient: "P1", VisitType: "home-visit"}}},
			{Staff: "Ghost", Stops: []dto.StopDTO{}},
		},
		UnassignedRegular: []dto.StopDTO{},
		UnassignedPhone:   []dto.StopDTO{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	schedule := decodeBody[dto.ScheduleResponse](t, resp)

	// Unknown staff routes are dropped and the start location re-attached
	// from the roster.
	require.Len(t, schedule.Routes, 1)
	assert.Equal(t, "Anna", schedule.Routes[0].Staff)
	require.NotNil(t, schedule.Routes[0].Start)
	assert.Equal(t, 52.50, schedule.Routes[0].Start.Lat)
}

func TestExport(t *testing.T) {
	start := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	mock := &optimizer.MockTourOptimizer{Response: ports.OptimizationResponse{
		Routes: []ports.SolverRoute{{
			VehicleIndex: 0,
			StartTime:    &start,
			EndTime:      &end,
			Visits:       []ports.Visit{{ShipmentIndex: 0}},
		}},
	}}
	srv := newTestServer(t, mock)

	// Exporting before any optimization is a 404.
	resp := doJSON(t, http.MethodGet, srv.URL+"/export", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	uploadRosters(t, srv.URL)
	resp = doJSON(t, http.MethodPost, srv.URL+"/optimize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decodeBody[map[string]any](t, resp)
	assert.Contains(t, doc["title"], "Optimized routes")
	assert.Equal(t, "Monday", doc["weekday"])

	// The exported date is week 2's Monday of the current year.
	expected, err := services.DateFromWeek(2, "Monday", time.Now().Year())
	require.NoError(t, err)
	assert.Equal(t, expected.Format("02_01_2006"), doc["date"])

	resp = doJSON(t, http.MethodGet, srv.URL+"/export?format=text", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	resp.Body.Close()
}

func TestMarkers(t *testing.T) {
	srv := newTestServer(t, &optimizer.MockTourOptimizer{})
	uploadRosters(t, srv.URL)

	resp := doJSON(t, http.MethodGet, srv.URL+"/markers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	markers := decodeBody[dto.MarkersResponse](t, resp)

	assert.Len(t, markers.Patients, 3)
	assert.Len(t, markers.Staff, 2)
	require.NotNil(t, markers.Patients[0].Location)
}

func TestStaffSelectionToggle(t *testing.T) {
	srv := newTestServer(t, &optimizer.MockTourOptimizer{})
	uploadRosters(t, srv.URL)

	resp := doJSON(t, http.MethodGet, srv.URL+"/roster/staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	staff := decodeBody[dto.ListStaffResponse](t, resp)
	require.Len(t, staff.Staff, 2)

	resp = doJSON(t, http.MethodPost, srv.URL+"/roster/staff/selection", map[string]any{
		"staff": []map[string]any{{"id": staff.Staff[1].ID, "active": false}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/roster/staff", nil)
	staff = decodeBody[dto.ListStaffResponse](t, resp)
	assert.True(t, staff.Staff[0].IsActive)
	assert.False(t, staff.Staff[1].IsActive)

	// Inactive staff vanish from the markers.
	resp = doJSON(t, http.MethodGet, srv.URL+"/markers", nil)
	markers := decodeBody[dto.MarkersResponse](t, resp)
	assert.Len(t, markers.Staff, 1)
}
