package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"visit-route-service/internal/adapters/httpapi"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type shipmentModel struct {
	PickupLocation  latLng `json:"pickup_location"`
	ServiceDuration string `json:"service_duration"`
}

type vehicleModel struct {
	StartLocation         latLng  `json:"start_location"`
	EndLocation           latLng  `json:"end_location"`
	CostPerHour           float64 `json:"cost_per_hour"`
	MaxDuration           string  `json:"max_duration"`
	SoftMaxDuration       string  `json:"soft_max_duration,omitempty"`
	OverageCostMultiplier float64 `json:"overage_cost_multiplier,omitempty"`
}

type optimizeRequest struct {
	Shipments       []shipmentModel `json:"shipments"`
	Vehicles        []vehicleModel  `json:"vehicles"`
	TimeWindowStart time.Time       `json:"time_window_start"`
	TimeWindowEnd   time.Time       `json:"time_window_end"`
}

type optimizeResponse struct {
	Routes []struct {
		VehicleIndex int        `json:"vehicle_index"`
		StartTime    *time.Time `json:"start_time"`
		EndTime      *time.Time `json:"end_time"`
		Visits       []struct {
			ShipmentIndex int `json:"shipment_index"`
		} `json:"visits"`
	} `json:"routes"`
}

// HTTPTourOptimizer implements ports.TourOptimizer against a remote
// vehicle-routing service. The solver is a black box: this adapter only
// translates the wire format; shipment and vehicle order is passed through
// untouched because the response references both positionally.
type HTTPTourOptimizer struct {
	client   *httpapi.Client
	apiKey   string
	endpoint string
}

func NewHTTPTourOptimizer(baseURL, apiKey string) (*HTTPTourOptimizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("optimizer api key is empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("optimizer base url is empty")
	}

	return &HTTPTourOptimizer{
		// Solver runs can take a while on large rosters; the timeout is
		// generous compared to the other adapters.
		client:   httpapi.New(120 * time.Second),
		apiKey:   apiKey,
		endpoint: strings.TrimRight(baseURL, "/") + "/v1/tours:optimize",
	}, nil
}

func (o *HTTPTourOptimizer) OptimizeTours(
	ctx context.Context,
	req ports.OptimizationRequest,
) (_ ports.OptimizationResponse, err error) {
	defer obs.Time(ctx, "optimizer.OptimizeTours")(&err)

	payload, err := json.Marshal(toWire(req))
	if err != nil {
		return ports.OptimizationResponse{}, fmt.Errorf("marshal optimization request: %w", err)
	}

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", o.apiKey)
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	})
	if err != nil {
		// Single error signal for the caller, carrying the upstream message.
		return ports.OptimizationResponse{}, fmt.Errorf("optimization failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.OptimizationResponse{}, fmt.Errorf("decode optimization response: %w", err)
	}

	out := ports.OptimizationResponse{Routes: make([]ports.SolverRoute, 0, len(decoded.Routes))}
	for _, r := range decoded.Routes {
		route := ports.SolverRoute{
			VehicleIndex: r.VehicleIndex,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Visits:       make([]ports.Visit, 0, len(r.Visits)),
		}
		for _, v := range r.Visits {
			route.Visits = append(route.Visits, ports.Visit{ShipmentIndex: v.ShipmentIndex})
		}
		out.Routes = append(out.Routes, route)
	}

	return out, nil
}

func toWire(req ports.OptimizationRequest) optimizeRequest {
	wire := optimizeRequest{
		Shipments:       make([]shipmentModel, 0, len(req.Shipments)),
		Vehicles:        make([]vehicleModel, 0, len(req.Vehicles)),
		TimeWindowStart: req.WindowStart,
		TimeWindowEnd:   req.WindowEnd,
	}

	for _, s := range req.Shipments {
		wire.Shipments = append(wire.Shipments, shipmentModel{
			PickupLocation:  toLatLng(s.PickupLocation),
			ServiceDuration: seconds(s.ServiceDuration),
		})
	}

	for _, v := range req.Vehicles {
		m := vehicleModel{
			StartLocation: toLatLng(v.StartLocation),
			EndLocation:   toLatLng(v.EndLocation),
			CostPerHour:   v.CostPerHour,
			MaxDuration:   seconds(v.MaxDuration),
		}
		if v.SoftMaxDuration > 0 {
			m.SoftMaxDuration = seconds(v.SoftMaxDuration)
			m.OverageCostMultiplier = v.OverageCostMultiplier
		}
		wire.Vehicles = append(wire.Vehicles, m)
	}

	return wire
}

func toLatLng(c domain.Coordinates) latLng {
	return latLng{Latitude: c.Lat, Longitude: c.Lon}
}

// Durations travel as whole-second strings, e.g. "2100s".
func seconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
