package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/adapters/httpapi"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
)

// Cache is the persistent address -> coordinates lookup consulted before
// any upstream call. A nil cache is valid and means every lookup goes
// upstream.
type Cache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// HTTPGeocoder implements ports.Geocoder against a Pelias-style
// /geocode/search endpoint, with a persistent cache in front of it.
type HTTPGeocoder struct {
	client  *httpapi.Client
	apiKey  string
	baseURL string
	cache   Cache
	log     *zap.Logger
}

func NewHTTPGeocoder(baseURL, apiKey string, cache Cache, log *zap.Logger) (*HTTPGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("geocoder api key is empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("geocoder base url is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &HTTPGeocoder{
		client:  httpapi.New(10 * time.Second),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
		log:     log,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *HTTPGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address, preferring the cache over the upstream
// service. Cache write failures are logged, never surfaced.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Geocode")(&err)

	norm := g.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache: %w", err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coord, err := g.fetch(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			g.log.Warn("geocode cache write failed", zap.Error(err))
		}
	}

	return coord, nil
}

func (g *HTTPGeocoder) fetch(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", g.apiKey)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("text", address)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrNoGeocodeResult)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: invalid coordinate format", address)
	}

	// Upstream returns [lon, lat].
	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
