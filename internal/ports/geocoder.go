package ports

import (
	"context"
	"errors"

	"visit-route-service/internal/domain"
)

// ErrNoGeocodeResult signals that the upstream service found no match for
// an address. Callers treat it as "address has no coordinates", not as a
// pipeline failure.
var ErrNoGeocodeResult = errors.New("no geocode result")

// Contract for resolving a street address to geographic coordinates.
type Geocoder interface {
	// Return coordinates for an address, or ErrNoGeocodeResult when the
	// upstream service has no match.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
