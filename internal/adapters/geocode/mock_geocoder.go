package geocode

import (
	"context"
	"fmt"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table; used in tests and
// offline runs.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(coords map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(coords))
	for addr, c := range coords {
		m[addr] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", address, ports.ErrNoGeocodeResult)
	}
	return c, nil
}
