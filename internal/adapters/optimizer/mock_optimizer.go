package optimizer

import (
	"context"

	"visit-route-service/internal/ports"
)

// MockTourOptimizer returns a canned response; used in tests.
type MockTourOptimizer struct {
	Response ports.OptimizationResponse
	Err      error

	// LastRequest records what the caller submitted.
	LastRequest ports.OptimizationRequest
}

func (m *MockTourOptimizer) OptimizeTours(
	ctx context.Context,
	req ports.OptimizationRequest,
) (ports.OptimizationResponse, error) {
	m.LastRequest = req
	if m.Err != nil {
		return ports.OptimizationResponse{}, m.Err
	}
	return m.Response, nil
}
