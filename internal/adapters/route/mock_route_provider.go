package route

import (
	"context"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"errors"
)

// MockRoute pairs two addresses with a fixed result for tests.
type MockRoute struct {
	From, To string
	Result   ports.RouteResult
}

type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(routes))
	for _, r := range routes {
		m[r.From+"|"+r.To] = r.Result
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, origin, destination string) (ports.RouteResult, error) {
	r, ok := p.m[origin+"|"+destination]
	if !ok {
		return ports.RouteResult{}, &domain.LookupError{
			Address: origin,
			Err:     errors.New("no mock route configured"),
		}
	}

	return r, nil
}
