package geo

import (
	"context"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
)

type MockPoint struct {
	Address  string
	Postcode string
	Lon, Lat float64
}

// MockGeocoder resolves from a fixed table; any address not in the table
// is "no match". Intended for tests and offline runs.
type MockGeocoder struct {
	m map[ports.Address]domain.Coordinates
}

func NewMockGeocoder(points []MockPoint) *MockGeocoder {
	m := make(map[ports.Address]domain.Coordinates, len(points))
	for _, p := range points {
		m[ports.Address{Line: p.Address, Postcode: p.Postcode}] = domain.Coordinates{Lon: p.Lon, Lat: p.Lat}
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Resolve(ctx context.Context, address, postcode string) (domain.Coordinates, bool, error) {
	c, ok := g.m[ports.Address{Line: address, Postcode: postcode}]
	return c, ok, nil
}

func (g *MockGeocoder) ResolveMany(ctx context.Context, addresses []ports.Address) (map[ports.Address]domain.Coordinates, error) {
	out := make(map[ports.Address]domain.Coordinates, len(addresses))
	for _, a := range addresses {
		if c, ok := g.m[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}
