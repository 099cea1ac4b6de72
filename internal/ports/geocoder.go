package ports

import (
	"context"
	"visit-planner-service/internal/domain"
)

// Contract for resolving a postal address to geographic coordinates.
//
// A lookup that completes but matches nothing returns ok=false with a nil
// error: "no match" is an expected outcome, not a failure. Errors are
// reserved for infrastructure problems (network, malformed responses).
type Geocoder interface {
	// Resolve an address and optional postcode to coordinates.
	Resolve(ctx context.Context, address string, postcode string) (coord domain.Coordinates, ok bool, err error)
}

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Resolve many addresses at once; addresses without a match are simply
	// absent from the result map.
	ResolveMany(ctx context.Context, addresses []Address) (map[Address]domain.Coordinates, error)
}

// Address is the lookup key for geocoding: a free-form address line plus an
// optional postcode used to narrow the search.
type Address struct {
	Line     string
	Postcode string
}
