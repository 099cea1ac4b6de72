package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/routing"
)

type PlanVisitsRequest struct {
	WorkerCount     int
	MaxVisitsPerDay int
}

// PlanVisits runs the full routing stage: hotels are resolved to points,
// the distance matrix is built over workers and hotels, and the capacity-
// constrained routing engine produces one itinerary per worker.
//
// The first hotel record is the depot. Hotels that cannot be resolved are
// dropped from the problem (logged loudly, never fatal); geocoder errors
// for one address degrade to "unresolved" for that address only.
// routing.ErrInfeasible propagates when capacity cannot cover the hotels.
func PlanVisits(
	ctx context.Context,
	req PlanVisitsRequest,
	repo ports.HotelRepository,
	geocoder ports.Geocoder,
	distance routing.DistanceFn,
	logger *log.Logger,
) ([]domain.Itinerary, error) {
	if logger == nil {
		logger = log.Default()
	}
	if req.WorkerCount < 1 {
		return nil, fmt.Errorf("plan visits: worker count must be at least 1, got %d", req.WorkerCount)
	}

	hotels, err := repo.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan visits: list hotels: %w", err)
	}
	if len(hotels) == 0 {
		return nil, errors.New("plan visits: no hotels: the first record must be the depot")
	}

	if err := resolveHotels(ctx, hotels, geocoder, logger); err != nil {
		return nil, fmt.Errorf("plan visits: %w", err)
	}

	depot := hotels[0]
	targets := hotels[1:]

	matrix, err := routing.BuildMatrix(logger, depot, targets, req.WorkerCount, distance)
	if err != nil {
		return nil, fmt.Errorf("plan visits: %w", err)
	}

	engine := routing.NewEngine(logger, routing.Config{MaxVisitsPerDay: req.MaxVisitsPerDay})
	itineraries, err := engine.Solve(ctx, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan visits: %w", err)
	}
	return itineraries, nil
}

// resolveHotels fills in missing hotel points in place. A batched geocoder
// is preferred to reduce external API calls; a failing batch degrades to
// per-address lookups, and a failing lookup leaves the hotel unresolved.
func resolveHotels(ctx context.Context, hotels []domain.Hotel, geocoder ports.Geocoder, logger *log.Logger) error {
	if geocoder == nil {
		return errors.New("resolve hotels: geocoder is required")
	}

	pending := make([]int, 0, len(hotels))
	for i := range hotels {
		if hotels[i].Point == nil {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if bg, ok := geocoder.(ports.BatchGeocoder); ok {
		addrs := make([]ports.Address, 0, len(pending))
		for _, i := range pending {
			addrs = append(addrs, ports.Address{Line: hotels[i].Address, Postcode: hotels[i].Postcode})
		}

		results, err := bg.ResolveMany(ctx, addrs)
		if err != nil {
			logger.Printf("resolve hotels: batch lookup failed, falling back to per-address lookups: %v", err)
		} else {
			// A batch that succeeded already knows its misses: absent
			// addresses are no-matches, not worth a second lookup.
			for _, i := range pending {
				addr := ports.Address{Line: hotels[i].Address, Postcode: hotels[i].Postcode}
				if c, ok := results[addr]; ok {
					coord := c
					hotels[i].Point = &coord
					continue
				}
				logger.Printf("resolve hotels: no match for %q", hotels[i].Label())
			}
			return nil
		}
	}

	for _, i := range pending {
		if hotels[i].Point != nil {
			continue
		}
		coord, ok, err := geocoder.Resolve(ctx, hotels[i].Address, hotels[i].Postcode)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Printf("resolve hotels: lookup for %q failed, treating as unresolved: %v", hotels[i].Label(), err)
			continue
		}
		if !ok {
			logger.Printf("resolve hotels: no match for %q", hotels[i].Label())
			continue
		}
		hotels[i].Point = &coord
	}
	return nil
}
