package ports

import (
	"context"
	"visit-planner-service/internal/domain"
)

// Port: a boundary for retrieving raw shift records from a data source.
type ShiftRepository interface {
	// Retrieve all shift records available for pairing.
	ListShifts(ctx context.Context) ([]domain.ShiftRecord, error)
}

// Port: a boundary for retrieving hotels from a data source.
//
// The first hotel returned is the depot by convention: its address is the
// start and end point of every worker's route.
type HotelRepository interface {
	// Retrieve all hotels available for routing, depot first.
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
}
