package services

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"visit-planner-service/internal/adapters/geo"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/pairing"
	"visit-planner-service/internal/routing"
)

type fakeHotelRepo struct{ hotels []domain.Hotel }

func (f *fakeHotelRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, len(f.hotels))
	copy(out, f.hotels)
	return out, nil
}

type fakeShiftRepo struct{ shifts []domain.ShiftRecord }

func (f *fakeShiftRepo) ListShifts(ctx context.Context) ([]domain.ShiftRecord, error) {
	return f.shifts, nil
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestPlanVisitsEndToEnd(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []domain.Hotel{
		{Address: "1 rue du depot", Postcode: "75001"},
		{Address: "hotel a", Postcode: "75002"},
		{Address: "hotel b", Postcode: "75003"},
		{Address: "hotel c", Postcode: "75004"},
	}}

	// Points roughly 1-3 km east of the depot.
	geocoder := geo.NewMockGeocoder([]geo.MockPoint{
		{Address: "1 rue du depot", Postcode: "75001", Lon: 2.35, Lat: 48.85},
		{Address: "hotel a", Postcode: "75002", Lon: 2.36, Lat: 48.85},
		{Address: "hotel b", Postcode: "75003", Lon: 2.37, Lat: 48.85},
		{Address: "hotel c", Postcode: "75004", Lon: 2.38, Lat: 48.85},
	})

	req := PlanVisitsRequest{WorkerCount: 1}
	itineraries, err := PlanVisits(context.Background(), req, repo, geocoder, geo.HaversineKm, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(itineraries) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(itineraries))
	}

	it := itineraries[0]
	if it.Stops[0] != "1 rue du depot 75001" || it.Stops[len(it.Stops)-1] != "1 rue du depot 75001" {
		t.Fatalf("route must start and end at the depot, got %v", it.Stops)
	}
	if len(it.HotelStops()) != 3 {
		t.Fatalf("expected 3 hotel visits, got %v", it.HotelStops())
	}
	if it.TotalDistanceMeters <= 0 {
		t.Fatalf("expected positive total distance, got %d", it.TotalDistanceMeters)
	}
}

func TestPlanVisitsDropsUnresolvedHotels(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []domain.Hotel{
		{Address: "1 rue du depot", Postcode: "75001"},
		{Address: "hotel a", Postcode: "75002"},
		{Address: "hotel fantome", Postcode: "75099"}, // not in the geocoder table
	}}

	geocoder := geo.NewMockGeocoder([]geo.MockPoint{
		{Address: "1 rue du depot", Postcode: "75001", Lon: 2.35, Lat: 48.85},
		{Address: "hotel a", Postcode: "75002", Lon: 2.36, Lat: 48.85},
	})

	req := PlanVisitsRequest{WorkerCount: 1}
	itineraries, err := PlanVisits(context.Background(), req, repo, geocoder, geo.HaversineKm, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, it := range itineraries {
		for _, stop := range it.Stops {
			if stop == "hotel fantome 75099" {
				t.Fatalf("unresolved hotel must not appear in any route: %v", it.Stops)
			}
		}
	}
}

func TestPlanVisitsInfeasibleCapacity(t *testing.T) {
	hotels := []domain.Hotel{{Address: "1 rue du depot", Postcode: "75001"}}
	points := []geo.MockPoint{{Address: "1 rue du depot", Postcode: "75001", Lon: 2.35, Lat: 48.85}}
	for _, name := range []string{"a", "b", "c"} {
		hotels = append(hotels, domain.Hotel{Address: "hotel " + name})
		points = append(points, geo.MockPoint{Address: "hotel " + name, Lon: 2.36, Lat: 48.85})
	}

	repo := &fakeHotelRepo{hotels: hotels}
	geocoder := geo.NewMockGeocoder(points)

	req := PlanVisitsRequest{WorkerCount: 1, MaxVisitsPerDay: 2}
	_, err := PlanVisits(context.Background(), req, repo, geocoder, geo.HaversineKm, testLogger())
	if !errors.Is(err, routing.ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestPlanVisitsUnresolvedDepotFails(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []domain.Hotel{
		{Address: "nowhere"},
		{Address: "hotel a"},
	}}
	geocoder := geo.NewMockGeocoder([]geo.MockPoint{
		{Address: "hotel a", Lon: 2.36, Lat: 48.85},
	})

	req := PlanVisitsRequest{WorkerCount: 1}
	if _, err := PlanVisits(context.Background(), req, repo, geocoder, geo.HaversineKm, testLogger()); err == nil {
		t.Fatal("expected error when the depot cannot be resolved")
	}
}

func TestPairVolunteersEndToEnd(t *testing.T) {
	repo := &fakeShiftRepo{shifts: []domain.ShiftRecord{
		{FirstName: "Ana", LastName: "Martin", Date: "13/05/2019", TimeOfDay: "jour", Area1: true},
		{FirstName: "Zoe", LastName: "Durand", Date: "13/05/2019", TimeOfDay: "matin", Area1: true, Area2: true},
		{FirstName: "Luc", LastName: "Petit", Date: "20/05/2019", TimeOfDay: "matin", Area2: true},
	}}

	res, err := PairVolunteers(context.Background(), PairVolunteersRequest{}, repo, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.ExplorationStatus.Success() {
		t.Fatalf("exploration status = %s, want success", res.ExplorationStatus)
	}
	if len(res.Assignments) != 1 {
		t.Fatalf("expected exactly one optimal pairing, got %d", len(res.Assignments))
	}

	only := res.Assignments[0]
	if _, ok := only[domain.NewCouple("Ana Martin", "Zoe Durand")]; !ok {
		t.Fatalf("expected Ana/Zoe pairing, got %v", only)
	}
}

func TestPairVolunteersBadDateFails(t *testing.T) {
	repo := &fakeShiftRepo{shifts: []domain.ShiftRecord{
		{FirstName: "Ana", LastName: "Martin", Date: "not-a-date", TimeOfDay: "matin", Area1: true},
	}}

	if _, err := PairVolunteers(context.Background(), PairVolunteersRequest{}, repo, testLogger()); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestPairVolunteersEmptyPool(t *testing.T) {
	repo := &fakeShiftRepo{}

	res, err := PairVolunteers(context.Background(), PairVolunteersRequest{}, repo, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExplorationStatus != pairing.StatusModelInvalid {
		t.Fatalf("status = %s, want MODEL_INVALID for empty pool", res.ExplorationStatus)
	}
}
