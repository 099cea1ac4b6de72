package api

import (
	"log"
	"net/http"

	"visit-planner-service/internal/api/handlers"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/routing"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	shifts ports.ShiftRepository,
	hotels ports.HotelRepository,
	geocoder ports.Geocoder,
	distance routing.DistanceFn,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	pairingHandler := &handlers.PairingHandler{Repo: shifts, Logger: logger}
	itineraryHandler := &handlers.ItineraryHandler{
		Repo:     hotels,
		Geocoder: geocoder,
		Distance: distance,
		Logger:   logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/pairings", pairingHandler.Pair)
	mux.HandleFunc("/itineraries", itineraryHandler.Plan)

	return requestIDMiddleware(loggingMiddleware(mux))
}
