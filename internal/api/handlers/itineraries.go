package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/routing"
	"visit-planner-service/internal/services"
)

type ItineraryHandler struct {
	Repo     ports.HotelRepository
	Geocoder ports.Geocoder
	Distance routing.DistanceFn
	Logger   *log.Logger
}

// Plan resolves the stored hotels and computes one capacity-constrained
// visit itinerary per worker.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	workerCount := req.WorkerCount
	if workerCount == 0 {
		workerCount = 1
	}
	if workerCount < 1 || workerCount > 50 {
		writeError(w, r, http.StatusBadRequest, "worker_count must be between 1 and 50")
		return
	}

	maxVisits := req.MaxVisitsPerDay
	if maxVisits == 0 {
		maxVisits = routing.DefaultMaxVisitsPerDay
	}
	if maxVisits < 1 || maxVisits > 100 {
		writeError(w, r, http.StatusBadRequest, "max_visits_per_day must be between 1 and 100")
		return
	}

	svcReq := services.PlanVisitsRequest{
		WorkerCount:     workerCount,
		MaxVisitsPerDay: maxVisits,
	}

	itineraries, err := services.PlanVisits(r.Context(), svcReq, h.Repo, h.Geocoder, h.Distance, h.Logger)
	if err != nil {
		if errors.Is(err, routing.ErrInfeasible) {
			writeError(w, r, http.StatusUnprocessableEntity, "not enough worker capacity to visit every hotel")
			return
		}
		log.Printf("plan visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListItinerariesResponse{Itineraries: make([]dto.ItineraryResponse, 0, len(itineraries))}
	for _, it := range itineraries {
		res.Itineraries = append(res.Itineraries, dto.ItineraryResponse{
			WorkerID:            it.WorkerID,
			Stops:               it.Stops,
			TotalDistanceMeters: it.TotalDistanceMeters,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
