package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/services"
)

type PairingHandler struct {
	Repo   ports.ShiftRepository
	Logger *log.Logger
}

// Pair runs the full two-phase pairing solve over the stored shift
// records and returns every optimal pairing found.
func (h *PairingHandler) Pair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PairingRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.PairVolunteersRequest{SolutionLimit: req.SolutionLimit}

	result, err := services.PairVolunteers(r.Context(), svcReq, h.Repo, h.Logger)
	if err != nil {
		log.Printf("pair volunteers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PairingResponse{
		ExplorationStatus:  string(result.ExplorationStatus),
		SatisfactionStatus: string(result.SatisfactionStatus),
		Objective:          result.Objective,
		Solutions:          make([]dto.SolutionResponse, 0, len(result.Assignments)),
	}
	for _, a := range result.Assignments {
		res.Solutions = append(res.Solutions, solutionResponse(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func solutionResponse(a domain.Assignment) dto.SolutionResponse {
	couples := make([]dto.CoupleResponse, 0, len(a))
	for c, share := range a {
		couples = append(couples, dto.CoupleResponse{
			First:  c.First,
			Second: c.Second,
			Slots:  share.Slots,
			Sector: share.Sector,
		})
	}
	sort.Slice(couples, func(i, j int) bool {
		if couples[i].First != couples[j].First {
			return couples[i].First < couples[j].First
		}
		return couples[i].Second < couples[j].Second
	})
	return dto.SolutionResponse{Couples: couples}
}
