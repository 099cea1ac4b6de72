package services

import (
	"context"
	"fmt"
	"log"
	"visit-planner-service/internal/availability"
	"visit-planner-service/internal/pairing"
	"visit-planner-service/internal/ports"
)

type PairVolunteersRequest struct {
	// SolutionLimit caps the number of enumerated optimal pairings;
	// 0 uses the engine default, negative removes the cap.
	SolutionLimit int
}

// PairVolunteers runs the full pairing stage: raw shift records are
// normalized into persons, then the two-phase engine finds the optimal
// satisfaction score and enumerates every pairing achieving it.
//
// Expected infeasibility is reported through the result statuses; an error
// means the inputs could not be read or were malformed.
func PairVolunteers(
	ctx context.Context,
	req PairVolunteersRequest,
	repo ports.ShiftRepository,
	logger *log.Logger,
) (pairing.Result, error) {
	if logger == nil {
		logger = log.Default()
	}

	shifts, err := repo.ListShifts(ctx)
	if err != nil {
		return pairing.Result{}, fmt.Errorf("pair volunteers: list shifts: %w", err)
	}

	persons, err := availability.NewNormalizer(logger).Normalize(shifts)
	if err != nil {
		return pairing.Result{}, fmt.Errorf("pair volunteers: %w", err)
	}

	engine := pairing.NewEngine(logger, pairing.Config{SolutionLimit: req.SolutionLimit})
	return engine.SolveCouples(ctx, persons), nil
}
