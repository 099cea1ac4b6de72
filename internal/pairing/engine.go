package pairing

import (
	"context"
	"log"
	"visit-planner-service/internal/domain"
)

// DefaultSolutionLimit caps how many optimal assignments Satisfaction
// collects. The count of equally-optimal pairings grows combinatorially
// with interchangeable volunteers, so an unbounded enumeration can dwarf
// anything a caller could use.
const DefaultSolutionLimit = 10

// defaultMaxNodes bounds the search tree when the caller sets no context
// deadline.
const defaultMaxNodes = 4 << 20

// Config tunes a pairing Engine. Zero values select the defaults above;
// SolutionLimit < 0 removes the cap entirely.
type Config struct {
	SolutionLimit int
	MaxNodes      int
}

// SolutionSink receives one optimal assignment per discovered solution
// during Satisfaction. Returning false stops the enumeration. Delivery
// order is unspecified.
type SolutionSink func(domain.Assignment) bool

// Engine runs the two-phase pairing solve: Exploration finds the best
// achievable satisfaction score, Satisfaction enumerates every assignment
// achieving it. Each call builds a fresh model, so one Engine may serve
// concurrent solves.
type Engine struct {
	logger *log.Logger
	cfg    Config
}

func NewEngine(logger *log.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SolutionLimit == 0 {
		cfg.SolutionLimit = DefaultSolutionLimit
	}
	if cfg.MaxNodes == 0 {
		cfg.MaxNodes = defaultMaxNodes
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Result carries the outcome of a full two-phase solve.
type Result struct {
	ExplorationStatus  Status
	SatisfactionStatus Status
	Objective          int
	Assignments        []domain.Assignment
}

// Exploration maximizes the satisfaction objective and returns one optimal
// assignment along with the objective value to pin in Satisfaction.
//
// On any terminal failure the assignment is empty and the objective 0.
func (e *Engine) Exploration(ctx context.Context, persons []domain.Person) (Status, domain.Assignment, int) {
	model, err := BuildModel(persons)
	if err != nil {
		e.logger.Printf("pairing exploration: %v", err)
		return StatusModelInvalid, domain.Assignment{}, 0
	}

	s := newSearcher(ctx, model, e.cfg.MaxNodes)
	best, picked, complete := s.maximize()

	switch {
	case complete:
		if len(picked) == 0 {
			e.logger.Printf("pairing exploration: no couple can be formed")
		}
		return StatusOptimal, model.assignment(picked), best
	case len(picked) > 0:
		// Search budget exhausted with an incumbent in hand.
		e.logger.Printf("pairing exploration: search truncated after %d nodes, best=%d", s.nodes, best)
		return StatusFeasible, model.assignment(picked), best
	default:
		e.logger.Printf("pairing exploration: search truncated after %d nodes with no solution", s.nodes)
		return StatusUnknown, domain.Assignment{}, 0
	}
}

// Satisfaction enumerates every assignment whose objective equals the
// value found by Exploration. Solutions stream through sink (may be nil)
// and are also collected into the returned slice, capped by the configured
// solution limit.
func (e *Engine) Satisfaction(ctx context.Context, persons []domain.Person, objective int, sink SolutionSink) (Status, []domain.Assignment) {
	model, err := BuildModel(persons)
	if err != nil {
		e.logger.Printf("pairing satisfaction: %v", err)
		return StatusModelInvalid, nil
	}
	if objective < 0 {
		e.logger.Printf("pairing satisfaction: negative pinned objective %d", objective)
		return StatusModelInvalid, nil
	}

	var solutions []domain.Assignment
	limit := e.cfg.SolutionLimit

	s := newSearcher(ctx, model, e.cfg.MaxNodes)
	count, complete := s.enumerate(objective, func(picked []int) bool {
		a := model.assignment(picked)
		solutions = append(solutions, a)
		if sink != nil && !sink(a) {
			return false
		}
		return limit < 0 || len(solutions) < limit
	})

	switch {
	case s.aborted:
		e.logger.Printf("pairing satisfaction: search truncated after %d nodes", s.nodes)
		return StatusUnknown, nil
	case count == 0:
		// The pinned objective is unreachable: nothing satisfies the
		// equality constraint.
		return StatusInfeasible, nil
	case complete:
		return StatusOptimal, solutions
	default:
		e.logger.Printf("pairing satisfaction: stopped after %d solutions", len(solutions))
		return StatusFeasible, solutions
	}
}

// SolveCouples runs both phases back to back: find the optimal objective,
// then collect every assignment achieving it.
func (e *Engine) SolveCouples(ctx context.Context, persons []domain.Person) Result {
	explorationStatus, _, objective := e.Exploration(ctx, persons)
	e.logger.Printf("pairing exploration: status=%s objective=%d", explorationStatus, objective)

	res := Result{
		ExplorationStatus: explorationStatus,
		Objective:         objective,
	}
	if !explorationStatus.Success() {
		res.SatisfactionStatus = explorationStatus
		return res
	}

	satisfactionStatus, assignments := e.Satisfaction(ctx, persons, objective, nil)
	e.logger.Printf("pairing satisfaction: status=%s solutions=%d", satisfactionStatus, len(assignments))

	res.SatisfactionStatus = satisfactionStatus
	res.Assignments = assignments
	return res
}
