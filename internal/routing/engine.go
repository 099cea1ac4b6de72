package routing

import (
	"context"
	"errors"
	"log"
	"visit-planner-service/internal/domain"
)

// DefaultMaxVisitsPerDay is the visit-count capacity of one worker: the
// number of distinct hotels a couple can reasonably cover within a day.
const DefaultMaxVisitsPerDay = 8

// ErrInfeasible is returned when no assignment of hotels to workers
// satisfies the capacity constraints (e.g. more hotels than the combined
// daily capacity). Expected outcome, not a programming error.
var ErrInfeasible = errors.New("routing: no feasible assignment of hotels to workers")

// Config tunes a routing Engine. Zero values select the defaults.
type Config struct {
	MaxVisitsPerDay int
	// TwoOptPasses bounds the per-route improvement loop; negative
	// disables improvement entirely.
	TwoOptPasses int
}

// Engine assigns hotels to worker routes minimizing travel distance under
// per-worker visit capacity. Construction follows the cheapest-arc
// heuristic: at each step the globally cheapest feasible extension of any
// route end is appended. A bounded 2-opt pass then untangles each route.
//
// Each Solve builds fresh state, so one Engine may serve concurrent solves.
type Engine struct {
	logger *log.Logger
	cfg    Config
}

func NewEngine(logger *log.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxVisitsPerDay == 0 {
		cfg.MaxVisitsPerDay = DefaultMaxVisitsPerDay
	}
	if cfg.TwoOptPasses == 0 {
		cfg.TwoOptPasses = 8
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Solve produces one itinerary per vehicle covering every hotel node in
// the matrix, or ErrInfeasible when capacity cannot cover them all.
func (e *Engine) Solve(ctx context.Context, m *Matrix) ([]domain.Itinerary, error) {
	if m == nil || m.NumVehicles <= 0 {
		return nil, errors.New("routing: matrix with at least one vehicle is required")
	}

	routes := make([][]int, m.NumVehicles)
	loads := make([]int, m.NumVehicles)
	for v := range routes {
		routes[v] = []int{m.Start(v)}
	}

	unvisited := make(map[int]bool)
	for _, h := range m.HotelNodes() {
		unvisited[h] = true
	}

	// Cheapest-arc construction: repeatedly append the cheapest feasible
	// (route end -> unvisited hotel) arc over all vehicles. Ties break on
	// the lowest vehicle then node index so solves are deterministic.
	for len(unvisited) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bestV, bestH, bestD := -1, -1, 0
		for v := 0; v < m.NumVehicles; v++ {
			if loads[v] >= e.cfg.MaxVisitsPerDay {
				continue
			}
			end := routes[v][len(routes[v])-1]
			for h := 2 * m.NumVehicles; h < len(m.Nodes); h++ {
				if !unvisited[h] {
					continue
				}
				d := m.Dist[end][h]
				if bestV == -1 || d < bestD {
					bestV, bestH, bestD = v, h, d
				}
			}
		}

		if bestV == -1 {
			// Every vehicle is at capacity with hotels still unserved.
			e.logger.Printf("routing: %d hotels unserved with all %d workers at capacity %d", len(unvisited), m.NumVehicles, e.cfg.MaxVisitsPerDay)
			return nil, ErrInfeasible
		}

		routes[bestV] = append(routes[bestV], bestH)
		loads[bestV]++
		delete(unvisited, bestH)
	}

	for v := range routes {
		routes[v] = append(routes[v], m.End(v))
		if e.cfg.TwoOptPasses > 0 {
			routes[v] = e.improveRoute(m, routes[v])
		}
	}

	itineraries := make([]domain.Itinerary, 0, m.NumVehicles)
	for v, route := range routes {
		stops := make([]string, 0, len(route))
		total := 0
		for i, node := range route {
			stops = append(stops, m.Nodes[node].Label)
			if i > 0 {
				total += m.Dist[route[i-1]][node]
			}
		}
		itineraries = append(itineraries, domain.Itinerary{
			WorkerID:            v,
			Stops:               stops,
			TotalDistanceMeters: total,
		})
	}
	return itineraries, nil
}

// improveRoute applies 2-opt segment reversals to one route, endpoints
// fixed, until no pass improves the distance or the pass budget runs out.
func (e *Engine) improveRoute(m *Matrix, route []int) []int {
	best := append([]int(nil), route...)
	bestDist := routeDistance(m, best)
	n := len(best)

	for pass := 0; pass < e.cfg.TwoOptPasses; pass++ {
		improved := false
		for i := 1; i < n-2; i++ {
			for k := i + 1; k < n-1; k++ {
				cand := twoOptSwap(best, i, k)
				if d := routeDistance(m, cand); d < bestDist {
					best = cand
					bestDist = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

// twoOptSwap reverses the segment route[i..k].
func twoOptSwap(route []int, i, k int) []int {
	out := make([]int, len(route))
	copy(out, route[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = route[j]
		pos++
	}
	copy(out[pos:], route[k+1:])
	return out
}

func routeDistance(m *Matrix, route []int) int {
	total := 0
	for i := 1; i < len(route); i++ {
		total += m.Dist[route[i-1]][route[i]]
	}
	return total
}
