package routing

import (
	"errors"
	"fmt"
	"log"
	"math"
	"visit-planner-service/internal/domain"
)

// NodeKind distinguishes the three node families of the routing model.
type NodeKind int

const (
	NodeStart NodeKind = iota
	NodeEnd
	NodeHotel
)

// Node ties a matrix row to its location label. Keeping this table explicit
// (instead of reusing positional indices after unresolved locations are
// dropped) is what keeps labels aligned with the right distances.
type Node struct {
	Label   string
	Kind    NodeKind
	Vehicle int // owning vehicle for start/end nodes, -1 for hotels
	Coord   domain.Coordinates
}

// DistanceFn returns the great-circle distance between two points in
// kilometers.
type DistanceFn func(a, b domain.Coordinates) float64

// Matrix is the integer-meter distance matrix over all resolvable
// locations, ordered as worker start nodes, worker end nodes, then hotel
// nodes. It is symmetric by construction.
type Matrix struct {
	Nodes       []Node
	Dist        [][]int
	NumVehicles int
}

// BuildMatrix assembles the node table and distance matrix for a solve.
//
// Every worker starts and ends at the depot. Hotels without a resolved
// point are dropped from the matrix entirely; each drop is logged loudly
// because it silently shrinks the problem the solver sees.
func BuildMatrix(logger *log.Logger, depot domain.Hotel, hotels []domain.Hotel, numWorkers int, distance DistanceFn) (*Matrix, error) {
	if logger == nil {
		logger = log.Default()
	}
	if numWorkers <= 0 {
		return nil, fmt.Errorf("build matrix: worker count must be positive, got %d", numWorkers)
	}
	if distance == nil {
		return nil, errors.New("build matrix: distance function is required")
	}
	if depot.Point == nil {
		return nil, fmt.Errorf("build matrix: depot %q has no resolved point", depot.Label())
	}

	nodes := make([]Node, 0, 2*numWorkers+len(hotels))
	for v := 0; v < numWorkers; v++ {
		nodes = append(nodes, Node{Label: depot.Label(), Kind: NodeStart, Vehicle: v, Coord: *depot.Point})
	}
	for v := 0; v < numWorkers; v++ {
		nodes = append(nodes, Node{Label: depot.Label(), Kind: NodeEnd, Vehicle: v, Coord: *depot.Point})
	}

	dropped := 0
	for _, h := range hotels {
		if h.Point == nil {
			dropped++
			logger.Printf("build matrix: dropping hotel %q: address did not resolve", h.Label())
			continue
		}
		nodes = append(nodes, Node{Label: h.Label(), Kind: NodeHotel, Vehicle: -1, Coord: *h.Point})
	}
	if dropped > 0 {
		logger.Printf("build matrix: %d of %d hotels dropped, routing problem is smaller than the input", dropped, len(hotels))
	}

	dist := make([][]int, len(nodes))
	for i := range nodes {
		row := make([]int, len(nodes))
		for j := range nodes {
			km := distance(nodes[i].Coord, nodes[j].Coord)
			row[j] = int(math.Round(km * 1000))
		}
		dist[i] = row
	}

	return &Matrix{
		Nodes:       nodes,
		Dist:        dist,
		NumVehicles: numWorkers,
	}, nil
}

// Start returns the node index of the given vehicle's start position.
func (m *Matrix) Start(vehicle int) int { return vehicle }

// End returns the node index of the given vehicle's end position.
func (m *Matrix) End(vehicle int) int { return m.NumVehicles + vehicle }

// HotelNodes returns the node indices of every visitable hotel.
func (m *Matrix) HotelNodes() []int {
	out := make([]int, 0, len(m.Nodes)-2*m.NumVehicles)
	for i := 2 * m.NumVehicles; i < len(m.Nodes); i++ {
		out = append(out, i)
	}
	return out
}
