package routing

import (
	"context"
	"io"
	"log"
	"math"
	"testing"
	"visit-planner-service/internal/domain"

	"github.com/stretchr/testify/require"
)

// planarKm treats coordinates as kilometer offsets on a plane, which keeps
// expected distances easy to read in tests.
func planarKm(a, b domain.Coordinates) float64 {
	dx := a.Lon - b.Lon
	dy := a.Lat - b.Lat
	return math.Sqrt(dx*dx + dy*dy)
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func point(lon, lat float64) *domain.Coordinates {
	return &domain.Coordinates{Lon: lon, Lat: lat}
}

func testDepot() domain.Hotel {
	return domain.Hotel{Name: "HQ", Address: "1 rue du depot", Postcode: "75001", Point: point(0, 0)}
}

func TestBuildMatrixLayout(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "hotel a", Postcode: "75002", Point: point(1, 0)},
		{Address: "hotel b", Postcode: "75003", Point: point(0, 2)},
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 2, planarKm)
	require.NoError(t, err)

	// 2 starts, 2 ends, 2 hotels.
	require.Len(t, m.Nodes, 6)
	require.Equal(t, NodeStart, m.Nodes[m.Start(0)].Kind)
	require.Equal(t, NodeStart, m.Nodes[m.Start(1)].Kind)
	require.Equal(t, NodeEnd, m.Nodes[m.End(0)].Kind)
	require.Equal(t, NodeEnd, m.Nodes[m.End(1)].Kind)
	require.Equal(t, []int{4, 5}, m.HotelNodes())

	// Distances are meters, rounded from kilometers.
	require.Equal(t, 1000, m.Dist[m.Start(0)][4])
	require.Equal(t, 2000, m.Dist[m.Start(0)][5])

	// Symmetric within 1 meter.
	for i := range m.Nodes {
		for j := range m.Nodes {
			diff := m.Dist[i][j] - m.Dist[j][i]
			require.LessOrEqual(t, diff*diff, 1, "matrix not symmetric at %d,%d", i, j)
		}
	}
}

func TestBuildMatrixDropsUnresolvedHotels(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "hotel a", Postcode: "75002", Point: point(1, 0)},
		{Address: "hotel fantome", Postcode: "75004"}, // never resolved
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 1, planarKm)
	require.NoError(t, err)

	for _, n := range m.Nodes {
		require.NotEqual(t, "hotel fantome 75004", n.Label)
	}
	require.Len(t, m.HotelNodes(), 1)
}

func TestBuildMatrixRejectsUnresolvedDepot(t *testing.T) {
	depot := domain.Hotel{Address: "nowhere"}
	_, err := BuildMatrix(quietLogger(), depot, nil, 1, planarKm)
	require.Error(t, err)
}

func TestSolveSingleWorkerToursAllHotels(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "hotel a", Postcode: "75002", Point: point(1, 0)},
		{Address: "hotel b", Postcode: "75003", Point: point(2, 0)},
		{Address: "hotel c", Postcode: "75004", Point: point(3, 0)},
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 1, planarKm)
	require.NoError(t, err)

	engine := NewEngine(quietLogger(), Config{})
	itineraries, err := engine.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, itineraries, 1)

	it := itineraries[0]
	require.Equal(t, "1 rue du depot 75001", it.Stops[0])
	require.Equal(t, "1 rue du depot 75001", it.Stops[len(it.Stops)-1])
	require.ElementsMatch(t, []string{"hotel a 75002", "hotel b 75003", "hotel c 75004"}, it.HotelStops())

	// Hotels on a line: out-and-back is optimal, 3 km out + 3 km back.
	require.Equal(t, 6000, it.TotalDistanceMeters)
}

func TestSolveRespectsCapacity(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "a", Point: point(1, 0)},
		{Address: "b", Point: point(0, 1)},
		{Address: "c", Point: point(-1, 0)},
		{Address: "d", Point: point(0, -1)},
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 2, planarKm)
	require.NoError(t, err)

	engine := NewEngine(quietLogger(), Config{MaxVisitsPerDay: 2})
	itineraries, err := engine.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, itineraries, 2)

	visited := make([]string, 0, 4)
	for _, it := range itineraries {
		require.LessOrEqual(t, len(it.HotelStops()), 2)
		require.Equal(t, it.Stops[0], it.Stops[len(it.Stops)-1])
		visited = append(visited, it.HotelStops()...)
	}
	require.ElementsMatch(t, []string{"a", "b", "c", "d"}, visited)
}

func TestSolveInfeasibleWhenCapacityTooSmall(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "a", Point: point(1, 0)},
		{Address: "b", Point: point(2, 0)},
		{Address: "c", Point: point(3, 0)},
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 1, planarKm)
	require.NoError(t, err)

	engine := NewEngine(quietLogger(), Config{MaxVisitsPerDay: 2})
	_, err = engine.Solve(context.Background(), m)
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveDeterministic(t *testing.T) {
	hotels := []domain.Hotel{
		{Address: "a", Point: point(1, 1)},
		{Address: "b", Point: point(2, -1)},
		{Address: "c", Point: point(-1, 2)},
		{Address: "d", Point: point(-2, -2)},
		{Address: "e", Point: point(3, 3)},
	}

	m, err := BuildMatrix(quietLogger(), testDepot(), hotels, 2, planarKm)
	require.NoError(t, err)

	engine := NewEngine(quietLogger(), Config{})
	first, err := engine.Solve(context.Background(), m)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := engine.Solve(context.Background(), m)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSolveEmptyHotelSet(t *testing.T) {
	m, err := BuildMatrix(quietLogger(), testDepot(), nil, 2, planarKm)
	require.NoError(t, err)

	engine := NewEngine(quietLogger(), Config{})
	itineraries, err := engine.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, itineraries, 2)
	for _, it := range itineraries {
		require.Empty(t, it.HotelStops())
		require.Zero(t, it.TotalDistanceMeters)
	}
}
