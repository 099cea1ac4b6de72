package geo

import (
	"visit-planner-service/internal/domain"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers, computed on the unit sphere and scaled by the earth radius.
func HaversineKm(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}
