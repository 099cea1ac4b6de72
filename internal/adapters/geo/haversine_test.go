package geo

import (
	"math"
	"testing"
	"visit-planner-service/internal/domain"
)

func TestHaversineKm(t *testing.T) {
	paris := domain.Coordinates{Lon: 2.3522, Lat: 48.8566}
	marseille := domain.Coordinates{Lon: 5.3698, Lat: 43.2965}

	d := HaversineKm(paris, marseille)

	// Great-circle Paris-Marseille is about 660 km.
	if d < 650 || d > 670 {
		t.Fatalf("distance = %.1f km, want about 660", d)
	}

	if back := HaversineKm(marseille, paris); math.Abs(back-d) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", d, back)
	}

	if z := HaversineKm(paris, paris); z != 0 {
		t.Fatalf("distance to self = %v, want 0", z)
	}
}
