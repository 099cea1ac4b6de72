package domain

import "testing"

func TestNewCoupleCanonicalOrder(t *testing.T) {
	a := NewCouple("zoe durand", "ana martin")
	b := NewCouple("ana martin", "zoe durand")

	if a != b {
		t.Fatalf("couples built in reverse order differ: %v vs %v", a, b)
	}
	if a.First != "ana martin" || a.Second != "zoe durand" {
		t.Fatalf("couple not canonically ordered: %v", a)
	}

	if !a.Contains("zoe durand") || !a.Contains("ana martin") {
		t.Fatalf("couple should contain both members: %v", a)
	}
	if a.Contains("luc petit") {
		t.Fatalf("couple should not contain a stranger: %v", a)
	}
}

func TestCoupleDegenerate(t *testing.T) {
	if !NewCouple("ana martin", "ana martin").Degenerate() {
		t.Fatal("self-pair should be degenerate")
	}
	if NewCouple("ana martin", "zoe durand").Degenerate() {
		t.Fatal("two-person pair should not be degenerate")
	}
}

func TestPersonSharedSlots(t *testing.T) {
	p1 := Person{Name: "ana martin", Slots: []int{20195130, 20195131, 20195140}, Sector: 0b0011}
	p2 := Person{Name: "zoe durand", Slots: []int{20195131, 20195150}, Sector: 0b0110}

	shared := p1.SharedSlots(p2)
	if len(shared) != 1 || shared[0] != 20195131 {
		t.Fatalf("shared slots = %v, want [20195131]", shared)
	}

	if got := p1.SharedSector(p2); got != 0b0010 {
		t.Fatalf("shared sector = %b, want 10", got)
	}
}

func TestPersonSharedSlotsPreservesDuplicates(t *testing.T) {
	// A slot duplicated on one side yields one entry per matching pair.
	p1 := Person{Name: "a", Slots: []int{20195130, 20195130}}
	p2 := Person{Name: "b", Slots: []int{20195130}}

	if shared := p1.SharedSlots(p2); len(shared) != 2 {
		t.Fatalf("shared slots = %v, want two entries", shared)
	}
}

func TestItineraryHotelStops(t *testing.T) {
	it := Itinerary{
		WorkerID: 1,
		Stops:    []string{"depot", "hotel a", "hotel b", "depot"},
	}
	stops := it.HotelStops()
	if len(stops) != 2 || stops[0] != "hotel a" || stops[1] != "hotel b" {
		t.Fatalf("hotel stops = %v, want [hotel a hotel b]", stops)
	}

	empty := Itinerary{WorkerID: 2, Stops: []string{"depot", "depot"}}
	if got := empty.HotelStops(); len(got) != 0 {
		t.Fatalf("empty route should have no hotel stops, got %v", got)
	}
}
