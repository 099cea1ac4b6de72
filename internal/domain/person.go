package domain

// Availability slot periods. A slot integer concatenates year, month, day and
// period into one disambiguating value (e.g. 2019-5-13 morning -> 20195130).
const (
	PeriodMorning   = 0
	PeriodAfternoon = 1
)

// Person is a volunteer available for hotel visits.
//
// Slots holds the availability slot integers accumulated from every shift
// record for this person. Sector is a bitmask whose set bits denote the
// geographic zones the person can cover. A Person is immutable once built
// for a solve.
type Person struct {
	Name   string
	Slots  []int
	Sector int
}

// SharedSlots returns the slots where both persons are free simultaneously.
//
// Duplicate slots are preserved as given: a slot appearing twice on either
// side contributes one entry per matching pair.
func (p Person) SharedSlots(other Person) []int {
	shared := make([]int, 0)
	for _, a := range p.Slots {
		for _, b := range other.Slots {
			if a == b {
				shared = append(shared, a)
			}
		}
	}
	return shared
}

// SharedSector returns the bitwise AND of both sector masks. A nonzero
// result means the two persons have at least one zone in common.
func (p Person) SharedSector(other Person) int {
	return p.Sector & other.Sector
}
