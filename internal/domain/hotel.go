package domain

// Hotel is a visit target. Point is the resolved geographic position; it is
// nil when geocoding found no match, in which case the hotel is excluded
// from routing.
type Hotel struct {
	Name     string
	Address  string
	Postcode string
	Capacity int
	Point    *Coordinates
}

// Label returns the display label used for routing nodes: the address
// followed by the postcode, whitespace collapsed upstream.
func (h Hotel) Label() string {
	if h.Postcode == "" {
		return h.Address
	}
	return h.Address + " " + h.Postcode
}
