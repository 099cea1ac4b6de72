package domain

// Itinerary is the planned visit route for a single worker: the ordered
// location labels starting and ending at the worker's depot, plus the total
// travel distance in meters. It is immutable planning data.
type Itinerary struct {
	WorkerID            int
	Stops               []string
	TotalDistanceMeters int
}

// HotelStops returns the visited hotel labels, excluding the leading depot
// label and the trailing return label.
func (it Itinerary) HotelStops() []string {
	if len(it.Stops) <= 2 {
		return []string{}
	}
	return it.Stops[1 : len(it.Stops)-1]
}
