package dto

type ItineraryRequest struct {
	WorkerCount     int `json:"worker_count"`
	MaxVisitsPerDay int `json:"max_visits_per_day"`
}

type ItineraryResponse struct {
	WorkerID            int      `json:"worker_id"`
	Stops               []string `json:"stops"`
	TotalDistanceMeters int      `json:"total_distance_meters"`
}

type ListItinerariesResponse struct {
	Itineraries []ItineraryResponse `json:"itineraries"`
}
