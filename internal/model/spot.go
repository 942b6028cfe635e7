package model

// Spot is the reshaped places-API result returned by the search passthrough.
type Spot struct {
	SpotID  string   `json:"spot_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  float64  `json:"rating,omitempty"`
	Types   []string `json:"types,omitempty"`
	Photos  []string `json:"photos,omitempty"`
}

// SpotSearchResponse is the payload for GET /api/spots/search.
type SpotSearchResponse struct {
	Places []Spot `json:"places"`
}
