package pools

// Pool is one swimming facility placed on the map. The ID is the POI
// provider's element id, stable only within that provider's dataset.
type Pool struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
