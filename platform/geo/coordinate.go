// Package geo provides the shared coordinate value type.
// This is part of the platform layer and contains no business logic.
package geo

import "fmt"

// Coordinate is a (latitude, longitude) pair in decimal degrees. It is an
// immutable value with no identity beyond its two numbers; proximity
// comparisons are the caller's concern.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders the coordinate with 5 decimal places, the precision used
// for user-facing labels.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lon)
}
