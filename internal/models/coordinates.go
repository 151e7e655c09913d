package models

import "math"

// Valid latitude and longitude bounds in degrees.
const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Valid reports whether the point lies within latitude [-90,90] and longitude [-180,180].
// NaN and infinite values are never valid.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -MaxLatitude && c.Latitude <= MaxLatitude &&
		c.Longitude >= -MaxLongitude && c.Longitude <= MaxLongitude
}
