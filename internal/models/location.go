package models

import "strconv"

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultLocation is used when no location is given and IP geolocation fails (Oslo, Norway).
var DefaultLocation = Coordinates{Latitude: 59.911491, Longitude: 10.757933}

// Key returns "<lat>-<lon>" using the shortest float formatting, e.g. "59.91-10.75".
func (c Coordinates) Key() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "-" + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
