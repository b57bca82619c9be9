package model

// ContributorLocation is the geolocation stored for a contributor.
// The zero value is what callers render when no location is known.
type ContributorLocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Location is a geocoded place name as stored in the location table
type Location struct {
	Name string
	Lat  float64
	Lon  float64
}

// Coordinates is a geocoding result
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
