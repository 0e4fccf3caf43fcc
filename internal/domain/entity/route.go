package entity

// Route represents a monitored origin-destination airport pair
type Route struct {
	ID              uint
	Origin          string
	Destination     string
	OriginCity      string
	DestinationCity string
	Region          string
}

// RoutePair is one fetchable (route, airline) combination from the
// route-airline mapping
type RoutePair struct {
	Route       Route
	AirlineCode string
}
