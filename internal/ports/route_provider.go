package ports

import "context"

// GeocodedPlace is a resolved address with extracted city and coordinates.
type GeocodedPlace struct {
	Address string
	City    string
	Lat     float64
	Lng     float64
}

// RouteResult is a resolved route between two addresses.
type RouteResult struct {
	Origin          GeocodedPlace
	Destination     GeocodedPlace
	DistanceKm      float64
	DurationMinutes int
}

// Contract for the external route-lookup collaborator: geocodes both
// addresses and returns driving distance and duration between them.
type RouteProvider interface {
	GetRoute(ctx context.Context, originAddress, destinationAddress string) (RouteResult, error)
}
