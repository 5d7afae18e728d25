package domain

import "time"

// RecyclingCenter is read-mostly reference data consumed by proximity queries.
// The emissions pipeline never mutates it.
type RecyclingCenter struct {
	CenterID  int64
	Name      string
	Address   string
	City      string
	Phone     string
	Hours     string
	Materials []string
	Lat       float64
	Lng       float64
	CreatedAt time.Time

	// DistanceKm is populated only by proximity searches.
	DistanceKm *float64
}
