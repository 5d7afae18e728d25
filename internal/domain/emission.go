package domain

import "time"

// Emission is the persisted CO2 record for a delivery (one-to-one).
// Vehicle, distance and factor are duplicated at creation time and never
// re-derived, so reports stay stable if canonical factors change later.
type Emission struct {
	EmissionID     int64
	DeliveryID     int64
	Vehicle        VehicleType
	DistanceKm     float64
	CO2EmissionsKg float64
	EmissionFactor float64
	CreatedAt      time.Time
}
