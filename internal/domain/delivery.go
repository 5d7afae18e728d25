package domain

import (
	"fmt"
	"time"
)

// DeliveryStatus tracks a delivery through its lifecycle. Transitions are
// unordered: any status may move to any other.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusInTransit DeliveryStatus = "in_transit"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
)

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(s) {
	case StatusPending, StatusInTransit, StatusDelivered, StatusFailed:
		return DeliveryStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
}

// Place is one end of a delivery route. Coordinates are optional: deliveries
// submitted without a route lookup carry addresses only.
type Place struct {
	Address string
	City    string
	Lat     *float64
	Lng     *float64
}

// Delivery is a single last-mile trip belonging to exactly one Order.
// Every delivery owns exactly one Emission record, created in the same
// transaction.
type Delivery struct {
	DeliveryID  int64
	OrderID     string
	ShipmentID  string
	Origin      Place
	Destination Place
	DistanceKm  float64
	Vehicle     VehicleType
	Status      DeliveryStatus
	Attempts    int
	CreatedAt   time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time
}

// DeliveryRecord is the flattened read model for listings and reports:
// a delivery joined with its order's customer fields and its emission.
// Emission fields are pointers because a LEFT JOIN may produce no row.
type DeliveryRecord struct {
	Delivery
	CustomerName   string
	CustomerPhone  *string
	CO2EmissionsKg *float64
	EmissionFactor *float64
	EmissionAt     *time.Time
}

// DeliveryDetail is a DeliveryRecord plus the eco-points the delivery earned.
// EcoPoints is always non-nil; an empty slice means no awards.
type DeliveryDetail struct {
	DeliveryRecord
	OrderStatus OrderStatus
	EcoPoints   []EcoPoint
}
