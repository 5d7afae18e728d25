package ports

import (
	"context"
	"ecologix-service/internal/domain"
)

// CreateDeliveryRecord carries everything the store needs to persist one
// delivery atomically: the order to upsert, the delivery row, its precomputed
// emission, and the optional automatic eco-point award.
type CreateDeliveryRecord struct {
	Order       domain.Order
	ShipmentID  string
	Origin      domain.Place
	Destination domain.Place
	DistanceKm  float64
	Vehicle     domain.VehicleType
	Emission    domain.EmissionEstimate

	// Award is nil when the vehicle earns no automatic points.
	Award          *domain.EcoAward
	UserIdentifier string
}

// CreatedDelivery is the result of a successful creation.
// Award is nil when no points were granted (vehicle without a rule, or a
// retried creation that already awarded once).
type CreatedDelivery struct {
	Delivery *domain.Delivery
	Emission *domain.Emission
	Award    *domain.EcoPoint
}

// StatusUpdate is a partial update; nil fields are left untouched.
type StatusUpdate struct {
	Status   *domain.DeliveryStatus
	Attempts *int
}

// DeliveryFilter narrows and pages delivery listings.
type DeliveryFilter struct {
	Status  *domain.DeliveryStatus
	Vehicle *domain.VehicleType
	Limit   int
	Offset  int
}

// Port: the transactional store for deliveries and their derived records.
type DeliveryRepository interface {
	// Create persists order, delivery and emission in one transaction.
	// The eco-point award is best-effort after commit: its failure never
	// rolls back the delivery or leaves it without an emission.
	Create(ctx context.Context, rec CreateDeliveryRecord) (*CreatedDelivery, error)

	// UpdateStatus applies a partial update, stamping completed_at or
	// failed_at on the corresponding transitions.
	UpdateStatus(ctx context.Context, deliveryID int64, upd StatusUpdate) (*domain.Delivery, error)

	// Get returns the delivery joined with customer fields, emission and
	// eco-points.
	Get(ctx context.Context, deliveryID int64) (*domain.DeliveryDetail, error)

	// List returns a page ordered by creation time descending.
	List(ctx context.Context, f DeliveryFilter) ([]*domain.DeliveryRecord, error)
}
