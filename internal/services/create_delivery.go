package services

import (
	"context"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"fmt"
	"strings"
)

// CreateDeliveryRequest carries caller input for a delivery creation.
// DistanceKm is a pointer so an absent field is distinguishable from zero.
type CreateDeliveryRequest struct {
	OrderID       string
	CustomerName  string
	CustomerPhone *string
	ShipmentID    string
	Origin        domain.Place
	Destination   domain.Place
	DistanceKm    *float64
	VehicleType   string
}

// CreateDelivery validates the request, computes the emission record and the
// automatic eco-point award, and hands the bundle to the store for atomic
// persistence. Validation failures happen before any write.
func CreateDelivery(
	ctx context.Context,
	req CreateDeliveryRequest,
	repo ports.DeliveryRepository,
) (*ports.CreatedDelivery, error) {
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return nil, domain.MissingField("order_id")
	}
	if req.DistanceKm == nil {
		return nil, domain.MissingField("distance_km")
	}
	if strings.TrimSpace(req.VehicleType) == "" {
		return nil, domain.MissingField("vehicle_type")
	}

	vehicle, err := domain.ParseVehicleType(req.VehicleType)
	if err != nil {
		return nil, err
	}

	estimate, err := domain.ComputeEmissions(*req.DistanceKm, vehicle)
	if err != nil {
		return nil, err
	}

	shipmentID := strings.TrimSpace(req.ShipmentID)
	if shipmentID == "" {
		shipmentID = domain.NewShipmentID()
	}

	// Points accrue to the customer when known, otherwise to the order key.
	userIdentifier := strings.TrimSpace(req.CustomerName)
	if userIdentifier == "" {
		userIdentifier = orderID
	}

	rec := ports.CreateDeliveryRecord{
		Order: domain.Order{
			OrderID:       orderID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerPhone: req.CustomerPhone,
			Status:        domain.OrderPending,
		},
		ShipmentID:     shipmentID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DistanceKm:     *req.DistanceKm,
		Vehicle:        vehicle,
		Emission:       estimate,
		UserIdentifier: userIdentifier,
	}

	if award, ok := domain.EvaluateEcoAward(vehicle); ok {
		rec.Award = &award
	}

	created, err := repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	return created, nil
}
