package dto

import (
	"ecologix-service/internal/domain"
	"time"
)

type CreateDeliveryRequest struct {
	OrderID            string   `json:"order_id"`
	CustomerName       string   `json:"customer_name"`
	CustomerPhone      *string  `json:"customer_phone"`
	ShipmentID         string   `json:"shipment_id"`
	OriginAddress      string   `json:"origin_address"`
	OriginCity         string   `json:"origin_city"`
	OriginLat          *float64 `json:"origin_lat"`
	OriginLng          *float64 `json:"origin_lng"`
	DestinationAddress string   `json:"destination_address"`
	DestinationCity    string   `json:"destination_city"`
	DestinationLat     *float64 `json:"destination_lat"`
	DestinationLng     *float64 `json:"destination_lng"`
	DistanceKm         *float64 `json:"distance_km"`
	VehicleType        string   `json:"vehicle_type"`
}

type UpdateDeliveryRequest struct {
	Status           *string `json:"status"`
	DeliveryAttempts *int    `json:"delivery_attempts"`
}

// DeliveryResponse is the flattened delivery record every listing and
// report returns.
type DeliveryResponse struct {
	DeliveryID         int64      `json:"delivery_id"`
	OrderID            string     `json:"order_id"`
	ShipmentID         string     `json:"shipment_id"`
	OriginAddress      string     `json:"origin_address,omitempty"`
	OriginCity         string     `json:"origin_city,omitempty"`
	OriginLat          *float64   `json:"origin_lat,omitempty"`
	OriginLng          *float64   `json:"origin_lng,omitempty"`
	DestinationAddress string     `json:"destination_address,omitempty"`
	DestinationCity    string     `json:"destination_city,omitempty"`
	DestinationLat     *float64   `json:"destination_lat,omitempty"`
	DestinationLng     *float64   `json:"destination_lng,omitempty"`
	DistanceKm         float64    `json:"distance_km"`
	VehicleType        string     `json:"vehicle_type"`
	Status             string     `json:"status"`
	DeliveryAttempts   int        `json:"delivery_attempts"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	FailedAt           *time.Time `json:"failed_at,omitempty"`
	CustomerName       string     `json:"customer_name,omitempty"`
	CustomerPhone      *string    `json:"customer_phone,omitempty"`
	CO2EmissionsKg     *float64   `json:"co2_emissions_kg,omitempty"`
	EmissionFactor     *float64   `json:"emission_factor,omitempty"`
}

type DeliveryDetailResponse struct {
	DeliveryResponse
	OrderStatus string             `json:"order_status,omitempty"`
	EcoPoints   []EcoPointResponse `json:"eco_points"`
}

type DeliverySummaryResponse struct {
	DeliveryID       int64      `json:"delivery_id"`
	OrderID          string     `json:"order_id"`
	ShipmentID       string     `json:"shipment_id"`
	DistanceKm       float64    `json:"distance_km"`
	VehicleType      string     `json:"vehicle_type"`
	Status           string     `json:"status"`
	DeliveryAttempts int        `json:"delivery_attempts"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	FailedAt         *time.Time `json:"failed_at,omitempty"`
}

type EmissionResponse struct {
	EmissionID     int64     `json:"emission_id"`
	DeliveryID     int64     `json:"delivery_id"`
	VehicleType    string    `json:"vehicle_type"`
	DistanceKm     float64   `json:"distance_km"`
	CO2EmissionsKg float64   `json:"co2_emissions_kg"`
	EmissionFactor float64   `json:"emission_factor"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateDeliveryResponse struct {
	Delivery         DeliverySummaryResponse `json:"delivery"`
	Emission         EmissionResponse        `json:"emission"`
	EcoPointsAwarded int                     `json:"eco_points_awarded"`
}

func NewDeliveryResponse(rec *domain.DeliveryRecord) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:         rec.DeliveryID,
		OrderID:            rec.OrderID,
		ShipmentID:         rec.ShipmentID,
		OriginAddress:      rec.Origin.Address,
		OriginCity:         rec.Origin.City,
		OriginLat:          rec.Origin.Lat,
		OriginLng:          rec.Origin.Lng,
		DestinationAddress: rec.Destination.Address,
		DestinationCity:    rec.Destination.City,
		DestinationLat:     rec.Destination.Lat,
		DestinationLng:     rec.Destination.Lng,
		DistanceKm:         rec.DistanceKm,
		VehicleType:        string(rec.Vehicle),
		Status:             string(rec.Status),
		DeliveryAttempts:   rec.Attempts,
		CreatedAt:          rec.CreatedAt,
		CompletedAt:        rec.CompletedAt,
		FailedAt:           rec.FailedAt,
		CustomerName:       rec.CustomerName,
		CustomerPhone:      rec.CustomerPhone,
		CO2EmissionsKg:     rec.CO2EmissionsKg,
		EmissionFactor:     rec.EmissionFactor,
	}
}

func NewDeliverySummaryResponse(d *domain.Delivery) DeliverySummaryResponse {
	return DeliverySummaryResponse{
		DeliveryID:       d.DeliveryID,
		OrderID:          d.OrderID,
		ShipmentID:       d.ShipmentID,
		DistanceKm:       d.DistanceKm,
		VehicleType:      string(d.Vehicle),
		Status:           string(d.Status),
		DeliveryAttempts: d.Attempts,
		CreatedAt:        d.CreatedAt,
		CompletedAt:      d.CompletedAt,
		FailedAt:         d.FailedAt,
	}
}

func NewEmissionResponse(e *domain.Emission) EmissionResponse {
	return EmissionResponse{
		EmissionID:     e.EmissionID,
		DeliveryID:     e.DeliveryID,
		VehicleType:    string(e.Vehicle),
		DistanceKm:     e.DistanceKm,
		CO2EmissionsKg: e.CO2EmissionsKg,
		EmissionFactor: e.EmissionFactor,
		CreatedAt:      e.CreatedAt,
	}
}
