package repositories

import (
	"database/sql"
	"ecologix-service/internal/domain"
	"fmt"
	"time"
)

// Column list shared by every query that reads the flattened delivery record
// (delivery joined with order customer fields and emission).
const deliveryRecordColumns = `
	d.delivery_id, d.order_id, d.shipment_id,
	d.origin_address, d.origin_city, d.origin_lat, d.origin_lng,
	d.destination_address, d.destination_city, d.destination_lat, d.destination_lng,
	d.distance_km, d.vehicle_type, d.status, d.delivery_attempts,
	d.created_at, d.completed_at, d.failed_at,
	o.customer_name, o.customer_phone,
	e.co2_emissions_kg, e.emission_factor, e.created_at`

// Satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeliveryRecord(row rowScanner) (*domain.DeliveryRecord, error) {
	var rec domain.DeliveryRecord
	var originAddr, originCity, destAddr, destCity sql.NullString
	var customerName, customerPhone sql.NullString
	var originLat, originLng, destLat, destLng sql.NullFloat64
	var co2, factor sql.NullFloat64
	var completedAt, failedAt, emissionAt sql.NullTime
	var vehicle, status string

	err := row.Scan(
		&rec.DeliveryID, &rec.OrderID, &rec.ShipmentID,
		&originAddr, &originCity, &originLat, &originLng,
		&destAddr, &destCity, &destLat, &destLng,
		&rec.DistanceKm, &vehicle, &status, &rec.Attempts,
		&rec.CreatedAt, &completedAt, &failedAt,
		&customerName, &customerPhone,
		&co2, &factor, &emissionAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan delivery record: %w", err)
	}

	rec.Origin = domain.Place{
		Address: originAddr.String,
		City:    originCity.String,
		Lat:     nullFloat(originLat),
		Lng:     nullFloat(originLng),
	}
	rec.Destination = domain.Place{
		Address: destAddr.String,
		City:    destCity.String,
		Lat:     nullFloat(destLat),
		Lng:     nullFloat(destLng),
	}
	rec.Vehicle = domain.VehicleType(vehicle)
	rec.Status = domain.DeliveryStatus(status)
	rec.CompletedAt = nullTime(completedAt)
	rec.FailedAt = nullTime(failedAt)
	rec.CustomerName = customerName.String
	rec.CustomerPhone = nullString(customerPhone)
	rec.CO2EmissionsKg = nullFloat(co2)
	rec.EmissionFactor = nullFloat(factor)
	rec.EmissionAt = nullTime(emissionAt)

	return &rec, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
