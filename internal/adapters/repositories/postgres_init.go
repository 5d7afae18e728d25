package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"
)

// Initialize the Postgres schema for the emissions pipeline.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_phone TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(order_id),
		shipment_id TEXT NOT NULL UNIQUE,
		origin_address TEXT,
		origin_city TEXT,
		origin_lat DOUBLE PRECISION,
		origin_lng DOUBLE PRECISION,
		destination_address TEXT,
		destination_city TEXT,
		destination_lat DOUBLE PRECISION,
		destination_lng DOUBLE PRECISION,
		distance_km DOUBLE PRECISION NOT NULL,
		vehicle_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		delivery_attempts INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at TIMESTAMPTZ,
		failed_at TIMESTAMPTZ
	);
	`

	createEmissionsQuery := `
	CREATE TABLE IF NOT EXISTS emissions (
		emission_id BIGSERIAL PRIMARY KEY,
		delivery_id BIGINT NOT NULL UNIQUE REFERENCES deliveries(delivery_id),
		vehicle_type TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		co2_emissions_kg DOUBLE PRECISION NOT NULL CHECK (co2_emissions_kg >= 0),
		emission_factor DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createEcoPointsQuery := `
	CREATE TABLE IF NOT EXISTS eco_points (
		point_id BIGSERIAL PRIMARY KEY,
		user_identifier TEXT NOT NULL,
		delivery_id BIGINT REFERENCES deliveries(delivery_id),
		points_earned INTEGER NOT NULL CHECK (points_earned > 0),
		action_type TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// One automatic award per (delivery, action): a retried creation call
	// cannot double-award the same delivery.
	createEcoPointsIndexQuery := `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_eco_points_delivery_action
	ON eco_points(delivery_id, action_type)
	WHERE delivery_id IS NOT NULL;
	`

	createRecyclingCentersQuery := `
	CREATE TABLE IF NOT EXISTS recycling_centers (
		center_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		phone TEXT,
		hours TEXT,
		materials TEXT[],
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		formatted_address TEXT NOT NULL,
		city TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDeliveriesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_created_at
	ON deliveries(created_at DESC);
	`

	statements := []string{
		createOrdersQuery,
		createDeliveriesQuery,
		createEmissionsQuery,
		createEcoPointsQuery,
		createEcoPointsIndexQuery,
		createRecyclingCentersQuery,
		createGeocodeCacheQuery,
		createDeliveriesIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RecyclingCenterSeed struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Phone     string   `json:"phone"`
	Hours     string   `json:"hours"`
	Materials []string `json:"materials"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
}

// Populate recycling-center reference data from a JSON file.
func SeedRecyclingCenters(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed recycling centers: read %q: %w", jsonPath, err)
	}

	var data []RecyclingCenterSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed recycling centers: parse json: %w", err)
	}

	for i, c := range data {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("seed recycling centers: item at index %d: name cannot be empty", i+1)
		}
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("seed recycling centers: item at index %d: address cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed recycling centers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO recycling_centers (name, address, city, phone, hours, materials, lat, lng)
	SELECT $1, $2, $3, $4, $5, $6, $7, $8
	WHERE NOT EXISTS (
		SELECT 1 FROM recycling_centers WHERE name = $1 AND address = $2
	);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed recycling centers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range data {
		if _, err := stmt.Exec(c.Name, c.Address, c.City, c.Phone, c.Hours, pq.Array(c.Materials), c.Lat, c.Lng); err != nil {
			return fmt.Errorf("seed recycling centers: insert %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed recycling centers: commit tx: %w", err)
	}

	return nil
}
