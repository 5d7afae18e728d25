package repositories

import (
	"context"
	"database/sql"
	"ecologix-service/internal/domain"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Postgres-backed implementation of the RecyclingRepository port.
type PostgresRecyclingRepository struct{ DB *sql.DB }

func NewPostgresRecyclingRepository(db *sql.DB) *PostgresRecyclingRepository {
	return &PostgresRecyclingRepository{DB: db}
}

// Nearby finds centers within radiusKm using the haversine great-circle
// distance, nearest first. LEAST guards acos against rounding just above 1.
func (s *PostgresRecyclingRepository) Nearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	limit int,
) ([]*domain.RecyclingCenter, error) {
	if s.DB == nil {
		return nil, errors.New("recycling repository: DB is nil")
	}

	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
	SELECT center_id, name, address, city, phone, hours, materials, lat, lng, created_at, distance_km
	FROM (
		SELECT *,
			(6371 * acos(LEAST(1.0,
				cos(radians($1)) * cos(radians(lat)) * cos(radians(lng) - radians($2))
				+ sin(radians($1)) * sin(radians(lat))
			))) AS distance_km
		FROM recycling_centers
	) c
	WHERE distance_km <= $3
	ORDER BY distance_km ASC
	LIMIT $4;
	`
	return s.queryCenters(ctx, query, true, lat, lng, radiusKm, limit)
}

// Recent returns the most recently added centers.
func (s *PostgresRecyclingRepository) Recent(ctx context.Context, limit int) ([]*domain.RecyclingCenter, error) {
	if s.DB == nil {
		return nil, errors.New("recycling repository: DB is nil")
	}

	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
	SELECT center_id, name, address, city, phone, hours, materials, lat, lng, created_at
	FROM recycling_centers
	ORDER BY created_at DESC
	LIMIT $1;
	`
	return s.queryCenters(ctx, query, false, limit)
}

func (s *PostgresRecyclingRepository) queryCenters(
	ctx context.Context,
	query string,
	withDistance bool,
	args ...any,
) ([]*domain.RecyclingCenter, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recycling centers: %w", err)
	}
	defer rows.Close()

	centers := make([]*domain.RecyclingCenter, 0, 16)
	for rows.Next() {
		var c domain.RecyclingCenter
		var phone, hours sql.NullString
		var materials pq.StringArray

		dest := []any{&c.CenterID, &c.Name, &c.Address, &c.City, &phone, &hours, &materials, &c.Lat, &c.Lng, &c.CreatedAt}
		if withDistance {
			var dist float64
			dest = append(dest, &dist)
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("query recycling centers: scan row: %w", err)
			}
			c.DistanceKm = &dist
		} else {
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("query recycling centers: scan row: %w", err)
			}
		}

		c.Phone = phone.String
		c.Hours = hours.String
		c.Materials = []string(materials)
		centers = append(centers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query recycling centers: row iteration: %w", err)
	}

	return centers, nil
}
