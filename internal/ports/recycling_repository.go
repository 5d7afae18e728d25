package ports

import (
	"context"
	"ecologix-service/internal/domain"
)

// Port: read-only access to recycling-center reference data.
type RecyclingRepository interface {
	// Nearby returns centers within radiusKm of a point ordered by
	// great-circle distance, with DistanceKm populated.
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]*domain.RecyclingCenter, error)

	// Recent returns the most recently added centers.
	Recent(ctx context.Context, limit int) ([]*domain.RecyclingCenter, error)
}
