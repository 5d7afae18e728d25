package cache

import (
	"context"
	"database/sql"
	"ecologix-service/internal/platform/obs"
	"ecologix-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a persistent cache of resolved addresses. Geocode
// results are stable, so entries never expire.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get returns the cached place for an address, or (nil, nil) on a miss.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ *ports.GeocodedPlace, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT formatted_address, city, lat, lng
	FROM geocode_cache
	WHERE address = $1;
	`
	var p ports.GeocodedPlace
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&p.Address, &p.City, &p.Lat, &p.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return &p, nil
}

// Put stores a resolved address, replacing any stale entry.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, place ports.GeocodedPlace) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (address, formatted_address, city, lat, lng)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (address) DO UPDATE
	SET formatted_address = EXCLUDED.formatted_address,
		city = EXCLUDED.city,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`
	if _, err := s.DB.ExecContext(ctx, q, address, place.Address, place.City, place.Lat, place.Lng); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
