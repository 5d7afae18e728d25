package route

import (
	"context"
	"ecologix-service/internal/adapters/cache"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/platform/obs"
	"ecologix-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
)

// GoogleRouteProvider implements RouteProvider using the Google Maps
// geocoding and distance matrix APIs.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching (Postgres)
//   - Short-lived route caching (redis)
//   - External API calls with retry/backoff
//
// Both caches are optional; the provider works without them.
// The provider is safe for concurrent use.
type GoogleRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	geocodeCache *cache.SQLGeocodeCache
	routeCache   *cache.RedisRouteCache
}

func NewGoogleRouteProvider(
	apiKey string,
	geocodeCache *cache.SQLGeocodeCache,
	routeCache *cache.RedisRouteCache,
) (*GoogleRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}

	provider := &GoogleRouteProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		geocodeCache: geocodeCache,
		routeCache:   routeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleRouteProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetRoute geocodes both addresses and resolves driving distance and
// duration between them.
func (g *GoogleRouteProvider) GetRoute(
	ctx context.Context,
	originAddress string,
	destinationAddress string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "maps.GetRoute")(&err)

	normOrigin := g.normalize(originAddress)
	if normOrigin == "" {
		return ports.RouteResult{}, errors.New("get route: origin address must be non-empty")
	}

	normDestination := g.normalize(destinationAddress)
	if normDestination == "" {
		return ports.RouteResult{}, errors.New("get route: destination address must be non-empty")
	}

	if g.routeCache != nil {
		cached, err := g.routeCache.Get(ctx, normOrigin, normDestination)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	origin, err := g.geocode(ctx, normOrigin)
	if err != nil {
		return ports.RouteResult{}, &domain.LookupError{Address: originAddress, Err: err}
	}

	destination, err := g.geocode(ctx, normDestination)
	if err != nil {
		return ports.RouteResult{}, &domain.LookupError{Address: destinationAddress, Err: err}
	}

	meters, seconds, err := g.fetchDistance(ctx, origin, destination)
	if err != nil {
		return ports.RouteResult{}, &domain.LookupError{Address: destinationAddress, Err: fmt.Errorf("distance lookup: %w", err)}
	}

	result := ports.RouteResult{
		Origin:      origin,
		Destination: destination,
		// Round to 2 decimals, the precision the dashboard displays.
		DistanceKm:      math.Round(float64(meters)/10) / 100,
		DurationMinutes: int(math.Round(float64(seconds) / 60)),
	}

	if g.routeCache != nil {
		if err := g.routeCache.Put(ctx, normOrigin, normDestination, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

// geocode resolves one address, consulting the persistent cache first.
func (g *GoogleRouteProvider) geocode(ctx context.Context, address string) (ports.GeocodedPlace, error) {
	if g.geocodeCache != nil {
		cached, err := g.geocodeCache.Get(ctx, address)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	place, err := g.fetchGeocode(ctx, address)
	if err != nil {
		return ports.GeocodedPlace{}, err
	}

	if g.geocodeCache != nil {
		if err := g.geocodeCache.Put(ctx, address, place); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return place, nil
}
