package cache

import (
	"context"
	"ecologix-service/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRouteCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRouteCacheFromClient(client), mr
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestRouteCache(t)
	ctx := context.Background()

	stored := ports.RouteResult{
		Origin:          ports.GeocodedPlace{Address: "10 Origin St, Phoenix, AZ 85009", City: "Phoenix", Lat: 33.45, Lng: -112.07},
		Destination:     ports.GeocodedPlace{Address: "20 Dest Ave, Tempe, AZ 85281", City: "Tempe", Lat: 33.42, Lng: -111.94},
		DistanceKm:      18.42,
		DurationMinutes: 23,
	}

	if err := c.Put(ctx, "10 Origin St", "20 Dest Ave", stored); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.Get(ctx, "10 Origin St", "20 Dest Ave")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cache hit")
	}
	if *got != stored {
		t.Errorf("cached route = %+v, want %+v", *got, stored)
	}
}

func TestRouteCacheMiss(t *testing.T) {
	c, _ := newTestRouteCache(t)

	got, err := c.Get(context.Background(), "Nowhere 1", "Nowhere 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected a miss, got %+v", got)
	}
}

func TestRouteCacheEntriesExpire(t *testing.T) {
	c, mr := newTestRouteCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "A", "B", ports.RouteResult{DistanceKm: 5}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(routeCacheTTL * 2)

	got, err := c.Get(ctx, "A", "B")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("entry should have expired, got %+v", got)
	}
}

func TestRouteCacheKeysArePairSensitive(t *testing.T) {
	c, _ := newTestRouteCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "A", "B", ports.RouteResult{DistanceKm: 5}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// The reverse direction is a different route.
	got, err := c.Get(ctx, "B", "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("reverse pair should miss, got %+v", got)
	}
}

func TestRouteCacheRejectsEmptyAddresses(t *testing.T) {
	c, _ := newTestRouteCache(t)

	if _, err := c.Get(context.Background(), "", "B"); err == nil {
		t.Error("expected error for empty origin")
	}
	if _, err := c.Get(context.Background(), "A", "  "); err == nil {
		t.Error("expected error for blank destination")
	}
}
