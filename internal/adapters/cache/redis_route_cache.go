package cache

import (
	"context"
	"ecologix-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Route quotes go stale with traffic, so unlike geocodes they get a TTL.
const routeCacheTTL = 15 * time.Minute

// RedisRouteCache caches resolved routes between address pairs.
type RedisRouteCache struct {
	client *redis.Client
}

func NewRedisRouteCache(addr string) *RedisRouteCache {
	return &RedisRouteCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// NewRedisRouteCacheFromClient wraps an existing client (used by tests).
func NewRedisRouteCacheFromClient(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{client: client}
}

func routeKey(origin, destination string) string {
	return "route:" + origin + "|" + destination
}

// Get returns the cached route for an address pair, or (nil, nil) on a miss.
func (c *RedisRouteCache) Get(ctx context.Context, origin, destination string) (*ports.RouteResult, error) {
	if c.client == nil {
		return nil, errors.New("route cache: client is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, errors.New("get route cache: origin and destination must not be empty")
	}

	raw, err := c.client.Get(ctx, routeKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache %q -> %q: %w", origin, destination, err)
	}

	var r ports.RouteResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("get route cache %q -> %q: decode: %w", origin, destination, err)
	}

	return &r, nil
}

// Put stores a resolved route with the cache TTL.
func (c *RedisRouteCache) Put(ctx context.Context, origin, destination string, r ports.RouteResult) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("insert route cache %q -> %q: encode: %w", origin, destination, err)
	}

	if err := c.client.Set(ctx, routeKey(origin, destination), raw, routeCacheTTL).Err(); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

func (c *RedisRouteCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
