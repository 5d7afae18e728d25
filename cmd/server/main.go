package main

import (
	"ecologix-service/internal/adapters/cache"
	"ecologix-service/internal/adapters/repositories"
	"ecologix-service/internal/adapters/route"
	"ecologix-service/internal/api"
	"ecologix-service/internal/platform/db"
	"ecologix-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Google Maps, redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := getEnv("PORT", "8080")
	seedPath := getEnv("SEED_PATH", "data/seeds/recycling_centers.json")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Initialize schema and seed reference data on startup for local runs.
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedRecyclingCenters(pool, seedPath); err != nil {
		log.Printf("recycling center seed skipped: %v", err)
	}

	// The maps provider is optional: without a key the route endpoints
	// return an error while the rest of the pipeline keeps working.
	var provider ports.RouteProvider
	if mapsKey := strings.TrimSpace(os.Getenv("MAPS_API_KEY")); mapsKey != "" {
		var routeCache *cache.RedisRouteCache
		if addr := os.Getenv("REDIS_ADDR"); addr != "" {
			routeCache = cache.NewRedisRouteCache(addr)
			defer routeCache.Close()
		}

		p, err := route.NewGoogleRouteProvider(mapsKey, cache.NewSQLGeocodeCache(pool), routeCache)
		if err != nil {
			log.Fatal(err)
		}
		provider = p
	} else {
		log.Println("MAPS_API_KEY not set; route calculation disabled")
	}

	repos := api.Repositories{
		Deliveries: repositories.NewPostgresDeliveryRepository(pool),
		Orders:     repositories.NewPostgresOrderRepository(pool),
		EcoPoints:  repositories.NewPostgresEcoPointRepository(pool),
		Reporting:  repositories.NewPostgresReportingRepository(pool),
		Recycling:  repositories.NewPostgresRecyclingRepository(pool),
	}
	router := api.NewRouter(repos, provider)

	// Timeouts are tuned for cold-cache route lookups (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
