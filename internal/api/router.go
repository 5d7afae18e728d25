package api

import (
	"ecologix-service/internal/api/handlers"
	"ecologix-service/internal/ports"
	"net/http"
)

// Repositories groups the persistence ports the HTTP layer depends on.
type Repositories struct {
	Deliveries ports.DeliveryRepository
	Orders     ports.OrderRepository
	EcoPoints  ports.EcoPointRepository
	Reporting  ports.ReportingRepository
	Recycling  ports.RecyclingRepository
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// provider may be nil when no maps credentials are configured; the route
// endpoints then reject requests instead of the whole service failing to start.
func NewRouter(repos Repositories, provider ports.RouteProvider) http.Handler {
	mux := http.NewServeMux()

	deliveryHandler := &handlers.DeliveryHandler{Repo: repos.Deliveries}
	routeHandler := &handlers.RouteHandler{Provider: provider, Repo: repos.Deliveries}
	orderHandler := &handlers.OrderHandler{Repo: repos.Orders}
	ecoHandler := &handlers.EcoPointHandler{Repo: repos.EcoPoints}
	dashboardHandler := &handlers.DashboardHandler{Repo: repos.Reporting}
	reportHandler := &handlers.EmissionReportHandler{Repo: repos.Reporting}
	recyclingHandler := &handlers.RecyclingHandler{Repo: repos.Recycling}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /deliveries", deliveryHandler.List)
	mux.HandleFunc("POST /deliveries", deliveryHandler.Create)
	mux.HandleFunc("POST /deliveries/calculate-route", routeHandler.Calculate)
	mux.HandleFunc("POST /deliveries/create-from-route", routeHandler.CreateFromRoute)
	mux.HandleFunc("GET /deliveries/{id}", deliveryHandler.Get)
	mux.HandleFunc("PUT /deliveries/{id}", deliveryHandler.Update)

	mux.HandleFunc("GET /orders", orderHandler.List)
	mux.HandleFunc("POST /orders", orderHandler.Create)

	mux.HandleFunc("GET /eco-points", ecoHandler.Get)
	mux.HandleFunc("POST /eco-points", ecoHandler.Award)

	mux.HandleFunc("GET /dashboard/stats", dashboardHandler.Stats)
	mux.HandleFunc("GET /emissions/report", reportHandler.Report)
	mux.HandleFunc("GET /recycling-centers", recyclingHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
