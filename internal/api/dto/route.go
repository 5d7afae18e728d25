package dto

import (
	"ecologix-service/internal/ports"
	"ecologix-service/internal/services"
)

type CalculateRouteRequest struct {
	OriginAddress      string `json:"origin_address"`
	DestinationAddress string `json:"destination_address"`
	VehicleType        string `json:"vehicle_type"`
}

type RoutePointResponse struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type RouteResponse struct {
	Origin          RoutePointResponse `json:"origin"`
	Destination     RoutePointResponse `json:"destination"`
	DistanceKm      float64            `json:"distance_km"`
	DurationMinutes int                `json:"duration_minutes"`
}

type VehicleOptionResponse struct {
	VehicleType    string  `json:"vehicle_type"`
	EmissionFactor float64 `json:"emission_factor"`
	CO2Emissions   float64 `json:"co2_emissions"`
	CarbonSaved    float64 `json:"carbon_saved"`
	Recommended    bool    `json:"recommended"`
}

type SelectedVehicleResponse struct {
	Type           string  `json:"type"`
	EmissionFactor float64 `json:"emission_factor"`
	CO2Emissions   float64 `json:"co2_emissions"`
	CarbonSaved    float64 `json:"carbon_saved"`
}

type RouteQuoteResponse struct {
	Route           RouteResponse           `json:"route"`
	SelectedVehicle SelectedVehicleResponse `json:"selected_vehicle"`
	Alternatives    []VehicleOptionResponse `json:"alternatives"`
}

// CreateFromRouteRequest creates a delivery from a previously quoted route.
type CreateFromRouteRequest struct {
	OrderID       string         `json:"order_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone *string        `json:"customer_phone"`
	RouteData     *RouteResponse `json:"route_data"`
	VehicleType   string         `json:"vehicle_type"`
}

type RouteInfoResponse struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	CO2Emissions    float64 `json:"co2_emissions"`
	EcoPointsEarned int     `json:"eco_points_earned"`
}

type CreateFromRouteResponse struct {
	Delivery  DeliveryDetailResponse `json:"delivery"`
	RouteInfo RouteInfoResponse      `json:"route_info"`
}

func newRoutePointResponse(p ports.GeocodedPlace) RoutePointResponse {
	return RoutePointResponse{Address: p.Address, City: p.City, Lat: p.Lat, Lng: p.Lng}
}

func NewRouteResponse(r ports.RouteResult) RouteResponse {
	return RouteResponse{
		Origin:          newRoutePointResponse(r.Origin),
		Destination:     newRoutePointResponse(r.Destination),
		DistanceKm:      r.DistanceKm,
		DurationMinutes: r.DurationMinutes,
	}
}

func NewRouteQuoteResponse(q *services.RouteQuote) RouteQuoteResponse {
	res := RouteQuoteResponse{
		Route: NewRouteResponse(q.Route),
		SelectedVehicle: SelectedVehicleResponse{
			Type:           string(q.Selected.Vehicle),
			EmissionFactor: q.Selected.Factor,
			CO2Emissions:   q.Selected.CO2Kg,
			CarbonSaved:    q.Selected.CarbonSaved,
		},
		Alternatives: make([]VehicleOptionResponse, 0, len(q.Alternatives)),
	}
	for _, opt := range q.Alternatives {
		res.Alternatives = append(res.Alternatives, VehicleOptionResponse{
			VehicleType:    string(opt.Vehicle),
			EmissionFactor: opt.Factor,
			CO2Emissions:   opt.CO2Kg,
			CarbonSaved:    opt.CarbonSaved,
			Recommended:    opt.Recommended,
		})
	}
	return res
}
