package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"ecologix-service/internal/services"
	"net/http"
)

// RouteHandler exposes route quoting and route-based delivery creation.
// Provider is nil when no maps API key is configured; the endpoints then
// answer 500 instead of refusing to start the whole service.
type RouteHandler struct {
	Provider ports.RouteProvider
	Repo     ports.DeliveryRepository
}

func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		writeError(w, r, http.StatusInternalServerError, "maps api key not configured")
		return
	}

	var req dto.CalculateRouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := services.QuoteRoute(r.Context(), req.OriginAddress, req.DestinationAddress, req.VehicleType, h.Provider)
	if err != nil {
		writeDomainError(w, r, "calculate route", err)
		return
	}

	writeSuccess(w, r, http.StatusOK, dto.NewRouteQuoteResponse(quote))
}

// CreateFromRoute persists a delivery from a previously quoted route,
// generating a fresh shipment id, and returns the complete stored record.
func (h *RouteHandler) CreateFromRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFromRouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.RouteData == nil {
		writeDomainError(w, r, "create delivery from route", domain.MissingField("route_data"))
		return
	}
	if req.CustomerName == "" {
		writeDomainError(w, r, "create delivery from route", domain.MissingField("customer_name"))
		return
	}

	rd := req.RouteData
	distance := rd.DistanceKm
	created, err := services.CreateDelivery(r.Context(), services.CreateDeliveryRequest{
		OrderID:       req.OrderID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Origin: domain.Place{
			Address: rd.Origin.Address,
			City:    rd.Origin.City,
			Lat:     &rd.Origin.Lat,
			Lng:     &rd.Origin.Lng,
		},
		Destination: domain.Place{
			Address: rd.Destination.Address,
			City:    rd.Destination.City,
			Lat:     &rd.Destination.Lat,
			Lng:     &rd.Destination.Lng,
		},
		DistanceKm:  &distance,
		VehicleType: req.VehicleType,
	}, h.Repo)
	if err != nil {
		writeDomainError(w, r, "create delivery from route", err)
		return
	}

	detail, err := h.Repo.Get(r.Context(), created.Delivery.DeliveryID)
	if err != nil {
		writeDomainError(w, r, "create delivery from route", err)
		return
	}

	res := dto.CreateFromRouteResponse{
		Delivery: dto.DeliveryDetailResponse{
			DeliveryResponse: dto.NewDeliveryResponse(&detail.DeliveryRecord),
			OrderStatus:      string(detail.OrderStatus),
			EcoPoints:        make([]dto.EcoPointResponse, 0, len(detail.EcoPoints)),
		},
		RouteInfo: dto.RouteInfoResponse{
			DistanceKm:      rd.DistanceKm,
			DurationMinutes: rd.DurationMinutes,
			CO2Emissions:    created.Emission.CO2EmissionsKg,
		},
	}
	for i := range detail.EcoPoints {
		res.Delivery.EcoPoints = append(res.Delivery.EcoPoints, dto.NewEcoPointResponse(&detail.EcoPoints[i]))
	}
	if created.Award != nil {
		res.RouteInfo.EcoPointsEarned = created.Award.Points
	}

	writeSuccess(w, r, http.StatusCreated, res)
}
