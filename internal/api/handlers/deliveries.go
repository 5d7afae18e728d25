package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"ecologix-service/internal/services"
	"net/http"
	"strconv"
)

const defaultPageSize = 50

// DeliveryHandler exposes delivery CRUD endpoints.
type DeliveryHandler struct {
	Repo ports.DeliveryRepository
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ports.DeliveryFilter{Limit: defaultPageSize}

	if s := q.Get("status"); s != "" {
		status, err := domain.ParseDeliveryStatus(s)
		if err != nil {
			writeDomainError(w, r, "list deliveries", err)
			return
		}
		filter.Status = &status
	}
	if v := q.Get("vehicle_type"); v != "" {
		vehicle, err := domain.ParseVehicleType(v)
		if err != nil {
			writeDomainError(w, r, "list deliveries", err)
			return
		}
		filter.Vehicle = &vehicle
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "offset must be an integer")
			return
		}
		filter.Offset = n
	}

	records, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "list deliveries", err)
		return
	}

	res := make([]dto.DeliveryResponse, 0, len(records))
	for _, rec := range records {
		res = append(res, dto.NewDeliveryResponse(rec))
	}

	writeList(w, r, http.StatusOK, res, len(res))
}

func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeliveryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := services.CreateDelivery(r.Context(), services.CreateDeliveryRequest{
		OrderID:       req.OrderID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ShipmentID:    req.ShipmentID,
		Origin: domain.Place{
			Address: req.OriginAddress,
			City:    req.OriginCity,
			Lat:     req.OriginLat,
			Lng:     req.OriginLng,
		},
		Destination: domain.Place{
			Address: req.DestinationAddress,
			City:    req.DestinationCity,
			Lat:     req.DestinationLat,
			Lng:     req.DestinationLng,
		},
		DistanceKm:  req.DistanceKm,
		VehicleType: req.VehicleType,
	}, h.Repo)
	if err != nil {
		writeDomainError(w, r, "create delivery", err)
		return
	}

	res := dto.CreateDeliveryResponse{
		Delivery: dto.NewDeliverySummaryResponse(created.Delivery),
		Emission: dto.NewEmissionResponse(created.Emission),
	}
	if created.Award != nil {
		res.EcoPointsAwarded = created.Award.Points
	}

	writeSuccess(w, r, http.StatusCreated, res)
}

func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "delivery id must be an integer")
		return
	}

	detail, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get delivery", err)
		return
	}

	res := dto.DeliveryDetailResponse{
		DeliveryResponse: dto.NewDeliveryResponse(&detail.DeliveryRecord),
		OrderStatus:      string(detail.OrderStatus),
		EcoPoints:        make([]dto.EcoPointResponse, 0, len(detail.EcoPoints)),
	}
	for i := range detail.EcoPoints {
		res.EcoPoints = append(res.EcoPoints, dto.NewEcoPointResponse(&detail.EcoPoints[i]))
	}

	writeSuccess(w, r, http.StatusOK, res)
}

func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "delivery id must be an integer")
		return
	}

	var req dto.UpdateDeliveryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var upd ports.StatusUpdate
	if req.Status != nil {
		status, err := domain.ParseDeliveryStatus(*req.Status)
		if err != nil {
			writeDomainError(w, r, "update delivery", err)
			return
		}
		upd.Status = &status
	}
	upd.Attempts = req.DeliveryAttempts

	delivery, err := h.Repo.UpdateStatus(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, r, "update delivery", err)
		return
	}

	writeSuccess(w, r, http.StatusOK, dto.NewDeliverySummaryResponse(delivery))
}
