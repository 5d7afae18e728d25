package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"net/http"
	"strconv"
)

// OrderHandler exposes order listing and explicit creation.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultPageSize
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	offset := 0
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "offset must be an integer")
			return
		}
		offset = n
	}

	orders, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "list orders", err)
		return
	}

	res := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, dto.NewOrderSummaryResponse(o))
	}

	writeList(w, r, http.StatusOK, res, len(res))
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.OrderID == "" {
		writeDomainError(w, r, "create order", domain.MissingField("order_id"))
		return
	}
	if req.CustomerName == "" {
		writeDomainError(w, r, "create order", domain.MissingField("customer_name"))
		return
	}

	status := domain.OrderPending
	if req.Status != "" {
		parsed, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			writeDomainError(w, r, "create order", err)
			return
		}
		status = parsed
	}

	order, err := h.Repo.Create(r.Context(), domain.Order{
		OrderID:       req.OrderID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        status,
	})
	if err != nil {
		writeDomainError(w, r, "create order", err)
		return
	}

	writeSuccess(w, r, http.StatusCreated, dto.NewOrderResponse(order))
}
