package dto

import (
	"ecologix-service/internal/domain"
	"time"
)

type CreateOrderRequest struct {
	OrderID       string  `json:"order_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	Status        string  `json:"status"`
}

type OrderResponse struct {
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderSummaryResponse struct {
	OrderResponse
	DeliveryCount  int     `json:"delivery_count"`
	TotalEmissions float64 `json:"total_emissions"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}

func NewOrderSummaryResponse(o *domain.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		OrderResponse:  NewOrderResponse(&o.Order),
		DeliveryCount:  o.DeliveryCount,
		TotalEmissions: o.TotalEmissions,
	}
}
