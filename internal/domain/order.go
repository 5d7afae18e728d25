package domain

import (
	"fmt"
	"time"
)

// OrderStatus mirrors delivery statuses conceptually but is tracked
// independently on the order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderInTransit OrderStatus = "in_transit"
	OrderDelivered OrderStatus = "delivered"
	OrderFailed    OrderStatus = "failed"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderInTransit, OrderDelivered, OrderFailed:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid order status %q", ErrValidation, s)
}

// Order groups deliveries for one customer. The identifier is caller-supplied
// and upserted when a delivery references an existing order.
type Order struct {
	OrderID       string
	CustomerName  string
	CustomerPhone *string
	Status        OrderStatus
	CreatedAt     time.Time
}

// OrderSummary is an order joined with aggregates over its deliveries.
type OrderSummary struct {
	Order
	DeliveryCount  int
	TotalEmissions float64
}
