package ports

import (
	"context"
	"ecologix-service/internal/domain"
)

// Port: order retrieval and explicit creation. Order upserts that happen as
// part of delivery creation go through DeliveryRepository.Create instead.
type OrderRepository interface {
	// List returns orders newest first, each with delivery count and total
	// emissions aggregates joined in.
	List(ctx context.Context, limit, offset int) ([]*domain.OrderSummary, error)

	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}
