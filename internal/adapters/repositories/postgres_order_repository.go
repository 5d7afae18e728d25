package repositories

import (
	"context"
	"database/sql"
	"ecologix-service/internal/domain"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// List returns orders newest first with delivery and emission aggregates.
func (s *PostgresOrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.OrderSummary, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
	SELECT
		o.order_id, o.customer_name, o.customer_phone, o.status, o.created_at,
		COUNT(d.delivery_id) AS delivery_count,
		COALESCE(SUM(e.co2_emissions_kg), 0) AS total_emissions
	FROM orders o
	LEFT JOIN deliveries d ON o.order_id = d.order_id
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	GROUP BY o.order_id
	ORDER BY o.created_at DESC
	LIMIT $1 OFFSET $2;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.OrderSummary, 0, limit)
	for rows.Next() {
		var o domain.OrderSummary
		var phone sql.NullString
		var status string
		if err := rows.Scan(&o.OrderID, &o.CustomerName, &phone, &status, &o.CreatedAt, &o.DeliveryCount, &o.TotalEmissions); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		o.CustomerPhone = nullString(phone)
		o.Status = domain.OrderStatus(status)
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

func (s *PostgresOrderRepository) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	INSERT INTO orders (order_id, customer_name, customer_phone, status)
	VALUES ($1, $2, $3, $4)
	RETURNING order_id, customer_name, customer_phone, status, created_at;
	`
	var out domain.Order
	var phone sql.NullString
	var status string
	err := s.DB.QueryRowContext(ctx, query,
		o.OrderID, o.CustomerName, o.CustomerPhone, string(o.Status),
	).Scan(&out.OrderID, &out.CustomerName, &phone, &status, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create order %q: %w", o.OrderID, err)
	}
	out.CustomerPhone = nullString(phone)
	out.Status = domain.OrderStatus(status)

	return &out, nil
}
