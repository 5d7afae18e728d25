package repositories

import (
	"context"
	"ecologix-service/internal/domain"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOrderListWithAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresOrderRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY o.order_id")).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "customer_name", "customer_phone", "status", "created_at", "delivery_count", "total_emissions",
		}).
			AddRow("ORD-2", "Dana Cruz", "+1-602-555-0147", "in_transit", now, 2, 2.3).
			AddRow("ORD-1", "Sam Lee", nil, "pending", now.Add(-time.Hour), 0, 0.0))

	orders, err := repo.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}

	first := orders[0]
	if first.OrderID != "ORD-2" || first.DeliveryCount != 2 || first.TotalEmissions != 2.3 {
		t.Errorf("first order = %+v", first)
	}
	if first.CustomerPhone == nil || *first.CustomerPhone != "+1-602-555-0147" {
		t.Errorf("phone = %v", first.CustomerPhone)
	}

	// Orders with no deliveries still appear, with zero aggregates.
	if orders[1].DeliveryCount != 0 || orders[1].TotalEmissions != 0 {
		t.Errorf("second order = %+v", orders[1])
	}
	if orders[1].CustomerPhone != nil {
		t.Errorf("phone = %v, want nil", orders[1].CustomerPhone)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestOrderListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY o.order_id")).
		WithArgs(maxListLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_id", "customer_name", "customer_phone", "status", "created_at", "delivery_count", "total_emissions",
		}))

	if _, err := repo.List(context.Background(), 5000, -10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestOrderCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresOrderRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs("ORD-1", "Dana Cruz", nil, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "customer_name", "customer_phone", "status", "created_at"}).
			AddRow("ORD-1", "Dana Cruz", nil, "pending", now))

	order, err := repo.Create(context.Background(), domain.Order{
		OrderID:      "ORD-1",
		CustomerName: "Dana Cruz",
		Status:       domain.OrderPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderID != "ORD-1" || order.Status != domain.OrderPending {
		t.Errorf("order = %+v", order)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
