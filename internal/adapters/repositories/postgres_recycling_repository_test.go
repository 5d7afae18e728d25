package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecyclingNearby(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRecyclingRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE distance_km <= $3")).
		WithArgs(33.45, -112.07, 50.0, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"center_id", "name", "address", "city", "phone", "hours", "materials", "lat", "lng", "created_at", "distance_km",
		}).AddRow(int64(1), "GreenCycle Phoenix", "2010 W Lower Buckeye Rd", "Phoenix",
			"(602) 555-0147", "Mon-Sat 7am-6pm", "{cardboard,plastic,glass}", 33.4231, -112.1017, now, 4.82))

	centers, err := repo.Nearby(context.Background(), 33.45, -112.07, 50, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(centers) != 1 {
		t.Fatalf("centers = %d, want 1", len(centers))
	}

	c := centers[0]
	if c.Name != "GreenCycle Phoenix" {
		t.Errorf("name = %q", c.Name)
	}
	if len(c.Materials) != 3 || c.Materials[0] != "cardboard" {
		t.Errorf("materials = %v", c.Materials)
	}
	if c.DistanceKm == nil || *c.DistanceKm != 4.82 {
		t.Errorf("distance = %v", c.DistanceKm)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecyclingRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRecyclingRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{
			"center_id", "name", "address", "city", "phone", "hours", "materials", "lat", "lng", "created_at",
		}).AddRow(int64(2), "Desert Valley Recycling", "3060 E Washington St", "Phoenix",
			nil, nil, "{electronics,batteries}", 33.4478, -112.0125, now))

	centers, err := repo.Recent(context.Background(), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(centers) != 1 {
		t.Fatalf("centers = %d, want 1", len(centers))
	}

	c := centers[0]
	if c.DistanceKm != nil {
		t.Errorf("recent listing should not carry distance, got %v", c.DistanceKm)
	}
	if c.Phone != "" || c.Hours != "" {
		t.Errorf("null phone/hours should scan as empty, got %q/%q", c.Phone, c.Hours)
	}
	if len(c.Materials) != 2 {
		t.Errorf("materials = %v", c.Materials)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
