package ports

import (
	"context"
	"ecologix-service/internal/domain"
	"time"
)

// DateRange bounds an emissions report; nil ends are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Port: read-only aggregation queries over a trailing N-day window, plus
// single-entity and date-range emission reports. All aggregates treat an
// empty window as zero and guard their averages against division by zero.
type ReportingRepository interface {
	Overview(ctx context.Context, days int) (*domain.OverviewStats, error)
	ByVehicleType(ctx context.Context, days int) ([]domain.VehicleStats, error)
	ByStatus(ctx context.Context, days int) ([]domain.StatusCount, error)
	EmissionTrends(ctx context.Context, days int) ([]domain.TrendPoint, error)
	CarbonSavings(ctx context.Context, days int) (*domain.CarbonSavings, error)
	EcoPointsSummary(ctx context.Context, days int) ([]domain.EcoActionStats, error)
	FailedDeliveries(ctx context.Context, days int) (*domain.FailureStats, error)

	ReportByDelivery(ctx context.Context, deliveryID int64) (*domain.DeliveryRecord, error)
	ReportByShipment(ctx context.Context, shipmentID string) (*domain.DeliveryRecord, error)
	ReportByOrder(ctx context.Context, orderID string) ([]*domain.DeliveryRecord, error)
	ReportByDateRange(ctx context.Context, r DateRange) ([]*domain.DeliveryRecord, error)
}
