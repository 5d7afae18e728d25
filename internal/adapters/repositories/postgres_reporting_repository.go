package repositories

import (
	"context"
	"database/sql"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed implementation of the ReportingRepository port. Every
// aggregate coalesces to zero so an empty window is a report, not an error.
type PostgresReportingRepository struct{ DB *sql.DB }

func NewPostgresReportingRepository(db *sql.DB) *PostgresReportingRepository {
	return &PostgresReportingRepository{DB: db}
}

func (s *PostgresReportingRepository) Overview(ctx context.Context, days int) (*domain.OverviewStats, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT
		COUNT(DISTINCT d.delivery_id) AS total_deliveries,
		COALESCE(SUM(e.co2_emissions_kg), 0) AS total_emissions,
		COALESCE(AVG(e.co2_emissions_kg), 0) AS avg_emissions_per_delivery,
		COALESCE(SUM(d.distance_km), 0) AS total_distance
	FROM deliveries d
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE d.created_at >= now() - make_interval(days => $1);
	`
	var o domain.OverviewStats
	err := s.DB.QueryRowContext(ctx, query, days).
		Scan(&o.TotalDeliveries, &o.TotalEmissions, &o.AvgEmissions, &o.TotalDistance)
	if err != nil {
		return nil, fmt.Errorf("reporting overview: %w", err)
	}
	return &o, nil
}

func (s *PostgresReportingRepository) ByVehicleType(ctx context.Context, days int) ([]domain.VehicleStats, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT
		d.vehicle_type,
		COUNT(d.delivery_id) AS delivery_count,
		COALESCE(SUM(e.co2_emissions_kg), 0) AS total_emissions,
		COALESCE(AVG(e.co2_emissions_kg), 0) AS avg_emissions,
		COALESCE(SUM(d.distance_km), 0) AS total_distance
	FROM deliveries d
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE d.created_at >= now() - make_interval(days => $1)
	GROUP BY d.vehicle_type
	ORDER BY total_emissions DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reporting by vehicle type: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.VehicleStats, 0, len(domain.VehicleTypes))
	for rows.Next() {
		var v domain.VehicleStats
		var vehicle string
		if err := rows.Scan(&vehicle, &v.DeliveryCount, &v.TotalEmissions, &v.AvgEmissions, &v.TotalDistance); err != nil {
			return nil, fmt.Errorf("reporting by vehicle type: scan row: %w", err)
		}
		v.Vehicle = domain.VehicleType(vehicle)
		stats = append(stats, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reporting by vehicle type: row iteration: %w", err)
	}
	return stats, nil
}

func (s *PostgresReportingRepository) ByStatus(ctx context.Context, days int) ([]domain.StatusCount, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT status, COUNT(*) AS count
	FROM deliveries
	WHERE created_at >= now() - make_interval(days => $1)
	GROUP BY status;
	`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reporting by status: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0, 4)
	for rows.Next() {
		var c domain.StatusCount
		var status string
		if err := rows.Scan(&status, &c.Count); err != nil {
			return nil, fmt.Errorf("reporting by status: scan row: %w", err)
		}
		c.Status = domain.DeliveryStatus(status)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reporting by status: row iteration: %w", err)
	}
	return counts, nil
}

// EmissionTrends returns one row per calendar day, newest first. Consumers
// reverse the slice for chronological charting.
func (s *PostgresReportingRepository) EmissionTrends(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT
		DATE(d.created_at) AS date,
		COUNT(d.delivery_id) AS deliveries,
		COALESCE(SUM(e.co2_emissions_kg), 0) AS total_emissions,
		COALESCE(AVG(e.co2_emissions_kg), 0) AS avg_emissions
	FROM deliveries d
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE d.created_at >= now() - make_interval(days => $1)
	GROUP BY DATE(d.created_at)
	ORDER BY date DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reporting emission trends: %w", err)
	}
	defer rows.Close()

	trends := make([]domain.TrendPoint, 0, days)
	for rows.Next() {
		var t domain.TrendPoint
		if err := rows.Scan(&t.Date, &t.Deliveries, &t.TotalEmissions, &t.AvgEmissions); err != nil {
			return nil, fmt.Errorf("reporting emission trends: scan row: %w", err)
		}
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reporting emission trends: row iteration: %w", err)
	}
	return trends, nil
}

func (s *PostgresReportingRepository) CarbonSavings(ctx context.Context, days int) (*domain.CarbonSavings, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	// 0.27 is the truck factor: the baseline assumes every delivery in the
	// window had been driven by truck.
	query := `
	SELECT
		COALESCE(SUM(e.co2_emissions_kg), 0) AS actual_emissions,
		COALESCE(SUM(d.distance_km * 0.27), 0) AS potential_truck_emissions,
		COALESCE(SUM(d.distance_km * 0.27 - e.co2_emissions_kg), 0) AS carbon_saved
	FROM deliveries d
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE d.created_at >= now() - make_interval(days => $1);
	`
	var c domain.CarbonSavings
	err := s.DB.QueryRowContext(ctx, query, days).
		Scan(&c.ActualEmissions, &c.PotentialTruckEmissions, &c.CarbonSaved)
	if err != nil {
		return nil, fmt.Errorf("reporting carbon savings: %w", err)
	}
	return &c, nil
}

func (s *PostgresReportingRepository) EcoPointsSummary(ctx context.Context, days int) ([]domain.EcoActionStats, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT
		action_type,
		COALESCE(SUM(points_earned), 0) AS total_points,
		COUNT(DISTINCT user_identifier) AS unique_users,
		COUNT(*) AS action_count
	FROM eco_points
	WHERE created_at >= now() - make_interval(days => $1)
	GROUP BY action_type;
	`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reporting eco-points summary: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.EcoActionStats, 0, 4)
	for rows.Next() {
		var a domain.EcoActionStats
		if err := rows.Scan(&a.ActionType, &a.TotalPoints, &a.UniqueUsers, &a.ActionCount); err != nil {
			return nil, fmt.Errorf("reporting eco-points summary: scan row: %w", err)
		}
		stats = append(stats, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reporting eco-points summary: row iteration: %w", err)
	}
	return stats, nil
}

func (s *PostgresReportingRepository) FailedDeliveries(ctx context.Context, days int) (*domain.FailureStats, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	query := `
	SELECT
		COUNT(*) AS failed_count,
		COALESCE(SUM(delivery_attempts), 0) AS total_attempts,
		COALESCE(AVG(delivery_attempts), 0) AS avg_attempts
	FROM deliveries
	WHERE status = 'failed'
	AND created_at >= now() - make_interval(days => $1);
	`
	var f domain.FailureStats
	err := s.DB.QueryRowContext(ctx, query, days).
		Scan(&f.FailedCount, &f.TotalAttempts, &f.AvgAttempts)
	if err != nil {
		return nil, fmt.Errorf("reporting failed deliveries: %w", err)
	}
	return &f, nil
}

const reportBaseQuery = `
	SELECT ` + deliveryRecordColumns + `
	FROM deliveries d
	LEFT JOIN orders o ON d.order_id = o.order_id
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id`

func (s *PostgresReportingRepository) ReportByDelivery(ctx context.Context, deliveryID int64) (*domain.DeliveryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	rec, err := s.queryOneRecord(ctx, reportBaseQuery+" WHERE d.delivery_id = $1;", deliveryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report for delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("report for delivery %d: %w", deliveryID, err)
	}
	return rec, nil
}

func (s *PostgresReportingRepository) ReportByShipment(ctx context.Context, shipmentID string) (*domain.DeliveryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	rec, err := s.queryOneRecord(ctx, reportBaseQuery+" WHERE d.shipment_id = $1;", shipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report for shipment %q: %w", shipmentID, domain.ErrShipmentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("report for shipment %q: %w", shipmentID, err)
	}
	return rec, nil
}

func (s *PostgresReportingRepository) ReportByOrder(ctx context.Context, orderID string) ([]*domain.DeliveryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	return s.queryRecords(ctx, reportBaseQuery+" WHERE d.order_id = $1 ORDER BY d.created_at DESC;", orderID)
}

// ReportByDateRange returns all delivery records inside the bounds. Open
// bounds are omitted from the query rather than bound as sentinels.
func (s *PostgresReportingRepository) ReportByDateRange(ctx context.Context, r ports.DateRange) ([]*domain.DeliveryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("reporting repository: DB is nil")
	}

	var b strings.Builder
	b.WriteString(reportBaseQuery)
	b.WriteString(" WHERE 1=1")

	args := make([]any, 0, 2)
	if r.Start != nil {
		args = append(args, *r.Start)
		fmt.Fprintf(&b, " AND d.created_at >= $%d", len(args))
	}
	if r.End != nil {
		args = append(args, *r.End)
		fmt.Fprintf(&b, " AND d.created_at <= $%d", len(args))
	}
	b.WriteString(" ORDER BY d.created_at DESC;")

	return s.queryRecords(ctx, b.String(), args...)
}

func (s *PostgresReportingRepository) queryOneRecord(ctx context.Context, query string, args ...any) (*domain.DeliveryRecord, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanDeliveryRecord(rows)
}

func (s *PostgresReportingRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*domain.DeliveryRecord, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.DeliveryRecord, 0, 32)
	for rows.Next() {
		rec, err := scanDeliveryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("report query: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report query: row iteration: %w", err)
	}
	return records, nil
}
