package repositories

import (
	"context"
	"database/sql"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Listings are capped so caller-controlled pagination cannot exhaust memory.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Postgres-backed implementation of the DeliveryRepository port.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

// Create persists the order upsert, delivery and emission in one transaction,
// then attempts the eco-point award outside it. A delivery can never exist
// without its emission; it can exist without points.
func (s *PostgresDeliveryRepository) Create(
	ctx context.Context,
	rec ports.CreateDeliveryRecord,
) (*ports.CreatedDelivery, error) {
	if s.DB == nil {
		return nil, errors.New("delivery repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create delivery: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Upsert keeps concurrent creations under the same order safe:
	// last writer wins on customer fields, but an empty name never
	// clobbers an existing one.
	upsertOrderQuery := `
	INSERT INTO orders (order_id, customer_name, customer_phone, status)
	VALUES ($1, $2, $3, 'pending')
	ON CONFLICT (order_id) DO UPDATE
	SET customer_name = COALESCE(NULLIF(EXCLUDED.customer_name, ''), orders.customer_name),
		customer_phone = COALESCE(EXCLUDED.customer_phone, orders.customer_phone);
	`
	if _, err := tx.ExecContext(ctx, upsertOrderQuery,
		rec.Order.OrderID, rec.Order.CustomerName, rec.Order.CustomerPhone,
	); err != nil {
		return nil, fmt.Errorf("create delivery: upsert order %q: %w", rec.Order.OrderID, err)
	}

	insertDeliveryQuery := `
	INSERT INTO deliveries (
		order_id, shipment_id,
		origin_address, origin_city, origin_lat, origin_lng,
		destination_address, destination_city, destination_lat, destination_lng,
		distance_km, vehicle_type, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'pending')
	RETURNING delivery_id, status, delivery_attempts, created_at;
	`
	delivery := domain.Delivery{
		OrderID:     rec.Order.OrderID,
		ShipmentID:  rec.ShipmentID,
		Origin:      rec.Origin,
		Destination: rec.Destination,
		DistanceKm:  rec.DistanceKm,
		Vehicle:     rec.Vehicle,
	}

	var status string
	err = tx.QueryRowContext(ctx, insertDeliveryQuery,
		rec.Order.OrderID, rec.ShipmentID,
		nullIfEmpty(rec.Origin.Address), nullIfEmpty(rec.Origin.City), rec.Origin.Lat, rec.Origin.Lng,
		nullIfEmpty(rec.Destination.Address), nullIfEmpty(rec.Destination.City), rec.Destination.Lat, rec.Destination.Lng,
		rec.DistanceKm, string(rec.Vehicle),
	).Scan(&delivery.DeliveryID, &status, &delivery.Attempts, &delivery.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create delivery: insert delivery shipment_id=%q: %w", rec.ShipmentID, err)
	}
	delivery.Status = domain.DeliveryStatus(status)

	insertEmissionQuery := `
	INSERT INTO emissions (delivery_id, vehicle_type, distance_km, co2_emissions_kg, emission_factor)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING emission_id, created_at;
	`
	emission := domain.Emission{
		DeliveryID:     delivery.DeliveryID,
		Vehicle:        rec.Vehicle,
		DistanceKm:     rec.DistanceKm,
		CO2EmissionsKg: rec.Emission.CO2Kg,
		EmissionFactor: rec.Emission.Factor,
	}
	err = tx.QueryRowContext(ctx, insertEmissionQuery,
		delivery.DeliveryID, string(rec.Vehicle), rec.DistanceKm, rec.Emission.CO2Kg, rec.Emission.Factor,
	).Scan(&emission.EmissionID, &emission.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create delivery: insert emission for delivery_id=%d: %w", delivery.DeliveryID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create delivery: commit tx: %w", err)
	}

	created := &ports.CreatedDelivery{Delivery: &delivery, Emission: &emission}

	if rec.Award != nil {
		award, err := s.awardPoints(ctx, delivery.DeliveryID, rec.UserIdentifier, *rec.Award)
		if err != nil {
			// Points are best-effort: the delivery and emission are
			// already committed and must not be rolled back.
			log.Printf("eco-point award failed: delivery_id=%d err=%v", delivery.DeliveryID, err)
		} else {
			created.Award = award
		}
	}

	return created, nil
}

// awardPoints inserts the automatic award. The partial unique index on
// (delivery_id, action_type) makes retried creations award at most once;
// the conflicting insert returns no row and no award.
func (s *PostgresDeliveryRepository) awardPoints(
	ctx context.Context,
	deliveryID int64,
	userIdentifier string,
	award domain.EcoAward,
) (*domain.EcoPoint, error) {
	query := `
	INSERT INTO eco_points (user_identifier, delivery_id, points_earned, action_type, description)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (delivery_id, action_type) WHERE delivery_id IS NOT NULL DO NOTHING
	RETURNING point_id, created_at;
	`
	point := domain.EcoPoint{
		UserIdentifier: userIdentifier,
		DeliveryID:     &deliveryID,
		Points:         award.Points,
		ActionType:     award.ActionType,
		Description:    award.Description,
	}
	err := s.DB.QueryRowContext(ctx, query,
		userIdentifier, deliveryID, award.Points, award.ActionType, award.Description,
	).Scan(&point.PointID, &point.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert eco_points: %w", err)
	}
	return &point, nil
}

// UpdateStatus applies a partial update built from typed fields, stamping
// completion or failure timestamps on the matching transitions.
func (s *PostgresDeliveryRepository) UpdateStatus(
	ctx context.Context,
	deliveryID int64,
	upd ports.StatusUpdate,
) (*domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("delivery repository: DB is nil")
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if upd.Status != nil {
		args = append(args, string(*upd.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))

		switch *upd.Status {
		case domain.StatusDelivered:
			sets = append(sets, "completed_at = now()")
		case domain.StatusFailed:
			sets = append(sets, "failed_at = now()")
		}
	}

	if upd.Attempts != nil {
		args = append(args, *upd.Attempts)
		sets = append(sets, fmt.Sprintf("delivery_attempts = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}

	args = append(args, deliveryID)
	query := fmt.Sprintf(`
	UPDATE deliveries
	SET %s
	WHERE delivery_id = $%d
	RETURNING delivery_id, order_id, shipment_id, distance_km, vehicle_type, status,
		delivery_attempts, created_at, completed_at, failed_at;
	`, strings.Join(sets, ", "), len(args))

	var d domain.Delivery
	var vehicle, status string
	var completedAt, failedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, args...).Scan(
		&d.DeliveryID, &d.OrderID, &d.ShipmentID, &d.DistanceKm, &vehicle, &status,
		&d.Attempts, &d.CreatedAt, &completedAt, &failedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update delivery %d: %w", deliveryID, err)
	}

	d.Vehicle = domain.VehicleType(vehicle)
	d.Status = domain.DeliveryStatus(status)
	d.CompletedAt = nullTime(completedAt)
	d.FailedAt = nullTime(failedAt)

	return &d, nil
}

// Get returns the full detail view: delivery, customer fields, emission and
// eco-points. The points slice is empty, never nil, when nothing was earned.
func (s *PostgresDeliveryRepository) Get(ctx context.Context, deliveryID int64) (*domain.DeliveryDetail, error) {
	if s.DB == nil {
		return nil, errors.New("delivery repository: DB is nil")
	}

	query := `
	SELECT ` + deliveryRecordColumns + `, o.status
	FROM deliveries d
	LEFT JOIN orders o ON d.order_id = o.order_id
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE d.delivery_id = $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d: %w", deliveryID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get delivery %d: %w", deliveryID, err)
		}
		return nil, fmt.Errorf("get delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}

	detail := domain.DeliveryDetail{EcoPoints: []domain.EcoPoint{}}
	rec, err := scanRecordWithOrderStatus(rows, &detail.OrderStatus)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d: %w", deliveryID, err)
	}
	detail.DeliveryRecord = *rec
	rows.Close()

	pointsQuery := `
	SELECT point_id, user_identifier, delivery_id, points_earned, action_type, description, created_at
	FROM eco_points
	WHERE delivery_id = $1
	ORDER BY created_at DESC;
	`
	pointRows, err := s.DB.QueryContext(ctx, pointsQuery, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d: query eco_points: %w", deliveryID, err)
	}
	defer pointRows.Close()

	for pointRows.Next() {
		var p domain.EcoPoint
		var did sql.NullInt64
		var desc sql.NullString
		if err := pointRows.Scan(&p.PointID, &p.UserIdentifier, &did, &p.Points, &p.ActionType, &desc, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("get delivery %d: scan eco_point: %w", deliveryID, err)
		}
		if did.Valid {
			v := did.Int64
			p.DeliveryID = &v
		}
		p.Description = desc.String
		detail.EcoPoints = append(detail.EcoPoints, p)
	}
	if err := pointRows.Err(); err != nil {
		return nil, fmt.Errorf("get delivery %d: eco_points iteration: %w", deliveryID, err)
	}

	return &detail, nil
}

// List returns a filtered page of delivery records, newest first.
// Filters are bound as parameters, never concatenated into the query text.
func (s *PostgresDeliveryRepository) List(
	ctx context.Context,
	f ports.DeliveryFilter,
) ([]*domain.DeliveryRecord, error) {
	if s.DB == nil {
		return nil, errors.New("delivery repository: DB is nil")
	}

	limit := f.Limit
	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder
	b.WriteString(`
	SELECT ` + deliveryRecordColumns + `
	FROM deliveries d
	LEFT JOIN orders o ON d.order_id = o.order_id
	LEFT JOIN emissions e ON d.delivery_id = e.delivery_id
	WHERE 1=1`)

	args := make([]any, 0, 4)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		fmt.Fprintf(&b, " AND d.status = $%d", len(args))
	}
	if f.Vehicle != nil {
		args = append(args, string(*f.Vehicle))
		fmt.Fprintf(&b, " AND d.vehicle_type = $%d", len(args))
	}

	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY d.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&b, " OFFSET $%d;", len(args))

	rows, err := s.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.DeliveryRecord, 0, limit)
	for rows.Next() {
		rec, err := scanDeliveryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return records, nil
}

// scanRecordWithOrderStatus scans the standard record columns plus the
// order's own status at the end of the row.
func scanRecordWithOrderStatus(row rowScanner, orderStatus *domain.OrderStatus) (*domain.DeliveryRecord, error) {
	var rec domain.DeliveryRecord
	var originAddr, originCity, destAddr, destCity sql.NullString
	var customerName, customerPhone, oStatus sql.NullString
	var originLat, originLng, destLat, destLng sql.NullFloat64
	var co2, factor sql.NullFloat64
	var completedAt, failedAt, emissionAt sql.NullTime
	var vehicle, status string

	err := row.Scan(
		&rec.DeliveryID, &rec.OrderID, &rec.ShipmentID,
		&originAddr, &originCity, &originLat, &originLng,
		&destAddr, &destCity, &destLat, &destLng,
		&rec.DistanceKm, &vehicle, &status, &rec.Attempts,
		&rec.CreatedAt, &completedAt, &failedAt,
		&customerName, &customerPhone,
		&co2, &factor, &emissionAt,
		&oStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("scan delivery record: %w", err)
	}

	rec.Origin = domain.Place{Address: originAddr.String, City: originCity.String, Lat: nullFloat(originLat), Lng: nullFloat(originLng)}
	rec.Destination = domain.Place{Address: destAddr.String, City: destCity.String, Lat: nullFloat(destLat), Lng: nullFloat(destLng)}
	rec.Vehicle = domain.VehicleType(vehicle)
	rec.Status = domain.DeliveryStatus(status)
	rec.CompletedAt = nullTime(completedAt)
	rec.FailedAt = nullTime(failedAt)
	rec.CustomerName = customerName.String
	rec.CustomerPhone = nullString(customerPhone)
	rec.CO2EmissionsKg = nullFloat(co2)
	rec.EmissionFactor = nullFloat(factor)
	rec.EmissionAt = nullTime(emissionAt)
	*orderStatus = domain.OrderStatus(oStatus.String)

	return &rec, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
