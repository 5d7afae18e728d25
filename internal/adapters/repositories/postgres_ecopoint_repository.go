package repositories

import (
	"context"
	"database/sql"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the EcoPointRepository port.
type PostgresEcoPointRepository struct{ DB *sql.DB }

func NewPostgresEcoPointRepository(db *sql.DB) *PostgresEcoPointRepository {
	return &PostgresEcoPointRepository{DB: db}
}

// Award records a manual out-of-band point grant.
func (s *PostgresEcoPointRepository) Award(ctx context.Context, a ports.ManualAward) (*domain.EcoPoint, error) {
	if s.DB == nil {
		return nil, errors.New("eco-point repository: DB is nil")
	}

	query := `
	INSERT INTO eco_points (user_identifier, delivery_id, points_earned, action_type, description)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING point_id, created_at;
	`
	point := domain.EcoPoint{
		UserIdentifier: a.UserIdentifier,
		DeliveryID:     a.DeliveryID,
		Points:         a.Points,
		ActionType:     a.ActionType,
		Description:    a.Description,
	}
	err := s.DB.QueryRowContext(ctx, query,
		a.UserIdentifier, a.DeliveryID, a.Points, a.ActionType, nullIfEmpty(a.Description),
	).Scan(&point.PointID, &point.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("award eco-points user=%q: %w", a.UserIdentifier, err)
	}

	return &point, nil
}

// UserSummary returns one user's balance and most recent actions. A user
// with no points gets a zero summary, not an error.
func (s *PostgresEcoPointRepository) UserSummary(
	ctx context.Context,
	userIdentifier string,
	limit int,
) (*ports.UserPointsReport, error) {
	if s.DB == nil {
		return nil, errors.New("eco-point repository: DB is nil")
	}

	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	report := ports.UserPointsReport{
		Summary: domain.UserPoints{UserIdentifier: userIdentifier},
		Recent:  []domain.EcoPoint{},
	}

	summaryQuery := `
	SELECT COALESCE(SUM(points_earned), 0), COUNT(*)
	FROM eco_points
	WHERE user_identifier = $1;
	`
	err := s.DB.QueryRowContext(ctx, summaryQuery, userIdentifier).
		Scan(&report.Summary.TotalPoints, &report.Summary.TotalActions)
	if err != nil {
		return nil, fmt.Errorf("eco-points summary user=%q: %w", userIdentifier, err)
	}

	recentQuery := `
	SELECT point_id, user_identifier, delivery_id, points_earned, action_type, description, created_at
	FROM eco_points
	WHERE user_identifier = $1
	ORDER BY created_at DESC
	LIMIT $2;
	`
	rows, err := s.DB.QueryContext(ctx, recentQuery, userIdentifier, limit)
	if err != nil {
		return nil, fmt.Errorf("eco-points recent user=%q: %w", userIdentifier, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.EcoPoint
		var did sql.NullInt64
		var desc sql.NullString
		if err := rows.Scan(&p.PointID, &p.UserIdentifier, &did, &p.Points, &p.ActionType, &desc, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("eco-points recent user=%q: scan row: %w", userIdentifier, err)
		}
		if did.Valid {
			v := did.Int64
			p.DeliveryID = &v
		}
		p.Description = desc.String
		report.Recent = append(report.Recent, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eco-points recent user=%q: row iteration: %w", userIdentifier, err)
	}

	return &report, nil
}

// Leaderboard returns the top users by total points.
func (s *PostgresEcoPointRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if s.DB == nil {
		return nil, errors.New("eco-point repository: DB is nil")
	}

	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
	SELECT user_identifier, SUM(points_earned) AS total_points, COUNT(*) AS total_actions, MAX(created_at) AS last_action
	FROM eco_points
	GROUP BY user_identifier
	ORDER BY total_points DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("eco-points leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserIdentifier, &e.TotalPoints, &e.TotalActions, &e.LastAction); err != nil {
			return nil, fmt.Errorf("eco-points leaderboard: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eco-points leaderboard: row iteration: %w", err)
	}

	return entries, nil
}
