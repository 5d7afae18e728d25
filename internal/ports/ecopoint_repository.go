package ports

import (
	"context"
	"ecologix-service/internal/domain"
)

// ManualAward is an out-of-band point grant (recycling visits and the like),
// independent of the automatic delivery-time rules.
type ManualAward struct {
	UserIdentifier string
	DeliveryID     *int64
	Points         int
	ActionType     string
	Description    string
}

// UserPointsReport is a user's balance plus their most recent actions.
type UserPointsReport struct {
	Summary domain.UserPoints
	Recent  []domain.EcoPoint
}

// Port: eco-point awards and leaderboard queries.
type EcoPointRepository interface {
	Award(ctx context.Context, a ManualAward) (*domain.EcoPoint, error)
	UserSummary(ctx context.Context, userIdentifier string, limit int) (*UserPointsReport, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
