package services

import (
	"context"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"fmt"
	"strings"
)

// AwardPoints validates and records a manual eco-point grant.
func AwardPoints(
	ctx context.Context,
	award ports.ManualAward,
	repo ports.EcoPointRepository,
) (*domain.EcoPoint, error) {
	if strings.TrimSpace(award.UserIdentifier) == "" {
		return nil, domain.MissingField("user_identifier")
	}
	if strings.TrimSpace(award.ActionType) == "" {
		return nil, domain.MissingField("action_type")
	}
	if award.Points <= 0 {
		return nil, fmt.Errorf("%w: points_earned must be a positive integer", domain.ErrValidation)
	}

	point, err := repo.Award(ctx, award)
	if err != nil {
		return nil, fmt.Errorf("award points: %w", err)
	}

	return point, nil
}
