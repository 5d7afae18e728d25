package dto

import (
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"time"
)

type AwardPointsRequest struct {
	UserIdentifier string `json:"user_identifier"`
	DeliveryID     *int64 `json:"delivery_id"`
	PointsEarned   int    `json:"points_earned"`
	ActionType     string `json:"action_type"`
	Description    string `json:"description"`
}

type EcoPointResponse struct {
	PointID        int64     `json:"point_id"`
	UserIdentifier string    `json:"user_identifier"`
	DeliveryID     *int64    `json:"delivery_id,omitempty"`
	PointsEarned   int       `json:"points_earned"`
	ActionType     string    `json:"action_type"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserPointsSummaryResponse struct {
	UserIdentifier string `json:"user_identifier"`
	TotalPoints    int    `json:"total_points"`
	TotalActions   int    `json:"total_actions"`
}

type UserPointsResponse struct {
	Summary       UserPointsSummaryResponse `json:"summary"`
	RecentActions []EcoPointResponse        `json:"recent_actions"`
}

type LeaderboardEntryResponse struct {
	UserIdentifier string    `json:"user_identifier"`
	TotalPoints    int       `json:"total_points"`
	TotalActions   int       `json:"total_actions"`
	LastAction     time.Time `json:"last_action"`
}

func NewEcoPointResponse(p *domain.EcoPoint) EcoPointResponse {
	return EcoPointResponse{
		PointID:        p.PointID,
		UserIdentifier: p.UserIdentifier,
		DeliveryID:     p.DeliveryID,
		PointsEarned:   p.Points,
		ActionType:     p.ActionType,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
	}
}

func NewUserPointsResponse(r *ports.UserPointsReport) UserPointsResponse {
	res := UserPointsResponse{
		Summary: UserPointsSummaryResponse{
			UserIdentifier: r.Summary.UserIdentifier,
			TotalPoints:    r.Summary.TotalPoints,
			TotalActions:   r.Summary.TotalActions,
		},
		RecentActions: make([]EcoPointResponse, 0, len(r.Recent)),
	}
	for i := range r.Recent {
		res.RecentActions = append(res.RecentActions, NewEcoPointResponse(&r.Recent[i]))
	}
	return res
}
