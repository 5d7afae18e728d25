package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/ports"
	"ecologix-service/internal/services"
	"net/http"
	"strconv"
)

const defaultLeaderboardSize = 10

// EcoPointHandler exposes point summaries, the leaderboard and manual awards.
type EcoPointHandler struct {
	Repo ports.EcoPointRepository
}

// Get returns a per-user summary when ?user= is given, otherwise the
// global leaderboard.
func (h *EcoPointHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultLeaderboardSize
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	if user := q.Get("user"); user != "" {
		report, err := h.Repo.UserSummary(r.Context(), user, limit)
		if err != nil {
			writeDomainError(w, r, "get eco-points", err)
			return
		}
		writeSuccess(w, r, http.StatusOK, dto.NewUserPointsResponse(report))
		return
	}

	entries, err := h.Repo.Leaderboard(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, "get eco-points leaderboard", err)
		return
	}

	res := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.LeaderboardEntryResponse{
			UserIdentifier: e.UserIdentifier,
			TotalPoints:    e.TotalPoints,
			TotalActions:   e.TotalActions,
			LastAction:     e.LastAction,
		})
	}

	writeSuccess(w, r, http.StatusOK, res)
}

func (h *EcoPointHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req dto.AwardPointsRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	point, err := services.AwardPoints(r.Context(), ports.ManualAward{
		UserIdentifier: req.UserIdentifier,
		DeliveryID:     req.DeliveryID,
		Points:         req.PointsEarned,
		ActionType:     req.ActionType,
		Description:    req.Description,
	}, h.Repo)
	if err != nil {
		writeDomainError(w, r, "award eco-points", err)
		return
	}

	writeSuccess(w, r, http.StatusCreated, dto.NewEcoPointResponse(point))
}
