package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"net/http"
	"strconv"
)

const defaultWindowDays = 30

// DashboardHandler serves the full aggregation bundle the dashboard polls.
type DashboardHandler struct {
	Repo ports.ReportingRepository
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days := defaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	ctx := r.Context()
	stats := domain.DashboardStats{PeriodDays: days}

	overview, err := h.Repo.Overview(ctx, days)
	if err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}
	stats.Overview = *overview

	if stats.ByVehicleType, err = h.Repo.ByVehicleType(ctx, days); err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}
	if stats.ByStatus, err = h.Repo.ByStatus(ctx, days); err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}
	if stats.Trends, err = h.Repo.EmissionTrends(ctx, days); err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}

	savings, err := h.Repo.CarbonSavings(ctx, days)
	if err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}
	stats.CarbonSavings = *savings

	if stats.EcoPoints, err = h.Repo.EcoPointsSummary(ctx, days); err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}

	failed, err := h.Repo.FailedDeliveries(ctx, days)
	if err != nil {
		writeDomainError(w, r, "dashboard stats", err)
		return
	}
	stats.Failed = *failed

	writeSuccess(w, r, http.StatusOK, dto.NewDashboardStatsResponse(&stats))
}
