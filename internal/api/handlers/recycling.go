package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"net/http"
	"strconv"
)

const (
	defaultSearchRadiusKm = 50.0
	defaultCenterLimit    = 20
)

// RecyclingHandler serves recycling-center lookups. With a lat/lng pair it
// does a proximity search, otherwise it lists the most recent centers.
type RecyclingHandler struct {
	Repo ports.RecyclingRepository
}

func (h *RecyclingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	radius := defaultSearchRadiusKm
	if raw := q.Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			writeError(w, r, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		radius = v
	}

	limit := defaultCenterLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	var centers []*domain.RecyclingCenter
	var err error

	latRaw, lngRaw := q.Get("lat"), q.Get("lng")
	if latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			writeError(w, r, http.StatusBadRequest, "lat and lng must be numbers")
			return
		}
		centers, err = h.Repo.Nearby(r.Context(), lat, lng, radius, limit)
	} else {
		centers, err = h.Repo.Recent(r.Context(), limit)
	}
	if err != nil {
		writeDomainError(w, r, "list recycling centers", err)
		return
	}

	res := make([]dto.RecyclingCenterResponse, 0, len(centers))
	for _, c := range centers {
		res = append(res, dto.NewRecyclingCenterResponse(c))
	}
	writeList(w, r, http.StatusOK, res, len(res))
}
