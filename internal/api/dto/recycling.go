package dto

import (
	"ecologix-service/internal/domain"
	"time"
)

type RecyclingCenterResponse struct {
	CenterID   int64     `json:"center_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Phone      string    `json:"phone,omitempty"`
	Hours      string    `json:"hours,omitempty"`
	Materials  []string  `json:"materials"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CreatedAt  time.Time `json:"created_at"`
	DistanceKm *float64  `json:"distance_km,omitempty"`
}

func NewRecyclingCenterResponse(c *domain.RecyclingCenter) RecyclingCenterResponse {
	materials := c.Materials
	if materials == nil {
		materials = []string{}
	}
	return RecyclingCenterResponse{
		CenterID:   c.CenterID,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		Phone:      c.Phone,
		Hours:      c.Hours,
		Materials:  materials,
		Lat:        c.Lat,
		Lng:        c.Lng,
		CreatedAt:  c.CreatedAt,
		DistanceKm: c.DistanceKm,
	}
}
