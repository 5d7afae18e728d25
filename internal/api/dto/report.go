package dto

import (
	"ecologix-service/internal/domain"
	"time"
)

// SingleReportResponse is the per-delivery (or per-shipment) emission report.
type SingleReportResponse struct {
	DeliveryResponse
	EmissionCalculatedAt *time.Time `json:"emission_calculated_at,omitempty"`
}

type OrderReportResponse struct {
	OrderID        string             `json:"order_id"`
	Deliveries     []DeliveryResponse `json:"deliveries"`
	TotalEmissions float64            `json:"total_emissions"`
	DeliveryCount  int                `json:"delivery_count"`
}

type ReportSummaryResponse struct {
	TotalDeliveries         int     `json:"total_deliveries"`
	TotalEmissions          float64 `json:"total_emissions"`
	AvgEmissionsPerDelivery float64 `json:"avg_emissions_per_delivery"`
	StartDate               *string `json:"start_date"`
	EndDate                 *string `json:"end_date"`
}

type RangeReportResponse struct {
	Deliveries []DeliveryResponse    `json:"deliveries"`
	Summary    ReportSummaryResponse `json:"summary"`
}

func NewSingleReportResponse(rec *domain.DeliveryRecord) SingleReportResponse {
	return SingleReportResponse{
		DeliveryResponse:     NewDeliveryResponse(rec),
		EmissionCalculatedAt: rec.EmissionAt,
	}
}
