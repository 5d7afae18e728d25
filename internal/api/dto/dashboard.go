package dto

import "ecologix-service/internal/domain"

type OverviewResponse struct {
	TotalDeliveries         int     `json:"total_deliveries"`
	TotalEmissions          float64 `json:"total_emissions"`
	AvgEmissionsPerDelivery float64 `json:"avg_emissions_per_delivery"`
	TotalDistance           float64 `json:"total_distance"`
}

type VehicleStatsResponse struct {
	VehicleType    string  `json:"vehicle_type"`
	DeliveryCount  int     `json:"delivery_count"`
	TotalEmissions float64 `json:"total_emissions"`
	AvgEmissions   float64 `json:"avg_emissions"`
	TotalDistance  float64 `json:"total_distance"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TrendPointResponse struct {
	Date           string  `json:"date"`
	Deliveries     int     `json:"deliveries"`
	TotalEmissions float64 `json:"total_emissions"`
	AvgEmissions   float64 `json:"avg_emissions"`
}

type CarbonSavingsResponse struct {
	ActualEmissions         float64 `json:"actual_emissions"`
	PotentialTruckEmissions float64 `json:"potential_truck_emissions"`
	CarbonSaved             float64 `json:"carbon_saved"`
}

type EcoActionStatsResponse struct {
	ActionType  string `json:"action_type"`
	TotalPoints int    `json:"total_points"`
	UniqueUsers int    `json:"unique_users"`
	ActionCount int    `json:"action_count"`
}

type FailedDeliveriesResponse struct {
	FailedCount   int     `json:"failed_count"`
	TotalAttempts int     `json:"total_attempts"`
	AvgAttempts   float64 `json:"avg_attempts"`
}

type DashboardStatsResponse struct {
	Overview         OverviewResponse         `json:"overview"`
	ByVehicleType    []VehicleStatsResponse   `json:"by_vehicle_type"`
	ByStatus         []StatusCountResponse    `json:"by_status"`
	EmissionTrends   []TrendPointResponse     `json:"emission_trends"`
	FailedDeliveries FailedDeliveriesResponse `json:"failed_deliveries"`
	EcoPoints        []EcoActionStatsResponse `json:"eco_points"`
	CarbonSavings    CarbonSavingsResponse    `json:"carbon_savings"`
	PeriodDays       int                      `json:"period_days"`
}

func NewDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	res := DashboardStatsResponse{
		Overview: OverviewResponse{
			TotalDeliveries:         s.Overview.TotalDeliveries,
			TotalEmissions:          s.Overview.TotalEmissions,
			AvgEmissionsPerDelivery: s.Overview.AvgEmissions,
			TotalDistance:           s.Overview.TotalDistance,
		},
		ByVehicleType: make([]VehicleStatsResponse, 0, len(s.ByVehicleType)),
		ByStatus:      make([]StatusCountResponse, 0, len(s.ByStatus)),
		EmissionTrends: make([]TrendPointResponse, 0, len(s.Trends)),
		FailedDeliveries: FailedDeliveriesResponse{
			FailedCount:   s.Failed.FailedCount,
			TotalAttempts: s.Failed.TotalAttempts,
			AvgAttempts:   s.Failed.AvgAttempts,
		},
		EcoPoints: make([]EcoActionStatsResponse, 0, len(s.EcoPoints)),
		CarbonSavings: CarbonSavingsResponse{
			ActualEmissions:         s.CarbonSavings.ActualEmissions,
			PotentialTruckEmissions: s.CarbonSavings.PotentialTruckEmissions,
			CarbonSaved:             s.CarbonSavings.CarbonSaved,
		},
		PeriodDays: s.PeriodDays,
	}

	for _, v := range s.ByVehicleType {
		res.ByVehicleType = append(res.ByVehicleType, VehicleStatsResponse{
			VehicleType:    string(v.Vehicle),
			DeliveryCount:  v.DeliveryCount,
			TotalEmissions: v.TotalEmissions,
			AvgEmissions:   v.AvgEmissions,
			TotalDistance:  v.TotalDistance,
		})
	}
	for _, c := range s.ByStatus {
		res.ByStatus = append(res.ByStatus, StatusCountResponse{Status: string(c.Status), Count: c.Count})
	}
	for _, t := range s.Trends {
		res.EmissionTrends = append(res.EmissionTrends, TrendPointResponse{
			Date:           t.Date.Format("2006-01-02"),
			Deliveries:     t.Deliveries,
			TotalEmissions: t.TotalEmissions,
			AvgEmissions:   t.AvgEmissions,
		})
	}
	for _, a := range s.EcoPoints {
		res.EcoPoints = append(res.EcoPoints, EcoActionStatsResponse{
			ActionType:  a.ActionType,
			TotalPoints: a.TotalPoints,
			UniqueUsers: a.UniqueUsers,
			ActionCount: a.ActionCount,
		})
	}

	return res
}
