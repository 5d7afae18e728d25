package domain

import "time"

// Aggregate read models for the dashboard. Windows with no matching rows
// produce zero values, never errors.

type OverviewStats struct {
	TotalDeliveries int
	TotalEmissions  float64
	AvgEmissions    float64
	TotalDistance   float64
}

type VehicleStats struct {
	Vehicle        VehicleType
	DeliveryCount  int
	TotalEmissions float64
	AvgEmissions   float64
	TotalDistance  float64
}

type StatusCount struct {
	Status DeliveryStatus
	Count  int
}

// TrendPoint is one calendar day of emission activity.
type TrendPoint struct {
	Date           time.Time
	Deliveries     int
	TotalEmissions float64
	AvgEmissions   float64
}

// CarbonSavings compares actual emissions in the window against the
// hypothetical all-truck baseline for the same distances.
type CarbonSavings struct {
	ActualEmissions         float64
	PotentialTruckEmissions float64
	CarbonSaved             float64
}

type EcoActionStats struct {
	ActionType  string
	TotalPoints int
	UniqueUsers int
	ActionCount int
}

type FailureStats struct {
	FailedCount   int
	TotalAttempts int
	AvgAttempts   float64
}

// DashboardStats bundles every dashboard aggregate for one window.
type DashboardStats struct {
	Overview      OverviewStats
	ByVehicleType []VehicleStats
	ByStatus      []StatusCount
	Trends        []TrendPoint
	CarbonSavings CarbonSavings
	EcoPoints     []EcoActionStats
	Failed        FailureStats
	PeriodDays    int
}

// UserPoints summarizes one user's eco-point balance.
type UserPoints struct {
	UserIdentifier string
	TotalPoints    int
	TotalActions   int
}

// LeaderboardEntry is one row of the global eco-points leaderboard.
type LeaderboardEntry struct {
	UserIdentifier string
	TotalPoints    int
	TotalActions   int
	LastAction     time.Time
}
