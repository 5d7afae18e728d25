package domain

import "time"

// Action types recorded with eco-point awards. Manual awards may carry other
// free-form action types.
const (
	ActionZeroEmission = "zero_emission"
	ActionEVDelivery   = "ev_delivery"
	ActionRecycling    = "recycling"
)

// EcoPoint is a persisted gamification record. DeliveryID is nil for manual
// awards that are independent of any delivery.
type EcoPoint struct {
	PointID        int64
	UserIdentifier string
	DeliveryID     *int64
	Points         int
	ActionType     string
	Description    string
	CreatedAt      time.Time
}

// EcoAward is an automatic award produced by the rule engine.
type EcoAward struct {
	Points      int
	ActionType  string
	Description string
}

// EvaluateEcoAward applies the automatic awarding rules for a vehicle choice.
// It is evaluated exactly once, at delivery creation; status updates never
// re-trigger it. Vehicles without a rule earn nothing.
func EvaluateEcoAward(v VehicleType) (EcoAward, bool) {
	switch v {
	case VehicleBike:
		return EcoAward{
			Points:      50,
			ActionType:  ActionZeroEmission,
			Description: "Bike delivery - Zero emissions!",
		}, true
	case VehicleEV:
		return EcoAward{
			Points:      30,
			ActionType:  ActionEVDelivery,
			Description: "Electric vehicle delivery - Low emissions!",
		}, true
	default:
		return EcoAward{}, false
	}
}
