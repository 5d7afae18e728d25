package domain

import "testing"

func TestEvaluateEcoAward(t *testing.T) {
	award, ok := EvaluateEcoAward(VehicleBike)
	if !ok {
		t.Fatal("expected bike to earn an award")
	}
	if award.Points != 50 || award.ActionType != ActionZeroEmission {
		t.Errorf("bike award = %+v", award)
	}

	award, ok = EvaluateEcoAward(VehicleEV)
	if !ok {
		t.Fatal("expected ev to earn an award")
	}
	if award.Points != 30 || award.ActionType != ActionEVDelivery {
		t.Errorf("ev award = %+v", award)
	}

	if _, ok := EvaluateEcoAward(VehicleVan); ok {
		t.Error("van should not earn an award")
	}
	if _, ok := EvaluateEcoAward(VehicleTruck); ok {
		t.Error("truck should not earn an award")
	}
}
