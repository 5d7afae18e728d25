package domain

import (
	"fmt"
	"math"
)

// VehicleType identifies the vehicle class used for a delivery.
type VehicleType string

const (
	VehicleBike  VehicleType = "bike"
	VehicleEV    VehicleType = "ev"
	VehicleVan   VehicleType = "van"
	VehicleTruck VehicleType = "truck"
)

// Canonical emission factors in kg CO2 per km. Persisted verbatim with each
// emission record so historical reports stay stable if factors change.
var emissionFactors = map[VehicleType]float64{
	VehicleBike:  0.0,
	VehicleEV:    0.05,
	VehicleVan:   0.18,
	VehicleTruck: 0.27,
}

// VehicleTypes lists all recognized vehicle types in display order.
var VehicleTypes = []VehicleType{VehicleBike, VehicleEV, VehicleVan, VehicleTruck}

// ParseVehicleType validates a raw vehicle type string.
// Unknown values fail; there is no fallback vehicle.
func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if _, ok := emissionFactors[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleType, s)
	}
	return v, nil
}

// EmissionFactor returns the canonical factor for a vehicle type.
func EmissionFactor(v VehicleType) (float64, error) {
	f, ok := emissionFactors[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVehicleType, v)
	}
	return f, nil
}

// EmissionEstimate is the result of an emission calculation.
type EmissionEstimate struct {
	Factor float64
	CO2Kg  float64
}

// ComputeEmissions calculates CO2 mass for a trip of the given distance.
// Values are kept at 4 decimal places so persisted records round-trip cleanly.
func ComputeEmissions(distanceKm float64, v VehicleType) (EmissionEstimate, error) {
	if distanceKm < 0 {
		return EmissionEstimate{}, fmt.Errorf("%w: distance_km must be non-negative", ErrValidation)
	}
	f, err := EmissionFactor(v)
	if err != nil {
		return EmissionEstimate{}, err
	}
	return EmissionEstimate{Factor: f, CO2Kg: Round4(distanceKm * f)}, nil
}

// CarbonSaved compares actual emissions against an all-truck baseline for the
// same distance. The result is not clamped: a negative value surfaces a data
// anomaly instead of hiding it.
func CarbonSaved(distanceKm, actualCO2Kg float64) float64 {
	baseline := distanceKm * emissionFactors[VehicleTruck]
	return Round4(baseline - actualCO2Kg)
}

// Round4 rounds to 4 decimal places, the precision used for persisted CO2 values.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
