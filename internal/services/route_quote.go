package services

import (
	"context"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"fmt"
	"strings"
)

// VehicleOption is one vehicle alternative for a quoted route.
type VehicleOption struct {
	Vehicle     domain.VehicleType
	Factor      float64
	CO2Kg       float64
	CarbonSaved float64
	Recommended bool
}

// RouteQuote is a resolved route plus the emission consequences of every
// vehicle choice. Recommended marks the lowest-factor option.
type RouteQuote struct {
	Route        ports.RouteResult
	Selected     VehicleOption
	Alternatives []VehicleOption
}

// QuoteRoute resolves a route through the lookup collaborator and computes
// emissions and truck-baseline savings for all vehicle types.
func QuoteRoute(
	ctx context.Context,
	originAddress string,
	destinationAddress string,
	vehicleType string,
	provider ports.RouteProvider,
) (*RouteQuote, error) {
	if strings.TrimSpace(originAddress) == "" {
		return nil, domain.MissingField("origin_address")
	}
	if strings.TrimSpace(destinationAddress) == "" {
		return nil, domain.MissingField("destination_address")
	}

	vehicle, err := domain.ParseVehicleType(vehicleType)
	if err != nil {
		return nil, err
	}

	result, err := provider.GetRoute(ctx, originAddress, destinationAddress)
	if err != nil {
		return nil, fmt.Errorf("quote route: %w", err)
	}

	quote := &RouteQuote{
		Route:        result,
		Alternatives: make([]VehicleOption, 0, len(domain.VehicleTypes)),
	}

	minFactor := -1.0
	for _, v := range domain.VehicleTypes {
		f, _ := domain.EmissionFactor(v)
		if minFactor < 0 || f < minFactor {
			minFactor = f
		}
	}

	for _, v := range domain.VehicleTypes {
		estimate, err := domain.ComputeEmissions(result.DistanceKm, v)
		if err != nil {
			return nil, fmt.Errorf("quote route: %w", err)
		}

		opt := VehicleOption{
			Vehicle:     v,
			Factor:      estimate.Factor,
			CO2Kg:       estimate.CO2Kg,
			CarbonSaved: domain.CarbonSaved(result.DistanceKm, estimate.CO2Kg),
			Recommended: estimate.Factor == minFactor,
		}
		quote.Alternatives = append(quote.Alternatives, opt)

		if v == vehicle {
			quote.Selected = opt
		}
	}

	return quote, nil
}
