package services

import (
	"context"
	"ecologix-service/internal/adapters/route"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"errors"
	"testing"
)

func TestQuoteRoute(t *testing.T) {
	provider := route.NewMockRouteProvider([]route.MockRoute{
		{
			From: "10 Origin St, Phoenix, AZ",
			To:   "20 Dest Ave, Tempe, AZ",
			Result: ports.RouteResult{
				Origin:          ports.GeocodedPlace{Address: "10 Origin St, Phoenix, AZ 85009", City: "Phoenix", Lat: 33.45, Lng: -112.07},
				Destination:     ports.GeocodedPlace{Address: "20 Dest Ave, Tempe, AZ 85281", City: "Tempe", Lat: 33.42, Lng: -111.94},
				DistanceKm:      20,
				DurationMinutes: 25,
			},
		},
	})

	quote, err := QuoteRoute(context.Background(), "10 Origin St, Phoenix, AZ", "20 Dest Ave, Tempe, AZ", "ev", provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Route.DistanceKm != 20 {
		t.Errorf("distance = %v, want 20", quote.Route.DistanceKm)
	}
	if quote.Route.Origin.City != "Phoenix" || quote.Route.Destination.City != "Tempe" {
		t.Errorf("cities = %q/%q", quote.Route.Origin.City, quote.Route.Destination.City)
	}

	if quote.Selected.Vehicle != domain.VehicleEV {
		t.Errorf("selected vehicle = %q, want ev", quote.Selected.Vehicle)
	}
	if quote.Selected.CO2Kg != 1.0 {
		t.Errorf("selected co2 = %v, want 1.0", quote.Selected.CO2Kg)
	}
	if quote.Selected.CarbonSaved != 4.4 {
		t.Errorf("selected savings = %v, want 4.4", quote.Selected.CarbonSaved)
	}
	if quote.Selected.Recommended {
		t.Error("ev should not be the recommended option while bike exists")
	}

	if len(quote.Alternatives) != len(domain.VehicleTypes) {
		t.Fatalf("alternatives = %d, want %d", len(quote.Alternatives), len(domain.VehicleTypes))
	}

	recommended := 0
	for _, opt := range quote.Alternatives {
		if opt.Recommended {
			recommended++
			if opt.Vehicle != domain.VehicleBike {
				t.Errorf("recommended vehicle = %q, want bike", opt.Vehicle)
			}
		}
	}
	if recommended != 1 {
		t.Errorf("recommended count = %d, want exactly 1", recommended)
	}
}

func TestQuoteRouteValidation(t *testing.T) {
	provider := route.NewMockRouteProvider(nil)

	if _, err := QuoteRoute(context.Background(), "", "B", "van", provider); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty origin: error = %v, want validation", err)
	}
	if _, err := QuoteRoute(context.Background(), "A", "", "van", provider); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty destination: error = %v, want validation", err)
	}
	if _, err := QuoteRoute(context.Background(), "A", "B", "gondola", provider); !errors.Is(err, domain.ErrInvalidVehicleType) {
		t.Errorf("unknown vehicle: error = %v, want invalid vehicle", err)
	}
}

func TestQuoteRouteLookupFailure(t *testing.T) {
	provider := route.NewMockRouteProvider(nil)

	_, err := QuoteRoute(context.Background(), "Nowhere 1", "Nowhere 2", "van", provider)

	var lookupErr *domain.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("error = %v, want LookupError", err)
	}
	if lookupErr.Address != "Nowhere 1" {
		t.Errorf("failed address = %q", lookupErr.Address)
	}
}
