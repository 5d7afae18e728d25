package route

import (
	"context"
	"ecologix-service/internal/platform/obs"
	"ecologix-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
)

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string             `json:"formatted_address"`
		AddressComponents []addressComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// fetchGeocode resolves one address via the geocoding API (/maps/api/geocode/json).
// Calls may be retried via doWithRetry.
func (g *GoogleRouteProvider) fetchGeocode(ctx context.Context, address string) (_ ports.GeocodedPlace, err error) {
	defer obs.Time(ctx, "maps.fetchGeocode")(&err)

	endpoint := g.baseURL + "/maps/api/geocode/json"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", address)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.GeocodedPlace{}, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodedPlace{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return ports.GeocodedPlace{}, fmt.Errorf("no geocode results (status=%s)", decoded.Status)
	}

	best := decoded.Results[0]

	return ports.GeocodedPlace{
		Address: best.FormattedAddress,
		City:    extractCity(best.AddressComponents),
		Lat:     best.Geometry.Location.Lat,
		Lng:     best.Geometry.Location.Lng,
	}, nil
}

// extractCity pulls "City, ST" out of the geocoder's address components,
// falling back to the county-level component when no locality exists.
func extractCity(components []addressComponent) string {
	var city, state string
	for _, c := range components {
		for _, t := range c.Types {
			switch t {
			case "locality":
				city = c.LongName
			case "administrative_area_level_2":
				if city == "" {
					city = c.LongName
				}
			case "administrative_area_level_1":
				state = c.ShortName
			}
		}
	}

	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	}
	return "Unknown"
}
