package route

import (
	"context"
	"ecologix-service/internal/platform/obs"
	"ecologix-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
)

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// fetchDistance retrieves driving distance (meters) and duration (seconds)
// between two geocoded points via the distance matrix API.
func (g *GoogleRouteProvider) fetchDistance(
	ctx context.Context,
	origin ports.GeocodedPlace,
	destination ports.GeocodedPlace,
) (meters int, seconds int, err error) {
	defer obs.Time(ctx, "maps.fetchDistance")(&err)

	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
		q.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
		q.Set("mode", "driving")
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("execute matrix request: %w", err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, 0, fmt.Errorf("decode matrix response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return 0, 0, fmt.Errorf("no matrix results (status=%s)", decoded.Status)
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, 0, fmt.Errorf("no route between points (status=%s)", element.Status)
	}

	return element.Distance.Value, element.Duration.Value, nil
}
