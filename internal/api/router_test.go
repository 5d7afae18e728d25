package api

import (
	"context"
	"ecologix-service/internal/adapters/route"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// fakeDeliveryRepo is an in-memory DeliveryRepository for handler tests.
type fakeDeliveryRepo struct {
	nextID  int64
	details map[int64]*domain.DeliveryDetail
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{nextID: 1, details: map[int64]*domain.DeliveryDetail{}}
}

func (f *fakeDeliveryRepo) Create(ctx context.Context, rec ports.CreateDeliveryRecord) (*ports.CreatedDelivery, error) {
	id := f.nextID
	f.nextID++

	delivery := &domain.Delivery{
		DeliveryID:  id,
		OrderID:     rec.Order.OrderID,
		ShipmentID:  rec.ShipmentID,
		Origin:      rec.Origin,
		Destination: rec.Destination,
		DistanceKm:  rec.DistanceKm,
		Vehicle:     rec.Vehicle,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
	}
	emission := &domain.Emission{
		EmissionID:     id,
		DeliveryID:     id,
		Vehicle:        rec.Vehicle,
		DistanceKm:     rec.DistanceKm,
		CO2EmissionsKg: rec.Emission.CO2Kg,
		EmissionFactor: rec.Emission.Factor,
		CreatedAt:      time.Now(),
	}

	created := &ports.CreatedDelivery{Delivery: delivery, Emission: emission}

	detail := &domain.DeliveryDetail{
		DeliveryRecord: domain.DeliveryRecord{
			Delivery:       *delivery,
			CustomerName:   rec.Order.CustomerName,
			CO2EmissionsKg: &emission.CO2EmissionsKg,
			EmissionFactor: &emission.EmissionFactor,
		},
		OrderStatus: domain.OrderPending,
		EcoPoints:   []domain.EcoPoint{},
	}

	if rec.Award != nil {
		point := domain.EcoPoint{
			PointID:        id,
			UserIdentifier: rec.UserIdentifier,
			DeliveryID:     &id,
			Points:         rec.Award.Points,
			ActionType:     rec.Award.ActionType,
			Description:    rec.Award.Description,
			CreatedAt:      time.Now(),
		}
		created.Award = &point
		detail.EcoPoints = append(detail.EcoPoints, point)
	}

	f.details[id] = detail
	return created, nil
}

func (f *fakeDeliveryRepo) UpdateStatus(ctx context.Context, deliveryID int64, upd ports.StatusUpdate) (*domain.Delivery, error) {
	detail, ok := f.details[deliveryID]
	if !ok {
		return nil, fmt.Errorf("update delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}
	if upd.Status == nil && upd.Attempts == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if upd.Status != nil {
		detail.Status = *upd.Status
	}
	if upd.Attempts != nil {
		detail.Attempts = *upd.Attempts
	}
	d := detail.Delivery
	return &d, nil
}

func (f *fakeDeliveryRepo) Get(ctx context.Context, deliveryID int64) (*domain.DeliveryDetail, error) {
	detail, ok := f.details[deliveryID]
	if !ok {
		return nil, fmt.Errorf("get delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}
	return detail, nil
}

func (f *fakeDeliveryRepo) List(ctx context.Context, filter ports.DeliveryFilter) ([]*domain.DeliveryRecord, error) {
	records := make([]*domain.DeliveryRecord, 0, len(f.details))
	for _, detail := range f.details {
		rec := detail.DeliveryRecord
		records = append(records, &rec)
	}
	return records, nil
}

type fakeEcoPointRepo struct{}

func (fakeEcoPointRepo) Award(ctx context.Context, a ports.ManualAward) (*domain.EcoPoint, error) {
	return &domain.EcoPoint{
		PointID:        1,
		UserIdentifier: a.UserIdentifier,
		DeliveryID:     a.DeliveryID,
		Points:         a.Points,
		ActionType:     a.ActionType,
		Description:    a.Description,
		CreatedAt:      time.Now(),
	}, nil
}

func (fakeEcoPointRepo) UserSummary(ctx context.Context, userIdentifier string, limit int) (*ports.UserPointsReport, error) {
	return &ports.UserPointsReport{
		Summary: domain.UserPoints{UserIdentifier: userIdentifier, TotalPoints: 80, TotalActions: 2},
		Recent:  []domain.EcoPoint{},
	}, nil
}

func (fakeEcoPointRepo) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return []domain.LeaderboardEntry{
		{UserIdentifier: "Dana Cruz", TotalPoints: 80, TotalActions: 2, LastAction: time.Now()},
	}, nil
}

func newTestRouter(provider ports.RouteProvider) (http.Handler, *fakeDeliveryRepo) {
	deliveries := newFakeDeliveryRepo()
	repos := Repositories{
		Deliveries: deliveries,
		EcoPoints:  fakeEcoPointRepo{},
	}
	return NewRouter(repos, provider), deliveries
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id header")
	}
}

func TestRequestIDIsHonored(t *testing.T) {
	router, _ := newTestRouter(nil)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("X-Request-ID", "req-abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-ID"); got != "req-abc-123" {
		t.Errorf("request id = %q, want caller value", got)
	}
}

func TestCreateDeliveryEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodPost, "/deliveries",
		`{"order_id": "ORD-1", "customer_name": "Dana Cruz", "distance_km": 12.5, "vehicle_type": "bike"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("success = false: %s", env.Error)
	}

	var data struct {
		Delivery struct {
			DeliveryID int64  `json:"delivery_id"`
			Status     string `json:"status"`
		} `json:"delivery"`
		Emission struct {
			CO2EmissionsKg float64 `json:"co2_emissions_kg"`
		} `json:"emission"`
		EcoPointsAwarded int `json:"eco_points_awarded"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Delivery.Status != "pending" {
		t.Errorf("status = %q, want pending", data.Delivery.Status)
	}
	if data.Emission.CO2EmissionsKg != 0 {
		t.Errorf("bike co2 = %v, want 0", data.Emission.CO2EmissionsKg)
	}
	if data.EcoPointsAwarded != 50 {
		t.Errorf("points = %d, want 50", data.EcoPointsAwarded)
	}
}

func TestCreateDeliveryRejectsUnknownVehicle(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodPost, "/deliveries",
		`{"order_id": "ORD-1", "distance_km": 5, "vehicle_type": "zeppelin"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Success || env.Error == "" {
		t.Errorf("envelope = %+v, want failure with message", env)
	}
}

func TestCreateDeliveryRejectsUnknownFields(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, _ := doRequest(t, router, http.MethodPost, "/deliveries",
		`{"order_id": "ORD-1", "distance_km": 5, "vehicle_type": "van", "surprise": true}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetDeliveryEndpoint(t *testing.T) {
	router, repo := newTestRouter(nil)

	distance := 10.0
	created, err := repo.Create(context.Background(), ports.CreateDeliveryRecord{
		Order:      domain.Order{OrderID: "ORD-1", CustomerName: "Dana Cruz"},
		ShipmentID: "SHIP-1",
		DistanceKm: distance,
		Vehicle:    domain.VehicleEV,
		Emission:   domain.EmissionEstimate{Factor: 0.05, CO2Kg: 0.5},
		Award:      &domain.EcoAward{Points: 30, ActionType: domain.ActionEVDelivery},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w, env := doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/deliveries/%d", created.Delivery.DeliveryID), "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data struct {
		DeliveryID int64 `json:"delivery_id"`
		EcoPoints  []struct {
			PointsEarned int `json:"points_earned"`
		} `json:"eco_points"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.EcoPoints) != 1 || data.EcoPoints[0].PointsEarned != 30 {
		t.Errorf("eco points = %+v", data.EcoPoints)
	}
}

func TestGetDeliveryNotFound(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodGet, "/deliveries/999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
}

func TestGetDeliveryRejectsNonNumericID(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, _ := doRequest(t, router, http.MethodGet, "/deliveries/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListDeliveriesCarriesCount(t *testing.T) {
	router, repo := newTestRouter(nil)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(context.Background(), ports.CreateDeliveryRecord{
			Order:      domain.Order{OrderID: fmt.Sprintf("ORD-%d", i)},
			ShipmentID: fmt.Sprintf("SHIP-%d", i),
			DistanceKm: 5,
			Vehicle:    domain.VehicleVan,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w, env := doRequest(t, router, http.MethodGet, "/deliveries", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if env.Count == nil || *env.Count != 3 {
		t.Errorf("count = %v, want 3", env.Count)
	}
}

func TestCalculateRouteWithoutProvider(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodPost, "/deliveries/calculate-route",
		`{"origin_address": "A", "destination_address": "B", "vehicle_type": "van"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if env.Error != "maps api key not configured" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestCalculateRouteEndpoint(t *testing.T) {
	provider := route.NewMockRouteProvider([]route.MockRoute{{
		From: "10 Origin St",
		To:   "20 Dest Ave",
		Result: ports.RouteResult{
			Origin:          ports.GeocodedPlace{Address: "10 Origin St", City: "Phoenix, AZ", Lat: 33.45, Lng: -112.07},
			Destination:     ports.GeocodedPlace{Address: "20 Dest Ave", City: "Tempe, AZ", Lat: 33.42, Lng: -111.94},
			DistanceKm:      10,
			DurationMinutes: 15,
		},
	}})
	router, _ := newTestRouter(provider)

	w, env := doRequest(t, router, http.MethodPost, "/deliveries/calculate-route",
		`{"origin_address": "10 Origin St", "destination_address": "20 Dest Ave", "vehicle_type": "truck"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var data struct {
		Route struct {
			DistanceKm float64 `json:"distance_km"`
		} `json:"route"`
		SelectedVehicle struct {
			Type         string  `json:"type"`
			CO2Emissions float64 `json:"co2_emissions"`
			CarbonSaved  float64 `json:"carbon_saved"`
		} `json:"selected_vehicle"`
		Alternatives []struct {
			VehicleType string `json:"vehicle_type"`
			Recommended bool   `json:"recommended"`
		} `json:"alternatives"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if data.SelectedVehicle.Type != "truck" || data.SelectedVehicle.CO2Emissions != 2.7 {
		t.Errorf("selected = %+v", data.SelectedVehicle)
	}
	if data.SelectedVehicle.CarbonSaved != 0 {
		t.Errorf("truck savings = %v, want 0", data.SelectedVehicle.CarbonSaved)
	}
	if len(data.Alternatives) != 4 {
		t.Fatalf("alternatives = %d, want 4", len(data.Alternatives))
	}
	for _, alt := range data.Alternatives {
		if alt.Recommended && alt.VehicleType != "bike" {
			t.Errorf("recommended = %q, want bike", alt.VehicleType)
		}
	}
}

func TestCreateFromRouteEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	body := `{
		"order_id": "ORD-9",
		"customer_name": "Dana Cruz",
		"vehicle_type": "ev",
		"route_data": {
			"origin": {"address": "10 Origin St", "city": "Phoenix, AZ", "lat": 33.45, "lng": -112.07},
			"destination": {"address": "20 Dest Ave", "city": "Tempe, AZ", "lat": 33.42, "lng": -111.94},
			"distance_km": 10,
			"duration_minutes": 15
		}
	}`
	w, env := doRequest(t, router, http.MethodPost, "/deliveries/create-from-route", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var data struct {
		Delivery struct {
			OrderID string `json:"order_id"`
		} `json:"delivery"`
		RouteInfo struct {
			CO2Emissions    float64 `json:"co2_emissions"`
			EcoPointsEarned int     `json:"eco_points_earned"`
		} `json:"route_info"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Delivery.OrderID != "ORD-9" {
		t.Errorf("order id = %q", data.Delivery.OrderID)
	}
	if data.RouteInfo.CO2Emissions != 0.5 {
		t.Errorf("co2 = %v, want 0.5", data.RouteInfo.CO2Emissions)
	}
	if data.RouteInfo.EcoPointsEarned != 30 {
		t.Errorf("points = %d, want 30", data.RouteInfo.EcoPointsEarned)
	}
}

func TestCreateFromRouteRequiresRouteData(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, _ := doRequest(t, router, http.MethodPost, "/deliveries/create-from-route",
		`{"order_id": "ORD-9", "customer_name": "Dana Cruz", "vehicle_type": "ev"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAwardPointsEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodPost, "/eco-points",
		`{"user_identifier": "Dana Cruz", "points_earned": 25, "action_type": "recycling"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var data struct {
		PointsEarned int `json:"points_earned"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.PointsEarned != 25 {
		t.Errorf("points = %d, want 25", data.PointsEarned)
	}
}

func TestAwardPointsRejectsNonPositive(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, _ := doRequest(t, router, http.MethodPost, "/eco-points",
		`{"user_identifier": "Dana Cruz", "points_earned": 0, "action_type": "recycling"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestEcoPointsLeaderboard(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, env := doRequest(t, router, http.MethodGet, "/eco-points", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data []struct {
		UserIdentifier string `json:"user_identifier"`
		TotalPoints    int    `json:"total_points"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data) != 1 || data[0].TotalPoints != 80 {
		t.Errorf("leaderboard = %+v", data)
	}
}

func TestUpdateDeliveryEndpoint(t *testing.T) {
	router, repo := newTestRouter(nil)

	created, err := repo.Create(context.Background(), ports.CreateDeliveryRecord{
		Order:      domain.Order{OrderID: "ORD-1"},
		ShipmentID: "SHIP-1",
		DistanceKm: 5,
		Vehicle:    domain.VehicleVan,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w, env := doRequest(t, router, http.MethodPut,
		fmt.Sprintf("/deliveries/%d", created.Delivery.DeliveryID),
		`{"status": "in_transit", "delivery_attempts": 1}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("success = false: %s", env.Error)
	}
}

func TestUpdateDeliveryRejectsUnknownStatus(t *testing.T) {
	router, _ := newTestRouter(nil)

	w, _ := doRequest(t, router, http.MethodPut, "/deliveries/1", `{"status": "teleported"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
