package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fuel-route-service/internal/adapters/mock"
	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/metrics"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	berlin = domain.Place{Label: "Berlin, Germany", Coordinates: domain.Coordinates{Lon: 13.405, Lat: 52.52}}
	munich = domain.Place{Label: "Munich, Germany", Coordinates: domain.Coordinates{Lon: 11.582, Lat: 48.135}}
	island = domain.Place{Label: "Helgoland, Germany", Coordinates: domain.Coordinates{Lon: 7.885, Lat: 54.181}}
)

type fixture struct {
	geocoder *mock.Geocoder
	provider *mock.RouteProvider
	handler  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	geocoder := &mock.Geocoder{Places: map[string][]domain.Place{
		"Berlin":    {berlin},
		"Munich":    {munich},
		"Helgoland": {island},
	}}
	provider := mock.NewRouteProvider([]mock.RoutePair{
		{
			From: berlin.Coordinates,
			To:   munich.Coordinates,
			Routes: []domain.RouteCandidate{
				{
					DistanceMeters:  100000,
					DurationSeconds: 3600,
					Geometry:        []domain.Coordinates{berlin.Coordinates, munich.Coordinates},
				},
				{DistanceMeters: 90000, DurationSeconds: 4000},
			},
		},
		{From: berlin.Coordinates, To: island.Coordinates},
	})

	return &fixture{
		geocoder: geocoder,
		provider: provider,
		handler: NewRouter(Deps{
			Geocoder:         geocoder,
			Routes:           provider,
			DefaultFuelPrice: 1.5,
			MetricsEnabled:   true,
			Logger:           zap.NewNop(),
		}),
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestRequestIDIsPropagated(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestUnknownPathAndMethod(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode[map[string]string](t, rec)["error"])

	rec = f.do(t, http.MethodGet, "/routes", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decode[map[string]string](t, rec)["error"])
}

func TestVehicles(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/vehicles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListVehiclesResponse](t, rec)
	require.Len(t, res.Vehicles, 3)
	assert.Equal(t, dto.VehicleResponse{Category: "motorbike", BaseConsumption: 2.5, OptimalSpeed: 50, DragFactor: 0.05}, res.Vehicles[0])
	assert.Equal(t, "car", res.Vehicles[1].Category)
	assert.Equal(t, "truck", res.Vehicles[2].Category)
}

func TestGeocodeSearch(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/geocode/search?text=Berlin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.GeocodeResponse](t, rec)
	require.Len(t, res.Results, 1)
	assert.Equal(t, dto.PlaceResponse{Label: "Berlin, Germany", Lat: 52.52, Lon: 13.405}, res.Results[0])

	rec = f.do(t, http.MethodGet, "/geocode/search?text=Atlantis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.GeocodeResponse](t, rec).Results)
}

func TestGeocodeSearchRejectsBadQuery(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/geocode/search",
		"/geocode/search?text=%20",
		"/geocode/search?text=Berlin&limit=0",
		"/geocode/search?text=Berlin&limit=11",
		"/geocode/search?text=Berlin&limit=x",
	} {
		rec := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Zero(t, f.geocoder.Calls())
}

func TestPlanRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/routes",
		`{"origin":{"text":"Berlin"},"destination":{"text":"Munich"},"vehicle":"car","fuelPrice":25000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.TripResponse](t, rec)
	assert.Equal(t, "Berlin, Germany", res.Origin.Label)
	assert.Equal(t, "Munich, Germany", res.Destination.Label)
	assert.Equal(t, "car", res.Vehicle)
	assert.Equal(t, 25000.0, res.FuelPrice)

	require.Len(t, res.Routes, 2)
	require.NotNil(t, res.BestFuelRouteID)
	assert.Equal(t, 1, *res.BestFuelRouteID)

	first := res.Routes[0]
	assert.Equal(t, 0, first.ID)
	assert.True(t, first.IsFastest)
	assert.Equal(t, 7.47, first.FuelUsedLiters)
	assert.Equal(t, 186667.0, first.FuelCost)
	assert.Equal(t, 100, first.AvgSpeed)
	assert.Equal(t, 1.07, first.EfficiencyFactor)
	assert.Equal(t, "LineString", first.Geometry.Type)
	assert.Equal(t, [][]float64{{13.405, 52.52}, {11.582, 48.135}}, first.Geometry.Coordinates)

	second := res.Routes[1]
	assert.False(t, second.IsFastest)
	assert.Equal(t, 6.32, second.Score)
	assert.Empty(t, second.Geometry.Coordinates)
}

func TestPlanRoutesEcoOrderAndDefaults(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/routes",
		`{"origin":{"lat":52.52,"lon":13.405},"destination":{"text":"Munich"},"order":"eco"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.TripResponse](t, rec)
	assert.Equal(t, domain.DefaultVehicle, res.Vehicle)
	assert.Equal(t, 1.5, res.FuelPrice)
	require.Len(t, res.Routes, 2)
	assert.Equal(t, 1, res.Routes[0].ID)
	assert.Equal(t, 0, res.Routes[1].ID)
	assert.Equal(t, int64(1), f.geocoder.Calls())
}

func TestPlanRoutesErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(*fixture)
		status int
		errMsg string
	}{
		{
			name:   "invalid json",
			body:   `{"origin":`,
			status: http.StatusBadRequest,
			errMsg: "invalid json body",
		},
		{
			name:   "unknown field",
			body:   `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"},"speed":3}`,
			status: http.StatusBadRequest,
			errMsg: "invalid json body",
		},
		{
			name:   "trailing object",
			body:   `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"}}{}`,
			status: http.StatusBadRequest,
			errMsg: "body must contain only one JSON object",
		},
		{
			name:   "negative fuel price",
			body:   `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"},"fuelPrice":-1}`,
			status: http.StatusBadRequest,
			errMsg: "validation error: fuelPrice must be 0 or greater",
		},
		{
			name:   "bad order",
			body:   `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"},"order":"cheapest"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "lat without lon",
			body:   `{"origin":{"lat":52.5},"destination":{"text":"Munich"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing origin",
			body:   `{"destination":{"text":"Munich"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "out of range coordinates",
			body:   `{"origin":{"lat":95,"lon":13},"destination":{"text":"Munich"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown place",
			body:   `{"origin":{"text":"Atlantis"},"destination":{"text":"Munich"}}`,
			status: http.StatusUnprocessableEntity,
			errMsg: "location not found",
		},
		{
			name:   "no route",
			body:   `{"origin":{"text":"Berlin"},"destination":{"text":"Helgoland"}}`,
			status: http.StatusNotFound,
			errMsg: "no route found",
		},
		{
			name: "upstream status",
			body: `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"}}`,
			setup: func(f *fixture) {
				f.provider.Err = &ors.StatusError{Code: http.StatusServiceUnavailable, Body: "down"}
			},
			status: http.StatusBadGateway,
			errMsg: "routing service unavailable",
		},
		{
			name: "internal failure",
			body: `{"origin":{"text":"Berlin"},"destination":{"text":"Munich"}}`,
			setup: func(f *fixture) {
				f.provider.Err = errors.New("boom")
			},
			status: http.StatusInternalServerError,
			errMsg: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(t, http.MethodPost, "/routes", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			msg := decode[map[string]string](t, rec)["error"]
			assert.NotEmpty(t, msg)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, msg)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/estimate", `{
		"routes": [
			{"distanceMeters": 100000, "durationSeconds": 3600, "geometry": [[13.4, 52.5], [11.6, 48.1]]},
			{"distanceMeters": 10000, "durationSeconds": 1800}
		],
		"vehicle": "motorbike",
		"fuelPrice": 2
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.EstimateResponse](t, rec)
	assert.Equal(t, "motorbike", res.Vehicle)
	assert.Equal(t, 2.0, res.FuelPrice)
	require.Len(t, res.Routes, 2)
	require.NotNil(t, res.BestFuelRouteID)
	assert.Equal(t, 1, *res.BestFuelRouteID)
	assert.Equal(t, 0.33, res.Routes[1].FuelUsedLiters)
	assert.Equal(t, [][]float64{{13.4, 52.5}, {11.6, 48.1}}, res.Routes[0].Geometry.Coordinates)
}

func TestEstimateEmpty(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/estimate", `{"routes": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vehicle":"car","fuelPrice":1.5,"routes":[],"bestFuelRouteId":null}`, rec.Body.String())
}

func TestEstimateRejectsInvalidCandidates(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{"routes":[{"distanceMeters":-1,"durationSeconds":60}]}`,
		`{"routes":[{"distanceMeters":1,"durationSeconds":60,"geometry":[[1,2,3]]}]}`,
	} {
		rec := f.do(t, http.MethodPost, "/estimate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RegisterDefault()
	f := newFixture(t)

	f.do(t, http.MethodGet, "/health", "")
	rec := f.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"}`)
}

func TestRecoverMiddleware(t *testing.T) {
	h := recoverMiddleware(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	handler := NewRouter(Deps{
		Geocoder:       &mock.Geocoder{},
		Routes:         mock.NewRouteProvider(nil),
		AllowedOrigins: []string{"https://app.example.com"},
		Logger:         zap.NewNop(),
	})

	req := httptest.NewRequest(http.MethodOptions, "/routes", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEstimateRejectsOutOfBoundsInputs(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{"routes":[{"distanceMeters":1e308,"durationSeconds":1}],"fuelPrice":2}`,
		`{"routes":[{"distanceMeters":1000,"durationSeconds":1e12}]}`,
		`{"routes":[{"distanceMeters":1000,"durationSeconds":60}],"fuelPrice":1e20}`,
	} {
		rec := f.do(t, http.MethodPost, "/estimate", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "validation error", body)
	}
}

func TestEstimateNonFiniteResultIsUnprocessable(t *testing.T) {
	f := newFixture(t)

	// In bounds, but the near-zero duration drives the fuel volume to +Inf.
	rec := f.do(t, http.MethodPost, "/estimate",
		`{"routes":[{"distanceMeters":40000000,"durationSeconds":1e-300}],"fuelPrice":10000000}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "estimate out of range", decode[map[string]string](t, rec)["error"])
}

func TestOversizedBodyIsRejected(t *testing.T) {
	f := newFixture(t)

	body := `{"routes":[],"vehicle":"` + strings.Repeat("a", 5<<20) + `"}`
	rec := f.do(t, http.MethodPost, "/estimate", body)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decode[map[string]string](t, rec)["error"])
}
