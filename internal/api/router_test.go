package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/alert"
	"github.com/climavista/climavista/internal/api"
	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/auth"
	"github.com/climavista/climavista/internal/historical"
	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/user"
	"github.com/climavista/climavista/internal/weather"
)

// stubForecastProvider serves a fixed warm sunny forecast.
type stubForecastProvider struct{}

func (stubForecastProvider) FetchForecast(_ context.Context, lat, lon float64) (*weather.ForecastBundle, error) {
	return &weather.ForecastBundle{
		Latitude:  lat,
		Longitude: lon,
		CurrentWeather: &weather.CurrentWeather{
			Temperature: 31,
			WeatherCode: 0,
			WindSpeed:   8,
			Time:        time.Now().UTC().Format("2006-01-02T15:04"),
		},
	}, nil
}

func (stubForecastProvider) FetchRainProbability(_ context.Context, _, _ float64) (*weather.RainProbabilityBundle, error) {
	return &weather.RainProbabilityBundle{}, nil
}

func (stubForecastProvider) Name() string { return "stub-forecast" }

// stubAirQualityProvider serves a fixed unhealthy reading.
type stubAirQualityProvider struct{}

func (stubAirQualityProvider) FetchCurrent(_ context.Context, _, _ float64) (*airquality.CurrentBundle, error) {
	aqi := 165.0
	return &airquality.CurrentBundle{
		Current: &airquality.CurrentBlock{USAQI: &aqi},
	}, nil
}

func (stubAirQualityProvider) Name() string { return "stub-air-quality" }

// stubArchiveProvider serves a fixed three-day series for any range.
type stubArchiveProvider struct{}

func (stubArchiveProvider) FetchArchive(_ context.Context, lat, lon float64, startDate, _ string) (*historical.ArchiveResponse, error) {
	temps := []*float64{floatPtr(20), floatPtr(22), floatPtr(24)}
	return &historical.ArchiveResponse{
		Latitude:  lat,
		Longitude: lon,
		Daily: &historical.DailySeries{
			Time:             []string{startDate, startDate, startDate},
			TemperatureMean:  temps,
			TemperatureMax:   temps,
			TemperatureMin:   temps,
			PrecipitationSum: []*float64{floatPtr(1), floatPtr(0), floatPtr(2)},
		},
	}, nil
}

func (stubArchiveProvider) Name() string { return "stub-archive" }

// memoryDirectory is an in-memory user directory.
type memoryDirectory struct {
	accounts  []user.User
	passwords map[string]string
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{passwords: make(map[string]string)}
}

func (d *memoryDirectory) FindByCredentials(_ context.Context, username, password string) ([]user.User, error) {
	var matches []user.User
	for _, account := range d.accounts {
		if account.Username == username && d.passwords[account.ID] == password {
			matches = append(matches, account)
		}
	}
	return matches, nil
}

func (d *memoryDirectory) FindByUsername(_ context.Context, username string) ([]user.User, error) {
	var matches []user.User
	for _, account := range d.accounts {
		if account.Username == username {
			matches = append(matches, account)
		}
	}
	return matches, nil
}

func (d *memoryDirectory) Create(_ context.Context, username, password string) (user.User, error) {
	account := user.User{
		ID:       fmt.Sprintf("%d", len(d.accounts)+1),
		Username: username,
	}
	d.accounts = append(d.accounts, account)
	d.passwords[account.ID] = password
	return account, nil
}

func testSessions() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: []byte("test-secret-key-for-testing-only"),
		Issuer:     "https://api.climavista.cr",
		Audience:   "climavista-api",
	})
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	store := kv.NewInMemoryStore()

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2024-01-01T00:00:00Z",
		Logger:    logger,
		Sessions:  testSessions(),
		UserService: user.NewService(user.ServiceConfig{
			Directory: newMemoryDirectory(),
			Logger:    logger,
		}),
		WeatherService: weather.NewService(weather.ServiceConfig{
			Provider: stubForecastProvider{},
			Logger:   logger,
		}),
		AirQualityService: airquality.NewService(airquality.ServiceConfig{
			Provider: stubAirQualityProvider{},
			Logger:   logger,
		}),
		HistoricalService: historical.NewService(historical.ServiceConfig{
			Provider: stubArchiveProvider{},
			Store:    store,
			Logger:   logger,
		}),
		Subscriptions: alert.NewSubscriptionStore(store, logger),
	})
}

// registerAndLogin registers a fresh account and returns a bearer token.
func registerAndLogin(t *testing.T, router http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(models.RegisterRequest{Username: "anamaria", Password: "secreto1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var session models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.NotEmpty(t, status.Providers)
}

func TestRouter_ListLocations(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/locations", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var catalog struct {
		Items   []models.LocationRef `json:"items"`
		Default string               `json:"default"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &catalog)
	require.NoError(t, err)

	assert.NotEmpty(t, catalog.Items)
	assert.Equal(t, "san-jose", catalog.Default)
}

func TestRouter_GetWeather(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?location=cartago&period=now", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.WeatherResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "cartago", resp.Location.ID)
	assert.Equal(t, "now", resp.Period)
	require.NotNil(t, resp.Snapshot.Temperature)
	assert.Equal(t, 31.0, *resp.Snapshot.Temperature)
	assert.Equal(t, "Cielo despejado", resp.Description)
}

func TestRouter_GetWeather_BadPeriod(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?period=+9h", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.TraceID)
}

func TestRouter_GetWeather_UnknownLocation(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?location=atlantis", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_GetRecommendations(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather/recommendations", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.RecommendationsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	// 31°C fires the light-clothing rule.
	assert.NotEmpty(t, resp.Recommendations["clothing"])
}

func TestRouter_GetAirQuality(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/airquality?location=san-jose", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AirQualityResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, 165.0, resp.Reading.AQI)
	assert.Equal(t, "No recomendable", resp.Category.Name)
	assert.True(t, resp.Risky)
}

func TestRouter_GetAirQualityScale(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/airquality/scale", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AirQualityScaleResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, 300.0, resp.Max)
	assert.Len(t, resp.Categories, 5)
	assert.Equal(t, "Bueno", resp.Categories[0].Name)
}

func TestRouter_GetHistorical(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/historical?location=heredia&range=month", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoricalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "heredia", resp.Location.ID)
	require.NotNil(t, resp.Aggregate)
	assert.Equal(t, 22.0, resp.Aggregate.Stats.AvgTemp)
	assert.Equal(t, 3.0, resp.Aggregate.Stats.TotalPrecipitation)
}

func TestRouter_GetHistorical_CustomRange(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/historical?range=custom&start=2024-01-01&end=2024-01-31", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoricalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", resp.StartDate)
	assert.Equal(t, "2024-01-31", resp.EndDate)
}

func TestRouter_GetHistorical_BadRange(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/historical?range=decade", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GetAnomalies(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/historical/anomalies?range=week", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AnomaliesResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	// Stub serves identical data for both years, so the delta is zero.
	require.NotNil(t, resp.Anomalies)
	assert.Zero(t, resp.Anomalies.TemperatureAnomaly)
}

func TestRouter_ListRanges(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/historical/ranges", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items   []historical.RangeOption `json:"items"`
		Default string                   `json:"default"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	require.Len(t, resp.Items, 4)
	assert.Equal(t, "week", resp.Items[0].Value)
	assert.Equal(t, "week", resp.Default)
}

func TestRouter_Register_ValidationError(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.RegisterRequest{Username: "ana", Password: "corto"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.Len(t, problem.Errors, 2)
}

func TestRouter_LoginAfterRegister(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router)

	body, _ := json.Marshal(models.LoginRequest{Username: "anamaria", Password: "secreto1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var session models.SessionResponse
	err := json.Unmarshal(w.Body.Bytes(), &session)
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "anamaria", session.User.Username)
}

func TestRouter_Login_WrongPassword(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router)

	body, _ := json.Marshal(models.LoginRequest{Username: "anamaria", Password: "equivocada"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Bookmarks_RequireAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/bookmarks", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_Bookmarks_CRUD(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	// Create
	body, _ := json.Marshal(models.BookmarkCreateRequest{
		LocationID: "san-jose",
		DateRange:  "month",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/bookmarks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))

	var bookmark historical.Bookmark
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookmark))
	assert.Equal(t, "San José - Último mes", bookmark.Name)

	// List
	req = httptest.NewRequest(http.MethodGet, "/v1/bookmarks", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.BookmarkList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/v1/bookmarks/"+bookmark.ID, http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	// Delete again
	req = httptest.NewRequest(http.MethodDelete, "/v1/bookmarks/"+bookmark.ID, http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Subscription_GetAndUpdate(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	// Defaults
	req := httptest.NewRequest(http.MethodGet, "/v1/alerts/subscription", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sub models.SubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.False(t, sub.Enabled)

	// Enable
	body, _ := json.Marshal(models.SubscriptionRequest{Email: "ana@ejemplo.com", Enabled: true})
	req = httptest.NewRequest(http.MethodPut, "/v1/alerts/subscription", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.True(t, sub.Enabled)
	assert.Equal(t, "ana@ejemplo.com", sub.Email)
}

func TestRouter_Subscription_InvalidEmail(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	body, _ := json.Marshal(models.SubscriptionRequest{Email: "no-es-correo", Enabled: true})
	req := httptest.NewRequest(http.MethodPut, "/v1/alerts/subscription", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func floatPtr(v float64) *float64 {
	return &v
}
