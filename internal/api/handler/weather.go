package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
	"github.com/climavista/climavista/internal/recommend"
	"github.com/climavista/climavista/internal/weather"
)

// WeatherHandler handles current-conditions and recommendation endpoints.
type WeatherHandler struct {
	weatherService *weather.Service
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(weatherService *weather.Service) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GetWeather handles GET /v1/weather - conditions for a location and period.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	loc, ok := resolveLocation(w, r)
	if !ok {
		return
	}

	period, err := weather.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "period", Message: "must be \"now\" or \"+1h\" through \"+6h\"", Code: "oneof"},
		})
		return
	}

	snapshot, alerts, err := h.weatherService.GetSnapshot(r.Context(), loc.Lat, loc.Lon, period)
	if err != nil {
		if errors.Is(err, weather.ErrProviderUnavailable) {
			response.ServiceUnavailable(w, r, "weather provider is unavailable")
			return
		}
		response.InternalError(w, r, "failed to load weather")
		return
	}

	description := weather.UnknownConditions
	if snapshot.WeatherCode != nil {
		description = weather.DescribeCode(*snapshot.WeatherCode)
	}

	response.JSON(w, r, http.StatusOK, models.WeatherResponse{
		Location:    locationRef(loc),
		Period:      periodValue(period),
		PeriodLabel: period.Label(),
		Snapshot:    snapshot,
		Description: description,
		Alerts:      alerts,
	})
}

// GetRecommendations handles GET /v1/weather/recommendations - the full
// recommendation set for a location and period, sorted by priority. An
// optional limit query keeps only the highest-priority entries.
func (h *WeatherHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	loc, ok := resolveLocation(w, r)
	if !ok {
		return
	}

	period, err := weather.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "period", Message: "must be \"now\" or \"+1h\" through \"+6h\"", Code: "oneof"},
		})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, r, "limit must be a positive integer", []models.FieldError{
				{Field: "limit", Message: "must be a positive integer", Code: "min"},
			})
			return
		}
	}

	snapshot, _, err := h.weatherService.GetSnapshot(r.Context(), loc.Lat, loc.Lon, period)
	if err != nil {
		if errors.Is(err, weather.ErrProviderUnavailable) {
			response.ServiceUnavailable(w, r, "weather provider is unavailable")
			return
		}
		response.InternalError(w, r, "failed to load weather")
		return
	}

	recommendations := recommend.Generate(snapshot)
	if limit > 0 {
		recommendations = recommendations.Limit(limit)
	}

	response.JSON(w, r, http.StatusOK, models.RecommendationsResponse{
		Location:        locationRef(loc),
		Period:          periodValue(period),
		Recommendations: recommendations,
		Snapshot:        snapshot,
	})
}

func periodValue(p weather.Period) string {
	if p == weather.PeriodNow {
		return "now"
	}
	return "+" + strconv.Itoa(int(p)) + "h"
}
