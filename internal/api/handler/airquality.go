package handler

import (
	"errors"
	"net/http"

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/api/models"
	"github.com/climavista/climavista/internal/api/response"
)

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	airQualityService *airquality.Service
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(airQualityService *airquality.Service) *AirQualityHandler {
	return &AirQualityHandler{airQualityService: airQualityService}
}

// GetCurrent handles GET /v1/airquality - the classified current reading.
func (h *AirQualityHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	loc, ok := resolveLocation(w, r)
	if !ok {
		return
	}

	reading, category, err := h.airQualityService.GetReading(r.Context(), loc.Lat, loc.Lon)
	if err != nil {
		switch {
		case errors.Is(err, airquality.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "air quality provider is unavailable")
		case errors.Is(err, airquality.ErrMissingAQI):
			response.ServiceUnavailable(w, r, "air quality data is not available for this location")
		default:
			response.InternalError(w, r, "failed to load air quality")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.AirQualityResponse{
		Location: locationRef(loc),
		Reading:  reading,
		Category: category,
		Risky:    category.IsRisky(),
	})
}

// GetScale handles GET /v1/airquality/scale - the fixed severity scale.
func (h *AirQualityHandler) GetScale(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.AirQualityScaleResponse{
		Max:        airquality.ScaleMax,
		Categories: airquality.Categories,
	})
}
