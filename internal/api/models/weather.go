package models

import (
	"github.com/climavista/climavista/internal/recommend"
	"github.com/climavista/climavista/internal/weather"
)

// WeatherResponse is the payload for GET /v1/weather.
type WeatherResponse struct {
	Location    LocationRef         `json:"location"`
	Period      string              `json:"period"`
	PeriodLabel string              `json:"periodLabel"`
	Snapshot    weather.Snapshot    `json:"snapshot"`
	Description string              `json:"description"`
	Alerts      []weather.AlertItem `json:"alerts"`
}

// RecommendationsResponse is the payload for GET /v1/weather/recommendations.
type RecommendationsResponse struct {
	Location        LocationRef      `json:"location"`
	Period          string           `json:"period"`
	Recommendations recommend.Set    `json:"recommendations"`
	Snapshot        weather.Snapshot `json:"snapshot"`
}
