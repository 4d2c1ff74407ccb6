package models

import "github.com/climavista/climavista/internal/airquality"

// AirQualityResponse is the payload for GET /v1/airquality.
type AirQualityResponse struct {
	Location LocationRef         `json:"location"`
	Reading  airquality.Reading  `json:"reading"`
	Category airquality.Category `json:"category"`
	Risky    bool                `json:"risky"`
}

// AirQualityScaleResponse is the payload for GET /v1/airquality/scale.
type AirQualityScaleResponse struct {
	Max        float64               `json:"max"`
	Categories []airquality.Category `json:"categories"`
}
