// Package airquality provides the AQI severity scale and current
// air-quality readings.
package airquality

import "errors"

// Air quality errors.
var (
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
	ErrMissingAQI          = errors.New("response is missing the us_aqi field")
)

// Reading is the current air-quality observation for a location.
type Reading struct {
	// AQI is the US AQI value reported by the provider.
	AQI float64 `json:"aqi"`

	// PM25 is the PM2.5 concentration in µg/m³, if reported.
	PM25 *float64 `json:"pm25"`

	// PM10 is the PM10 concentration in µg/m³, if reported.
	PM10 *float64 `json:"pm10"`
}

// CurrentBundle mirrors the provider's air-quality response. Pointer fields
// distinguish "not reported" from zero.
type CurrentBundle struct {
	Current *CurrentBlock `json:"current"`
	Hourly  *HourlyBlock  `json:"hourly"`
}

// CurrentBlock is the provider's current-conditions block.
type CurrentBlock struct {
	USAQI *float64 `json:"us_aqi"`
	PM25  *float64 `json:"pm2_5"`
	PM10  *float64 `json:"pm10"`
}

// HourlyBlock holds the hourly air-quality series.
type HourlyBlock struct {
	Time  []string   `json:"time"`
	USAQI []*float64 `json:"us_aqi"`
	PM25  []*float64 `json:"pm2_5"`
	PM10  []*float64 `json:"pm10"`
}
