// Package historical provides archive weather data, aggregate statistics,
// year-over-year climate anomalies, and saved views.
package historical

import "errors"

// Historical data errors.
var (
	ErrProviderUnavailable = errors.New("archive provider unavailable")
	ErrMalformedResponse   = errors.New("malformed archive response")
	ErrBookmarkNotFound    = errors.New("bookmark not found")
	ErrInvalidDateRange    = errors.New("invalid date range")
)

// ArchiveResponse mirrors the archive provider response: parallel daily
// arrays keyed by date. Values are pointers because the provider reports
// null for days without data.
type ArchiveResponse struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Daily     *DailySeries `json:"daily"`
}

// DailySeries holds the parallel daily arrays.
type DailySeries struct {
	Time                 []string   `json:"time"`
	TemperatureMax       []*float64 `json:"temperature_2m_max"`
	TemperatureMin       []*float64 `json:"temperature_2m_min"`
	TemperatureMean      []*float64 `json:"temperature_2m_mean"`
	PrecipitationSum     []*float64 `json:"precipitation_sum"`
	WindSpeedMax         []*float64 `json:"windspeed_10m_max"`
	WindDirectionDom     []*float64 `json:"winddirection_10m_dominant"`
	RelativeHumidityMean []*float64 `json:"relative_humidity_2m_mean"`
	SurfacePressureMean  []*float64 `json:"surface_pressure_mean"`
	CloudCoverMean       []*float64 `json:"cloudcover_mean"`
	UVIndexMax           []*float64 `json:"uv_index_max"`
}

// Stats is the aggregate summary over a date range. Averages exclude null
// days; a series with no valid days averages to zero.
type Stats struct {
	AvgTemp            float64 `json:"avgTemp"`
	MaxTemp            float64 `json:"maxTemp"`
	MinTemp            float64 `json:"minTemp"`
	TotalPrecipitation float64 `json:"totalPrecipitation"`
	AvgWindSpeed       float64 `json:"avgWindSpeed"`
	MaxWindSpeed       float64 `json:"maxWindSpeed"`
	AvgHumidity        float64 `json:"avgHumidity"`
	AvgPressure        float64 `json:"avgPressure"`
	AvgCloudCover      float64 `json:"avgCloudCover"`
	AvgUVIndex         float64 `json:"avgUVIndex"`
}

// Aggregate bundles the stats with the raw daily series it was computed
// from, ready for charting.
type Aggregate struct {
	Stats     Stats        `json:"stats"`
	Daily     *DailySeries `json:"daily"`
	Days      int          `json:"days"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
}

// Confidence grades an anomaly by how much data backs it.
type Confidence string

// Anomaly confidence levels.
const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very-low"
)

// ClimateAnomaly compares a current period against its year-earlier
// baseline. Trend percentages are nil when the baseline statistic is zero,
// since a relative change from zero is undefined.
type ClimateAnomaly struct {
	TemperatureAnomaly   float64    `json:"temperatureAnomaly"`
	PrecipitationAnomaly float64    `json:"precipitationAnomaly"`
	TemperatureTrend     *float64   `json:"temperatureTrend"`
	PrecipitationTrend   *float64   `json:"precipitationTrend"`
	IsWarmer             bool       `json:"isWarmer"`
	IsWetter             bool       `json:"isWetter"`
	Confidence           Confidence `json:"confidence"`
}

// Bookmark is a saved historical view: a location plus a date selection.
type Bookmark struct {
	ID         string       `json:"id"`
	LocationID string       `json:"locationId"`
	DateRange  string       `json:"dateRange"`
	Custom     *CustomDates `json:"customDates,omitempty"`
	CreatedAt  string       `json:"createdAt"`
	Name       string       `json:"name"`
}

// CustomDates is a user-picked start/end pair, ISO dates.
type CustomDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
