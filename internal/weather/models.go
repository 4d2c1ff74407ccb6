// Package weather provides current and hourly forecast data, the weathercode
// tables, and time-period snapshot selection.
package weather

import "errors"

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrMalformedResponse   = errors.New("malformed weather response")
)

// ForecastBundle mirrors the forecast provider response: an authoritative
// current-weather block plus parallel hourly arrays.
type ForecastBundle struct {
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	CurrentWeather *CurrentWeather `json:"current_weather"`
	Hourly         *HourlySeries   `json:"hourly"`
	WeatherAlerts  []WeatherAlert  `json:"weather_alerts,omitempty"`
}

// CurrentWeather is the provider's current-conditions block.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
	WindSpeed   float64 `json:"windspeed"`
	Time        string  `json:"time"`
}

// HourlySeries holds the parallel hourly arrays. Entries may be null in the
// provider response, so values are pointers.
type HourlySeries struct {
	Time             []string   `json:"time"`
	Temperature      []*float64 `json:"temperature_2m"`
	RelativeHumidity []*float64 `json:"relative_humidity_2m"`
	WindSpeed        []*float64 `json:"windspeed_10m"`
	SurfacePressure  []*float64 `json:"surface_pressure"`
	WeatherCode      []*int     `json:"weathercode"`
	UVIndex          []*float64 `json:"uv_index"`
}

// RainProbabilityBundle mirrors the precipitation-probability response.
type RainProbabilityBundle struct {
	Hourly *RainProbabilityHourly `json:"hourly"`
}

// RainProbabilityHourly holds the hourly precipitation probability array.
type RainProbabilityHourly struct {
	Time                     []string `json:"time"`
	PrecipitationProbability []*int   `json:"precipitation_probability"`
}

// WeatherAlert is a raw provider alert.
type WeatherAlert struct {
	Event       string `json:"event"`
	Description string `json:"description"`
}

// AlertItem is a display-ready alert line.
type AlertItem struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Snapshot is a point-in-time bundle of weather variables. Fields are
// pointers: a nil field means the value was unavailable for the selected
// period (for example an out-of-range hourly offset) and downstream rules
// that depend on it must not fire.
type Snapshot struct {
	Temperature     *float64 `json:"temperature"`
	WeatherCode     *int     `json:"weathercode"`
	WindSpeed       *float64 `json:"windspeed"`
	Humidity        *float64 `json:"humidity"`
	Pressure        *float64 `json:"pressure"`
	UVIndex         *float64 `json:"uvIndex"`
	RainProbability *int     `json:"rainProbability"`
	TimeLabel       string   `json:"timeLabel"`
}

// ProcessAlerts reshapes raw provider alerts into display items.
// Alerts without a description get the default "Ver" action.
func ProcessAlerts(bundle *ForecastBundle) []AlertItem {
	if bundle == nil || len(bundle.WeatherAlerts) == 0 {
		return []AlertItem{}
	}

	items := make([]AlertItem, 0, len(bundle.WeatherAlerts))
	for _, alert := range bundle.WeatherAlerts {
		action := alert.Description
		if action == "" {
			action = "Ver"
		}
		items = append(items, AlertItem{Text: alert.Event, Action: action})
	}
	return items
}
