package weather

import (
	"fmt"
	"math"
	"time"
)

// Period is an hourly offset from the current conditions: 0 means "now",
// 1 through 6 mean that many hours ahead.
type Period int

// PeriodNow selects the current conditions.
const PeriodNow Period = 0

// MaxPeriodOffset is the furthest selectable hourly offset.
const MaxPeriodOffset = 6

// ParsePeriod parses a period parameter: "now" or "+1h" through "+6h".
func ParsePeriod(s string) (Period, error) {
	if s == "" || s == "now" {
		return PeriodNow, nil
	}

	var offset int
	if _, err := fmt.Sscanf(s, "+%dh", &offset); err != nil {
		return 0, fmt.Errorf("invalid period %q", s)
	}
	if offset < 1 || offset > MaxPeriodOffset {
		return 0, fmt.Errorf("period offset %d out of range 1..%d", offset, MaxPeriodOffset)
	}
	return Period(offset), nil
}

// Label returns the fixed display label for the period.
func (p Period) Label() string {
	switch {
	case p <= 0:
		return "Ahora"
	case p == 1:
		return "+1 hora"
	default:
		return fmt.Sprintf("+%d horas", int(p))
	}
}

// hourlyTimeLayouts are the timestamp layouts the provider is known to emit.
var hourlyTimeLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
}

func parseHourlyTime(s string) (time.Time, bool) {
	for _, layout := range hourlyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nearestHourlyIndex finds the hourly-array index whose timestamp is nearest
// to the current-weather timestamp, by minimum absolute time difference.
// A full scan over parsed times is deliberate: string-prefix matching breaks
// across timezone boundaries. Returns 0 when the inputs are unusable.
func nearestHourlyIndex(bundle *ForecastBundle) int {
	if bundle == nil || bundle.CurrentWeather == nil || bundle.Hourly == nil {
		return 0
	}

	currentTime, ok := parseHourlyTime(bundle.CurrentWeather.Time)
	if !ok {
		return 0
	}

	closest := 0
	minDiff := math.MaxFloat64
	for i, raw := range bundle.Hourly.Time {
		hourTime, ok := parseHourlyTime(raw)
		if !ok {
			continue
		}
		diff := math.Abs(currentTime.Sub(hourTime).Seconds())
		if diff < minDiff {
			minDiff = diff
			closest = i
		}
	}
	return closest
}

// SelectPeriod extracts a normalized snapshot for the requested period.
//
// For "now" the temperature, weathercode, and windspeed come from the
// current-weather block, which is authoritative even when the hourly arrays
// disagree slightly; the remaining variables come from the nearest hourly
// index. For "+Nh" every field is read from the hourly arrays at
// nearestIndex+N. Out-of-range indices produce nil fields, never a panic.
func SelectPeriod(period Period, forecast *ForecastBundle, rainProb *RainProbabilityBundle) Snapshot {
	snapshot := Snapshot{TimeLabel: period.Label()}

	var hourly *HourlySeries
	if forecast != nil {
		hourly = forecast.Hourly
	}
	var rainHourly *RainProbabilityHourly
	if rainProb != nil {
		rainHourly = rainProb.Hourly
	}

	currentIndex := nearestHourlyIndex(forecast)

	if period == PeriodNow {
		if forecast != nil && forecast.CurrentWeather != nil {
			current := forecast.CurrentWeather
			snapshot.Temperature = ptrTo(current.Temperature)
			snapshot.WeatherCode = ptrTo(current.WeatherCode)
			snapshot.WindSpeed = ptrTo(current.WindSpeed)
		}
		if hourly != nil {
			snapshot.Humidity = floatAt(hourly.RelativeHumidity, currentIndex)
			snapshot.Pressure = floatAt(hourly.SurfacePressure, currentIndex)
			snapshot.UVIndex = floatAt(hourly.UVIndex, currentIndex)
		}
		if rainHourly != nil {
			snapshot.RainProbability = intAt(rainHourly.PrecipitationProbability, currentIndex)
		}
		return snapshot
	}

	targetIndex := currentIndex + int(period)
	if hourly != nil {
		snapshot.Temperature = floatAt(hourly.Temperature, targetIndex)
		snapshot.WeatherCode = intAt(hourly.WeatherCode, targetIndex)
		snapshot.WindSpeed = floatAt(hourly.WindSpeed, targetIndex)
		snapshot.Humidity = floatAt(hourly.RelativeHumidity, targetIndex)
		snapshot.Pressure = floatAt(hourly.SurfacePressure, targetIndex)
		snapshot.UVIndex = floatAt(hourly.UVIndex, targetIndex)
	}
	if rainHourly != nil {
		snapshot.RainProbability = intAt(rainHourly.PrecipitationProbability, targetIndex)
	}
	return snapshot
}

func floatAt(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) || values[i] == nil {
		return nil
	}
	v := *values[i]
	return &v
}

func intAt(values []*int, i int) *int {
	if i < 0 || i >= len(values) || values[i] == nil {
		return nil
	}
	v := *values[i]
	return &v
}

func ptrTo[T any](v T) *T {
	return &v
}
