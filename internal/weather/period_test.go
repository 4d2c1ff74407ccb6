package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climavista/climavista/internal/weather"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// testForecast builds a bundle whose current_weather time sits between two
// hourly samples, closest to index 2.
func testForecast() *weather.ForecastBundle {
	return &weather.ForecastBundle{
		CurrentWeather: &weather.CurrentWeather{
			Temperature: 27.4,
			WeatherCode: 61,
			WindSpeed:   12.0,
			Time:        "2024-05-10T14:10",
		},
		Hourly: &weather.HourlySeries{
			Time: []string{
				"2024-05-10T12:00",
				"2024-05-10T13:00",
				"2024-05-10T14:00",
				"2024-05-10T15:00",
				"2024-05-10T16:00",
			},
			Temperature:      []*float64{floatPtr(24), floatPtr(25), floatPtr(27), floatPtr(28), floatPtr(29)},
			RelativeHumidity: []*float64{floatPtr(80), floatPtr(75), floatPtr(70), floatPtr(68), floatPtr(65)},
			WindSpeed:        []*float64{floatPtr(8), floatPtr(10), floatPtr(11), floatPtr(13), floatPtr(14)},
			SurfacePressure:  []*float64{floatPtr(1012), floatPtr(1013), floatPtr(1014), floatPtr(1015), floatPtr(1016)},
			WeatherCode:      []*int{intPtr(2), intPtr(3), intPtr(61), intPtr(63), intPtr(65)},
			UVIndex:          []*float64{floatPtr(5), floatPtr(6), floatPtr(7), floatPtr(6), floatPtr(4)},
		},
	}
}

func testRainProb() *weather.RainProbabilityBundle {
	return &weather.RainProbabilityBundle{
		Hourly: &weather.RainProbabilityHourly{
			Time: []string{
				"2024-05-10T12:00",
				"2024-05-10T13:00",
				"2024-05-10T14:00",
				"2024-05-10T15:00",
				"2024-05-10T16:00",
			},
			PrecipitationProbability: []*int{intPtr(10), intPtr(20), intPtr(35), intPtr(55), intPtr(70)},
		},
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input    string
		expected weather.Period
		wantErr  bool
	}{
		{"now", weather.PeriodNow, false},
		{"", weather.PeriodNow, false},
		{"+1h", 1, false},
		{"+6h", 6, false},
		{"+7h", 0, true},
		{"+0h", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := weather.ParsePeriod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPeriod_Label(t *testing.T) {
	assert.Equal(t, "Ahora", weather.PeriodNow.Label())
	assert.Equal(t, "+1 hora", weather.Period(1).Label())
	assert.Equal(t, "+3 horas", weather.Period(3).Label())
	assert.Equal(t, "+6 horas", weather.Period(6).Label())
}

func TestSelectPeriod_Now(t *testing.T) {
	snapshot := weather.SelectPeriod(weather.PeriodNow, testForecast(), testRainProb())

	// Current block is authoritative for temperature/code/wind even though the
	// nearest hourly sample disagrees slightly.
	require.NotNil(t, snapshot.Temperature)
	assert.Equal(t, 27.4, *snapshot.Temperature)
	require.NotNil(t, snapshot.WeatherCode)
	assert.Equal(t, 61, *snapshot.WeatherCode)
	require.NotNil(t, snapshot.WindSpeed)
	assert.Equal(t, 12.0, *snapshot.WindSpeed)

	// Remaining fields come from the nearest hourly index (14:00, index 2).
	require.NotNil(t, snapshot.Humidity)
	assert.Equal(t, 70.0, *snapshot.Humidity)
	require.NotNil(t, snapshot.Pressure)
	assert.Equal(t, 1014.0, *snapshot.Pressure)
	require.NotNil(t, snapshot.UVIndex)
	assert.Equal(t, 7.0, *snapshot.UVIndex)
	require.NotNil(t, snapshot.RainProbability)
	assert.Equal(t, 35, *snapshot.RainProbability)

	assert.Equal(t, "Ahora", snapshot.TimeLabel)
}

func TestSelectPeriod_NearestIndexByAbsoluteDifference(t *testing.T) {
	forecast := testForecast()
	// 14:40 is nearer to 15:00 than to 14:00.
	forecast.CurrentWeather.Time = "2024-05-10T14:40"

	snapshot := weather.SelectPeriod(weather.PeriodNow, forecast, testRainProb())

	require.NotNil(t, snapshot.Humidity)
	assert.Equal(t, 68.0, *snapshot.Humidity)
	require.NotNil(t, snapshot.RainProbability)
	assert.Equal(t, 55, *snapshot.RainProbability)
}

func TestSelectPeriod_HourlyOffset(t *testing.T) {
	snapshot := weather.SelectPeriod(2, testForecast(), testRainProb())

	// All fields from hourly arrays at index 2+2=4, no current-block override.
	require.NotNil(t, snapshot.Temperature)
	assert.Equal(t, 29.0, *snapshot.Temperature)
	require.NotNil(t, snapshot.WeatherCode)
	assert.Equal(t, 65, *snapshot.WeatherCode)
	require.NotNil(t, snapshot.WindSpeed)
	assert.Equal(t, 14.0, *snapshot.WindSpeed)
	require.NotNil(t, snapshot.Humidity)
	assert.Equal(t, 65.0, *snapshot.Humidity)
	require.NotNil(t, snapshot.RainProbability)
	assert.Equal(t, 70, *snapshot.RainProbability)

	assert.Equal(t, "+2 horas", snapshot.TimeLabel)
}

func TestSelectPeriod_OutOfRangeYieldsNilFields(t *testing.T) {
	snapshot := weather.SelectPeriod(6, testForecast(), testRainProb())

	assert.Nil(t, snapshot.Temperature)
	assert.Nil(t, snapshot.WeatherCode)
	assert.Nil(t, snapshot.WindSpeed)
	assert.Nil(t, snapshot.Humidity)
	assert.Nil(t, snapshot.Pressure)
	assert.Nil(t, snapshot.UVIndex)
	assert.Nil(t, snapshot.RainProbability)
	assert.Equal(t, "+6 horas", snapshot.TimeLabel)
}

func TestSelectPeriod_MissingBundles(t *testing.T) {
	snapshot := weather.SelectPeriod(weather.PeriodNow, nil, nil)

	assert.Nil(t, snapshot.Temperature)
	assert.Nil(t, snapshot.RainProbability)
	assert.Equal(t, "Ahora", snapshot.TimeLabel)
}

func TestProcessAlerts(t *testing.T) {
	bundle := testForecast()
	bundle.WeatherAlerts = []weather.WeatherAlert{
		{Event: "Aviso de lluvias fuertes", Description: "Se esperan acumulados de 80mm"},
		{Event: "Vigilancia por vientos"},
	}

	items := weather.ProcessAlerts(bundle)
	require.Len(t, items, 2)
	assert.Equal(t, "Aviso de lluvias fuertes", items[0].Text)
	assert.Equal(t, "Se esperan acumulados de 80mm", items[0].Action)
	assert.Equal(t, "Ver", items[1].Action)

	assert.Empty(t, weather.ProcessAlerts(nil))
}
