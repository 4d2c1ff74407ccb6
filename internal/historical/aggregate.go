package historical

// BuildAggregate computes summary statistics over an archive response.
// Averages skip null days; min/max consider only valid days. A range with
// no daily block at all is malformed.
func BuildAggregate(raw *ArchiveResponse) (*Aggregate, error) {
	if raw == nil || raw.Daily == nil {
		return nil, ErrMalformedResponse
	}

	daily := raw.Daily
	maxTemp, _ := seriesMax(daily.TemperatureMax)
	minTemp, _ := seriesMin(daily.TemperatureMin)
	maxWind, _ := seriesMax(daily.WindSpeedMax)

	stats := Stats{
		AvgTemp:            seriesAverage(daily.TemperatureMean),
		MaxTemp:            maxTemp,
		MinTemp:            minTemp,
		TotalPrecipitation: seriesSum(daily.PrecipitationSum),
		AvgWindSpeed:       seriesAverage(daily.WindSpeedMax),
		MaxWindSpeed:       maxWind,
		AvgHumidity:        seriesAverage(daily.RelativeHumidityMean),
		AvgPressure:        seriesAverage(daily.SurfacePressureMean),
		AvgCloudCover:      seriesAverage(daily.CloudCoverMean),
		AvgUVIndex:         seriesAverage(daily.UVIndexMax),
	}

	return &Aggregate{
		Stats:     stats,
		Daily:     daily,
		Days:      len(daily.Time),
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
	}, nil
}

// seriesAverage averages the non-null values; all-null series average to 0.
func seriesAverage(values []*float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// seriesSum sums the values, treating null days as 0.
func seriesSum(values []*float64) float64 {
	sum := 0.0
	for _, v := range values {
		if v != nil {
			sum += *v
		}
	}
	return sum
}

func seriesMax(values []*float64) (float64, bool) {
	best := 0.0
	found := false
	for _, v := range values {
		if v == nil {
			continue
		}
		if !found || *v > best {
			best = *v
			found = true
		}
	}
	return best, found
}

func seriesMin(values []*float64) (float64, bool) {
	best := 0.0
	found := false
	for _, v := range values {
		if v == nil {
			continue
		}
		if !found || *v < best {
			best = *v
			found = true
		}
	}
	return best, found
}
