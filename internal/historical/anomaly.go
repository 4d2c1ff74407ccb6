package historical

// CalculateAnomalies compares a current-period aggregate against its
// baseline (the same dates one year earlier). Returns nil when either side
// is missing.
func CalculateAnomalies(current, baseline *Aggregate) *ClimateAnomaly {
	if current == nil || baseline == nil {
		return nil
	}

	tempAnomaly := current.Stats.AvgTemp - baseline.Stats.AvgTemp
	precipAnomaly := current.Stats.TotalPrecipitation - baseline.Stats.TotalPrecipitation

	return &ClimateAnomaly{
		TemperatureAnomaly:   tempAnomaly,
		PrecipitationAnomaly: precipAnomaly,
		TemperatureTrend:     trendPercent(tempAnomaly, baseline.Stats.AvgTemp),
		PrecipitationTrend:   trendPercent(precipAnomaly, baseline.Stats.TotalPrecipitation),
		IsWarmer:             current.Stats.AvgTemp > baseline.Stats.AvgTemp,
		IsWetter:             current.Stats.TotalPrecipitation > baseline.Stats.TotalPrecipitation,
		Confidence:           confidenceLevel(current.Days, baseline.Days),
	}
}

// trendPercent returns the relative change as a percentage of the baseline,
// or nil when the baseline is zero.
func trendPercent(delta, baseline float64) *float64 {
	if baseline == 0 {
		return nil
	}
	pct := delta / baseline * 100
	return &pct
}

// confidenceLevel grades the comparison by the days of data on each side.
func confidenceLevel(currentDays, baselineDays int) Confidence {
	switch {
	case currentDays >= 30 && baselineDays >= 365:
		return ConfidenceHigh
	case currentDays >= 7 && baselineDays >= 90:
		return ConfidenceMedium
	case currentDays >= 3 && baselineDays >= 30:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
