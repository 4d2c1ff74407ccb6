package historical

import (
	"fmt"
	"time"
)

// archiveDelay is how far the archive lags behind today. Requests past this
// horizon return incomplete data.
const archiveDelay = 5 * 24 * time.Hour

const dateLayout = "2006-01-02"

// RangeOption is a preset date range offered to the user.
type RangeOption struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// rangePresets maps preset values to their label and span in days.
var rangePresets = []struct {
	value string
	label string
	days  int
}{
	{"week", "Última semana", 7},
	{"month", "Último mes", 30},
	{"3months", "Últimos 3 meses", 90},
	{"6months", "Últimos 6 meses", 180},
}

// RangeOptions returns the preset ranges anchored at now. Every preset ends
// archiveDelay before now.
func RangeOptions(now time.Time) []RangeOption {
	end := now.Add(-archiveDelay)

	options := make([]RangeOption, 0, len(rangePresets))
	for _, preset := range rangePresets {
		start := end.Add(-time.Duration(preset.days) * 24 * time.Hour)
		options = append(options, RangeOption{
			Label:     preset.label,
			Value:     preset.value,
			StartDate: start.UTC().Format(dateLayout),
			EndDate:   end.UTC().Format(dateLayout),
		})
	}
	return options
}

// ResolveRange resolves a preset value to its concrete dates, anchored at
// now. Unknown presets are an error.
func ResolveRange(value string, now time.Time) (start, end string, err error) {
	for _, option := range RangeOptions(now) {
		if option.Value == value {
			return option.StartDate, option.EndDate, nil
		}
	}
	return "", "", fmt.Errorf("%w: unknown preset %q", ErrInvalidDateRange, value)
}

// RangeLabel returns the display label of a preset, or the value itself for
// unknown presets.
func RangeLabel(value string) string {
	for _, preset := range rangePresets {
		if preset.value == value {
			return preset.label
		}
	}
	return value
}

// ValidateDates checks a custom start/end pair: both must parse as ISO dates
// and start must not be after end.
func ValidateDates(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return fmt.Errorf("%w: bad start date %q", ErrInvalidDateRange, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return fmt.Errorf("%w: bad end date %q", ErrInvalidDateRange, endDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, startDate, endDate)
	}
	return nil
}

// BaselineDates shifts a date range one year into the past, keeping month
// and day. Used for year-over-year anomaly comparisons.
func BaselineDates(startDate, endDate string) (string, string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: bad start date %q", ErrInvalidDateRange, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: bad end date %q", ErrInvalidDateRange, endDate)
	}
	return start.AddDate(-1, 0, 0).Format(dateLayout), end.AddDate(-1, 0, 0).Format(dateLayout), nil
}
