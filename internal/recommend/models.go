// Package recommend turns a weather snapshot into categorized, prioritized
// advice for the user.
package recommend

// Priority ranks a recommendation within its category.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the sort weight of a priority. Unknown priorities sort last.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Recommendation is a single advice line shown to the user.
type Recommendation struct {
	Text     string   `json:"text"`
	Action   string   `json:"action"`
	Priority Priority `json:"priority"`
}

// Category identifies a recommendation group.
type Category string

// Recommendation categories.
const (
	CategoryClothing              Category = "clothing"
	CategoryEquipment             Category = "equipment"
	CategoryHealth                Category = "health"
	CategorySunscreen             Category = "sunscreen"
	CategoryHeatStress            Category = "heatStress"
	CategoryAirQuality            Category = "airQuality"
	CategoryWorkplaceSafety       Category = "workplaceSafety"
	CategoryVulnerablePopulations Category = "vulnerablePopulations"
	CategoryWaterSafety           Category = "waterSafety"
)

// AllCategories lists every category in presentation order.
var AllCategories = []Category{
	CategoryClothing,
	CategoryEquipment,
	CategoryHealth,
	CategorySunscreen,
	CategoryHeatStress,
	CategoryAirQuality,
	CategoryWorkplaceSafety,
	CategoryVulnerablePopulations,
	CategoryWaterSafety,
}

// Set holds the recommendations of every category. Categories with no
// matching rules map to an empty slice, never nil, so JSON encodes them as [].
type Set map[Category][]Recommendation
