package recommend

import (
	"sort"

	"github.com/climavista/climavista/internal/weather"
)

// RuleFunc produces the recommendations of one category for a snapshot.
type RuleFunc func(weather.Snapshot) []Recommendation

// rules is the category registry. Every category in AllCategories must have
// an entry here.
var rules = map[Category]RuleFunc{
	CategoryClothing:              clothingRules,
	CategoryEquipment:             equipmentRules,
	CategoryHealth:                healthRules,
	CategorySunscreen:             sunscreenRules,
	CategoryHeatStress:            heatStressRules,
	CategoryAirQuality:            airQualityRules,
	CategoryWorkplaceSafety:       workplaceSafetyRules,
	CategoryVulnerablePopulations: vulnerablePopulationRules,
	CategoryWaterSafety:           waterSafetyRules,
}

// Generate evaluates every category against the snapshot. Within each
// category the recommendations are sorted by descending priority; ties keep
// rule order, so a later-firing high-priority item never jumps ahead of an
// earlier one.
func Generate(snapshot weather.Snapshot) Set {
	set := make(Set, len(AllCategories))
	for _, category := range AllCategories {
		recs := rules[category](snapshot)
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Priority.Weight() > recs[j].Priority.Weight()
		})
		set[category] = recs
	}
	return set
}

// Limit truncates every category to at most n recommendations, keeping the
// highest-priority ones. Used for compact display surfaces.
func (s Set) Limit(n int) Set {
	limited := make(Set, len(s))
	for category, recs := range s {
		if len(recs) > n {
			recs = recs[:n]
		}
		limited[category] = recs
	}
	return limited
}
