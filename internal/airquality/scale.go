package airquality

// Category is one severity band of the AQI scale, with the guidance shown to
// the user and the color used by the indicator.
type Category struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Color   string  `json:"color"`
	Message string  `json:"msg"`
}

// ScaleMax is the upper end of the clamped AQI scale.
const ScaleMax = 300

// Categories is the fixed five-band scale over [0,300]. Bands are contiguous
// and exhaustive: every band is [min,max) except the last, which is [min,max].
var Categories = []Category{
	{
		Name:    "Bueno",
		Min:     0,
		Max:     50,
		Color:   "#00e400",
		Message: "Puedes salir con normalidad.",
	},
	{
		Name:    "Moderado",
		Min:     50,
		Max:     100,
		Color:   "#ffff00",
		Message: "Personas sensibles: limiten actividades intensas al aire libre.",
	},
	{
		Name:    "Sensible",
		Min:     100,
		Max:     150,
		Color:   "#ff7e00",
		Message: "Personas sensibles deben reducir esfuerzos y tiempo al aire libre.",
	},
	{
		Name:    "No recomendable",
		Min:     150,
		Max:     200,
		Color:   "#ff0000",
		Message: "Evita actividades al aire libre; permanece bajo techo si es posible.",
	},
	{
		Name:    "Muy peligroso",
		Min:     200,
		Max:     300,
		Color:   "#8f3f97",
		Message: "Permanece en interiores; cierra ventanas y usa ventilación/filtrado.",
	},
}

// ClampToScale clamps an AQI value to the [0, ScaleMax] scale. Callers are
// expected to clamp before classifying.
func ClampToScale(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > ScaleMax {
		return ScaleMax
	}
	return value
}

// Classify maps a clamped AQI value to its severity band. Values that match
// no band (negative or NaN input) fall back to the first band; that is a
// defensive default, not a validated contract.
func Classify(aqi float64) Category {
	for i, c := range Categories {
		isLast := i == len(Categories)-1
		if aqi >= c.Min && (isLast && aqi <= c.Max || !isLast && aqi < c.Max) {
			return c
		}
	}
	return Categories[0]
}

// IsRisky reports whether a category should trigger email alerts
// ("No recomendable" or worse).
func (c Category) IsRisky() bool {
	return c.Min >= 150
}
