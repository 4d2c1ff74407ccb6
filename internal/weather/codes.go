package weather

// CodeRange is an inclusive range of weathercodes for a condition group.
// The groups are shared between the description table and the recommendation
// rules so the numeric boundaries live in exactly one place.
type CodeRange struct {
	Min int
	Max int
}

// Contains reports whether code falls inside the range (inclusive).
func (r CodeRange) Contains(code int) bool {
	return code >= r.Min && code <= r.Max
}

// Condition groups over the provider's weathercode scale.
var (
	ClearCodes   = CodeRange{Min: 0, Max: 3}
	FogCodes     = CodeRange{Min: 45, Max: 48}
	DrizzleCodes = CodeRange{Min: 51, Max: 55}
	RainCodes    = CodeRange{Min: 61, Max: 67}
	SnowCodes    = CodeRange{Min: 71, Max: 77}
	ShowerCodes  = CodeRange{Min: 80, Max: 82}
	StormCodes   = CodeRange{Min: 95, Max: 99}
)

// codeDescriptions maps known weathercodes to Spanish descriptions.
var codeDescriptions = map[int]string{
	0:  "Cielo despejado",
	1:  "Mayormente despejado",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Niebla",
	48: "Niebla con escarcha",
	51: "Llovizna ligera",
	53: "Llovizna moderada",
	55: "Llovizna densa",
	61: "Lluvia ligera",
	63: "Lluvia moderada",
	65: "Lluvia intensa",
	71: "Nieve ligera",
	73: "Nieve moderada",
	75: "Nieve intensa",
	77: "Granos de nieve",
	80: "Chubascos ligeros",
	81: "Chubascos moderados",
	82: "Chubascos intensos",
	85: "Chubascos de nieve ligeros",
	86: "Chubascos de nieve intensos",
	95: "Tormenta eléctrica",
	96: "Tormenta eléctrica con granizo ligero",
	99: "Tormenta eléctrica con granizo intenso",
}

// UnknownConditions is returned for codes outside the known table.
// This default is part of the contract, not an error.
const UnknownConditions = "Condiciones desconocidas"

// DescribeCode returns the human-readable description for a weathercode.
func DescribeCode(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return UnknownConditions
}
