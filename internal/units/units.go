// Package units provides shared constants and validation for survey
// distance units. Position resolution is unit-agnostic; units label axes
// and reports only.
package units

// Unit constants
const (
	Feet   = "feet"
	Meters = "meters"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Feet, Meters}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "feet, meters"
}

const feetPerMeter = 3.280839895013123

// Convert converts a distance between the supported units. Unknown units
// pass the value through unchanged.
func Convert(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	switch {
	case from == Feet && to == Meters:
		return v / feetPerMeter
	case from == Meters && to == Feet:
		return v * feetPerMeter
	default:
		return v
	}
}
