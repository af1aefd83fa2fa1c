// Package units provides shared constants and validation for length units
package units

// Unit constants
const (
	M  = "m"
	CM = "cm"
	MM = "mm"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{M, CM, MM}

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
	return "m, cm, mm"
}

// LengthFactor returns the multiplier from metres to the target unit.
// Keypoint coordinates are recorded in metres.
func LengthFactor(targetUnits string) float64 {
	switch targetUnits {
	case CM:
		return 100
	case MM:
		return 1000
	default:
		return 1
	}
}

// ConvertLength converts a length from metres to the target units
func ConvertLength(meters float64, targetUnits string) float64 {
	return meters * LengthFactor(targetUnits)
}
