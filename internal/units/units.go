// Package units provides shared constants and conversion for depth units.
// Well logs are commonly recorded in feet; the dataset stores meters.
package units

// Unit constants
const (
	Meters = "m"
	Feet   = "ft"
)

const feetToMeters = 0.3048

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Feet}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ToMeters converts a depth or elevation to meters from the given unit.
// Unknown units pass the value through unchanged.
func ToMeters(v float64, unit string) float64 {
	switch unit {
	case Feet:
		return v * feetToMeters
	default:
		return v
	}
}
