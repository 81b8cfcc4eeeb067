// Package units provides shared constants and conversion for temperature
// display units. Values are decoded in degrees Celsius.
package units

import "strings"

// Unit constants
const (
	Celsius    = "celsius"
	Kelvin     = "kelvin"
	Fahrenheit = "fahrenheit"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Celsius, Kelvin, Fahrenheit}

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
	return strings.Join(ValidUnits, ", ")
}

// ConvertTemperature converts a temperature from °C to the target units.
// NaN passes through unchanged.
func ConvertTemperature(celsius float64, targetUnits string) float64 {
	switch targetUnits {
	case Kelvin:
		return celsius + 273.15
	case Fahrenheit:
		return celsius*9/5 + 32
	default:
		return celsius
	}
}

// Symbol returns the display suffix for a unit.
func Symbol(unit string) string {
	switch unit {
	case Kelvin:
		return "K"
	case Fahrenheit:
		return "°F"
	default:
		return "°C"
	}
}
