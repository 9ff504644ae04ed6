package forecast

import (
	"fmt"
	"math"
)

// Unit is the temperature unit used for display.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// ToFahrenheit converts degrees Celsius to degrees Fahrenheit.
func ToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

// Display converts a Celsius value to the unit and rounds half away from zero.
// Conversion always happens before rounding.
func (u Unit) Display(celsius float64) int {
	v := celsius
	if u == Fahrenheit {
		v = ToFahrenheit(celsius)
	}
	return int(math.Round(v))
}

// Symbol returns "°C" or "°F". Unknown units display as Celsius.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Format renders a temperature with its unit, e.g. "5°C".
func (u Unit) Format(celsius float64) string {
	return fmt.Sprintf("%d%s", u.Display(celsius), u.Symbol())
}
