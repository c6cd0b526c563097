package toolbox

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrIncompatibleUnits = errors.New("units are not compatible")
)

type unit struct {
	name     string
	category string
	toBase   func(float64) float64
	fromBase func(float64) float64
}

func linear(name, category string, factor float64) unit {
	return unit{
		name:     name,
		category: category,
		toBase:   func(v float64) float64 { return v * factor },
		fromBase: func(v float64) float64 { return v / factor },
	}
}

// Categories lists unit categories in menu order.
var Categories = []string{"length", "mass", "temperature", "time"}

// Base units are meter, gram, kelvin and second.
var unitTable = []unit{
	linear("meter", "length", 1),
	linear("kilometer", "length", 1000),
	linear("mile", "length", 1609.344),
	linear("foot", "length", 0.3048),
	linear("inch", "length", 0.0254),
	linear("centimeter", "length", 0.01),
	linear("millimeter", "length", 0.001),

	linear("gram", "mass", 1),
	linear("kilogram", "mass", 1000),
	linear("pound", "mass", 453.59237),
	linear("ounce", "mass", 28.349523125),

	{
		name:     "celsius",
		category: "temperature",
		toBase:   func(v float64) float64 { return v + 273.15 },
		fromBase: func(k float64) float64 { return k - 273.15 },
	},
	{
		name:     "fahrenheit",
		category: "temperature",
		toBase:   func(v float64) float64 { return (v-32)*5/9 + 273.15 },
		fromBase: func(k float64) float64 { return (k-273.15)*9/5 + 32 },
	},
	linear("kelvin", "temperature", 1),

	linear("second", "time", 1),
	linear("minute", "time", 60),
	linear("hour", "time", 3600),
	linear("day", "time", 86400),
}

func lookupUnit(name string) (unit, error) {
	for _, u := range unitTable {
		if u.name == name {
			return u, nil
		}
	}
	return unit{}, fmt.Errorf("%w %q", ErrUnknownUnit, name)
}

// Units returns the units of category in menu order, or nil for an unknown
// category.
func Units(category string) []string {
	var out []string
	for _, u := range unitTable {
		if u.category == category {
			out = append(out, u.name)
		}
	}
	return out
}

// DefaultUnits returns the initial from/to selection for category: its first
// unit and its second, or the first twice when there is only one.
func DefaultUnits(category string) (from, to string) {
	us := Units(category)
	switch len(us) {
	case 0:
		return "", ""
	case 1:
		return us[0], us[0]
	}
	return us[0], us[1]
}

// Convert converts v between two units of the same category.
func Convert(v float64, from, to string) (float64, error) {
	f, err := lookupUnit(from)
	if err != nil {
		return 0, err
	}
	t, err := lookupUnit(to)
	if err != nil {
		return 0, err
	}
	if f.category != t.category {
		return 0, fmt.Errorf("%s to %s: %w", from, to, ErrIncompatibleUnits)
	}
	return t.fromBase(f.toBase(v)), nil
}

// ConvertUnit converts the text value and formats it with four decimals. An
// unreadable value gives "" and a failed conversion gives "Error".
func ConvertUnit(value, from, to string) string {
	v, ok := parseFloatPrefix(value)
	if !ok {
		return ""
	}
	out, err := Convert(v, from, to)
	if err != nil {
		return "Error"
	}
	return fixed(out, 4)
}
