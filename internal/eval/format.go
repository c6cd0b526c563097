package eval

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimal places kept in displayed results.
const Precision = 10

// Format renders a result for the calculator screen. Numbers are rounded to
// Precision decimal places; matrices are rounded element-wise.
func Format(v Value) string {
	switch x := v.(type) {
	case Num:
		return FormatNumber(Round(float64(x), Precision))
	case Matrix:
		return Matrix{x.Apply(func(f float64) float64 { return Round(f, Precision) })}.String()
	case nil:
		return ""
	}
	return v.String()
}

// Round rounds x to places decimals through its decimal representation, so
// 0.1+0.2 comes back as 0.3.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// FormatNumber prints x the way a JavaScript number prints: integers without
// a fraction, exponent notation outside [1e-6, 1e21).
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	if a := math.Abs(x); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
