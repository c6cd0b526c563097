package toolbox

import (
	"math"
	"strings"

	"github.com/private-landing/calc/internal/eval"
	"github.com/private-landing/calc/internal/notation"
)

const coefficientEpsilon = 1e-9

// SolveEquation solves a linear or quadratic equation in x, such as
// "x^2 - 5x + 6 = 0". Without '=' the input is taken to equal zero.
// Coefficients are recovered by sampling the polynomial at x = 0, 1 and 2.
// Every attempt is recorded.
func SolveEquation(input string) Result {
	input = strings.TrimSpace(input)
	text := solve(input)
	return recorded(text, "Solved: "+input, text)
}

func solve(input string) string {
	expr := notation.Normalize(input)
	if strings.Contains(expr, "=") {
		parts := strings.Split(expr, "=")
		expr = "(" + strings.TrimSpace(parts[0]) + ") - (" + strings.TrimSpace(parts[1]) + ")"
	}
	n, err := eval.Parse(expr)
	if err != nil {
		return "Error: Invalid equation format or calculation issue: " + err.Error()
	}
	n = eval.Simplify(n)

	c0 := sampleAt(n, 0)
	p1 := sampleAt(n, 1) - c0
	p2 := sampleAt(n, 2) - c0
	a := (p2 - 2*p1) / 2
	b := p1 - a

	a = eval.Round(a, eval.Precision)
	b = eval.Round(b, eval.Precision)
	c := eval.Round(c0, eval.Precision)

	switch {
	case math.Abs(a) > coefficientEpsilon:
		disc := b*b - 4*a*c
		if disc >= 0 {
			x1 := (-b + math.Sqrt(disc)) / (2 * a)
			x2 := (-b - math.Sqrt(disc)) / (2 * a)
			return "x₁ = " + fixed(x1, 10) + ", x₂ = " + fixed(x2, 10)
		}
		re := fixed(-b/(2*a), 10)
		im := fixed(math.Sqrt(math.Abs(disc))/(2*a), 10)
		return "x₁ = " + re + " + " + im + "i, x₂ = " + re + " - " + im + "i"
	case math.Abs(b) > coefficientEpsilon:
		return "x = " + fixed(-c/b, 10)
	case math.Abs(c) < coefficientEpsilon:
		return "Equation is an identity (true for all x)."
	default:
		return "Equation has no solution."
	}
}

// sampleAt evaluates n with x bound to v. Failures and non-numeric results
// count as zero.
func sampleAt(n eval.Node, v float64) float64 {
	out, err := eval.Eval(n, eval.NewScope().Set("x", eval.Num(v)))
	if err != nil {
		return 0
	}
	num, ok := out.(eval.Num)
	if !ok {
		return 0
	}
	return float64(num)
}
