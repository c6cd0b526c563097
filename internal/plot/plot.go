// Package plot samples f(x) and its derivative, keeps the current figure
// and renders it to the terminal or to PNG and PDF files.
package plot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/private-landing/calc/internal/eval"
	"github.com/private-landing/calc/internal/notation"
)

// Series colours.
const (
	FunctionColor   = "#4285F4"
	PrimaryColor    = "#00ffcc"
	DerivativeColor = "#ff6600"
)

// maxMagnitude drops samples near poles such as tan(π/2).
const maxMagnitude = 1e10

var (
	ErrEmptyFunction = errors.New("Please enter a function.")
	ErrNoData        = errors.New("Could not generate data for the plot. Check your function or range.")
)

// Point is one sample, rounded to two decimals.
type Point struct {
	X, Y float64
}

// Series is one labelled line.
type Series struct {
	Label  string
	Color  string
	Points []Point
}

// Figure is a complete plot.
type Figure struct {
	Expression string
	Derivative string
	Series     []Series
}

// Caption is the history text for the figure.
func (f *Figure) Caption() string {
	if f.Derivative != "" {
		return fmt.Sprintf("Plotted: f(x) = %s and f'(x) = %s", f.Expression, f.Derivative)
	}
	return "Plotted: f(x) = " + f.Expression
}

// Range is the sampled x interval.
type Range struct {
	Start, End, Step float64
}

// DefaultRange covers [-2π, 2π] in steps of 0.1.
func DefaultRange() Range {
	return Range{Start: -2 * math.Pi, End: 2 * math.Pi, Step: 0.1}
}

// Table samples expr, written in evaluator grammar, over r. Points that fail
// to evaluate, are not finite numbers or exceed 1e10 in magnitude are
// skipped.
func Table(expr string, r Range) []Point {
	n, err := eval.Parse(expr)
	if err != nil {
		return nil
	}
	return sample(n, r)
}

func sample(n eval.Node, r Range) []Point {
	if r.Step <= 0 {
		return nil
	}
	var pts []Point
	scope := eval.PlotScope(r.Start)
	for i := 0; ; i++ {
		x := r.Start + float64(i)*r.Step
		if x > r.End {
			break
		}
		scope.SetX(x)
		v, err := eval.Eval(n, scope)
		if err != nil {
			continue
		}
		y, ok := v.(eval.Num)
		if !ok || math.IsNaN(float64(y)) || math.Abs(float64(y)) >= maxMagnitude {
			continue
		}
		pts = append(pts, Point{X: eval.Round(x, 2), Y: eval.Round(float64(y), 2)})
	}
	return pts
}

// Function builds a single-series figure for expr in display grammar.
func Function(expr string, r Range) (*Figure, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyFunction
	}
	pts := Table(notation.Normalize(expr), r)
	if len(pts) == 0 {
		return nil, ErrNoData
	}
	return &Figure{
		Expression: expr,
		Series:     []Series{{Label: "f(x) = " + expr, Color: FunctionColor, Points: pts}},
	}, nil
}

// WithDerivative builds a figure with f(x) and f'(x).
func WithDerivative(expr string, r Range) (*Figure, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyFunction
	}
	n, err := eval.Parse(notation.Normalize(expr))
	if err != nil {
		return nil, fmt.Errorf("Invalid expression for derivative: %w", err)
	}
	d, err := eval.Derivative(n, "x")
	if err != nil {
		return nil, fmt.Errorf("Invalid expression for derivative: %w", err)
	}
	deriv := d.String()
	return &Figure{
		Expression: expr,
		Derivative: deriv,
		Series: []Series{
			{Label: "f(x) = " + expr, Color: PrimaryColor, Points: sample(n, r)},
			{Label: "f'(x) = " + deriv, Color: DerivativeColor, Points: sample(d, r)},
		},
	}, nil
}

// YRange returns the y bounds over every series with 10% padding. A flat
// figure is widened by 1 each way; an empty one spans -10 to 10.
func (f *Figure) YRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range f.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = -10, 10
	}
	pad := (hi - lo) * 0.1
	lo -= pad
	hi += pad
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}
