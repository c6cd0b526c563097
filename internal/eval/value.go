package eval

import (
	"fmt"
	"math"

	"github.com/private-landing/calc/internal/linalg"
)

// Value is the result of evaluation: Num, Matrix or Text.
type Value interface {
	String() string
}

// Num is a real number result.
type Num float64

func (n Num) String() string { return FormatNumber(float64(n)) }

// Matrix is a vector or matrix result.
type Matrix struct {
	*linalg.Matrix
}

// Text is a string or symbolic result, such as the output of derivative().
type Text string

func (t Text) String() string { return string(t) }

func typeName(v Value) string {
	switch v.(type) {
	case Num:
		return "number"
	case Matrix:
		return "matrix"
	case Text:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}

func asNumber(v Value, ctx string) (float64, error) {
	n, ok := v.(Num)
	if !ok {
		return 0, fmt.Errorf("%s: expected number, got %s", ctx, typeName(v))
	}
	return float64(n), nil
}

func binaryOp(op string, l, r Value) (Value, error) {
	switch a := l.(type) {
	case Num:
		switch b := r.(type) {
		case Num:
			return Num(numericOp(op, float64(a), float64(b))), nil
		case Matrix:
			return scalarMatrixOp(op, float64(a), b, true)
		}
	case Matrix:
		switch b := r.(type) {
		case Num:
			return scalarMatrixOp(op, float64(b), a, false)
		case Matrix:
			return matrixOp(op, a, b)
		}
	}
	return nil, fmt.Errorf("operator %s not supported for %s and %s", op, typeName(l), typeName(r))
}

func numericOp(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "^":
		return math.Pow(a, b)
	case "mod":
		return floorMod(a, b)
	}
	return math.NaN()
}

// floorMod takes the sign of the divisor; x mod 0 is x.
func floorMod(x, y float64) float64 {
	if y == 0 {
		return x
	}
	return x - y*math.Floor(x/y)
}

// scalarMatrixOp applies op between scalar s and matrix m. scalarLeft tells
// which side the scalar was written on.
func scalarMatrixOp(op string, s float64, m Matrix, scalarLeft bool) (Value, error) {
	switch op {
	case "*":
		return Matrix{m.Scale(s)}, nil
	case "/":
		if scalarLeft {
			return Matrix{m.Apply(func(v float64) float64 { return s / v })}, nil
		}
		return Matrix{m.Scale(1 / s)}, nil
	case "+", "-", "mod", "^":
		return Matrix{m.Apply(func(v float64) float64 {
			if scalarLeft {
				return numericOp(op, s, v)
			}
			return numericOp(op, v, s)
		})}, nil
	}
	return nil, fmt.Errorf("operator %s not supported for number and matrix", op)
}

func matrixOp(op string, a, b Matrix) (Value, error) {
	var (
		out *linalg.Matrix
		err error
	)
	switch op {
	case "+":
		out, err = a.Add(b.Matrix)
	case "-":
		out, err = a.Sub(b.Matrix)
	case "*":
		if a.IsVector() && b.IsVector() {
			d, err := a.Dot(b.Matrix)
			if err != nil {
				return nil, err
			}
			return Num(d), nil
		}
		out, err = a.Mul(b.Matrix)
	default:
		return nil, fmt.Errorf("operator %s not supported between matrices", op)
	}
	if err != nil {
		return nil, err
	}
	return Matrix{out}, nil
}

func negate(v Value) (Value, error) {
	switch x := v.(type) {
	case Num:
		return -x, nil
	case Matrix:
		return Matrix{x.Scale(-1)}, nil
	}
	return nil, fmt.Errorf("cannot negate %s", typeName(v))
}
