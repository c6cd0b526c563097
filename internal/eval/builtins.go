package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/private-landing/calc/internal/linalg"
)

var (
	constants map[string]Value
	builtins  map[string]Func
)

func init() {
	constants = map[string]Value{
		"pi":       Num(math.Pi),
		"PI":       Num(math.Pi),
		"e":        Num(math.E),
		"E":        Num(math.E),
		"tau":      Num(2 * math.Pi),
		"phi":      Num(math.Phi),
		"Infinity": Num(math.Inf(1)),
		"NaN":      Num(math.NaN()),
	}

	builtins = map[string]Func{
		"sqrt":  elementwise("sqrt", math.Sqrt),
		"cbrt":  elementwise("cbrt", math.Cbrt),
		"abs":   elementwise("abs", math.Abs),
		"exp":   elementwise("exp", math.Exp),
		"log":   elementwise("log", math.Log),
		"ln":    elementwise("ln", math.Log),
		"log10": elementwise("log10", math.Log10),
		"log2":  elementwise("log2", math.Log2),
		"sin":   elementwise("sin", math.Sin),
		"cos":   elementwise("cos", math.Cos),
		"tan":   elementwise("tan", math.Tan),
		"asin":  elementwise("asin", math.Asin),
		"acos":  elementwise("acos", math.Acos),
		"atan":  elementwise("atan", math.Atan),
		"sinh":  elementwise("sinh", math.Sinh),
		"cosh":  elementwise("cosh", math.Cosh),
		"tanh":  elementwise("tanh", math.Tanh),
		"floor": elementwise("floor", math.Floor),
		"ceil":  elementwise("ceil", math.Ceil),
		"round": elementwise("round", math.Round),
		"gamma": elementwise("gamma", math.Gamma),

		"factorial":    numeric1("factorial", factorial),
		"pow":          numeric2("pow", func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		"mod":          numeric2("mod", func(a, b float64) (float64, error) { return floorMod(a, b), nil }),
		"combinations": numeric2("combinations", combinations),
		"permutations": permutationsFn,
		"min":          extremum("min", math.Min),
		"max":          extremum("max", math.Max),

		"det":       matrixFn("det", func(m Matrix) (Value, error) { d, err := m.Det(); return Num(d), err }),
		"inv":       matrixFn("inv", func(m Matrix) (Value, error) { i, err := m.Inverse(); return wrapMatrix(i, err) }),
		"transpose": matrixFn("transpose", func(m Matrix) (Value, error) { return Matrix{m.Transpose()}, nil }),
		"norm":      matrixFn("norm", func(m Matrix) (Value, error) { return Num(m.Norm()), nil }),
		"dot":       matrixFn2("dot", func(a, b Matrix) (Value, error) { d, err := a.Dot(b.Matrix); return Num(d), err }),
		"cross":     matrixFn2("cross", func(a, b Matrix) (Value, error) { c, err := a.Cross(b.Matrix); return wrapMatrix(c, err) }),

		"derivative": symbolic2("derivative", func(expr, v string) (string, error) {
			n, err := Parse(expr)
			if err != nil {
				return "", err
			}
			d, err := Derivative(n, v)
			if err != nil {
				return "", err
			}
			return d.String(), nil
		}),
		"simplify": symbolic1("simplify", func(expr string) (string, error) {
			n, err := Parse(expr)
			if err != nil {
				return "", err
			}
			return Simplify(n).String(), nil
		}),
	}
}

var (
	ErrNegativeFactorial = errors.New("factorial of a negative number")
	ErrNotInteger        = errors.New("arguments must be non-negative integers")
	ErrKExceedsN         = errors.New("k must be less than or equal to n")
)

func arity(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func wrapMatrix(m *linalg.Matrix, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return Matrix{m}, nil
}

// elementwise lifts fn to numbers and, element by element, to matrices.
func elementwise(name string, fn func(float64) float64) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case Num:
			return Num(fn(float64(x))), nil
		case Matrix:
			return Matrix{x.Apply(fn)}, nil
		}
		return nil, fmt.Errorf("%s: unsupported argument %s", name, typeName(args[0]))
	}
}

func numeric1(name string, fn func(float64) (float64, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		x, err := asNumber(args[0], name)
		if err != nil {
			return nil, err
		}
		r, err := fn(x)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return Num(r), nil
	}
}

func numeric2(name string, fn func(a, b float64) (float64, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		a, err := asNumber(args[0], name)
		if err != nil {
			return nil, err
		}
		b, err := asNumber(args[1], name)
		if err != nil {
			return nil, err
		}
		r, err := fn(a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return Num(r), nil
	}
}

func extremum(name string, pick func(a, b float64) float64) Func {
	return func(args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: expected at least one argument", name)
		}
		var vals []float64
		for _, a := range args {
			switch x := a.(type) {
			case Num:
				vals = append(vals, float64(x))
			case Matrix:
				for _, row := range x.Rows() {
					vals = append(vals, row...)
				}
			default:
				return nil, fmt.Errorf("%s: unsupported argument %s", name, typeName(a))
			}
		}
		out := vals[0]
		for _, v := range vals[1:] {
			out = pick(out, v)
		}
		return Num(out), nil
	}
}

func matrixFn(name string, fn func(Matrix) (Value, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case Matrix:
			return fn(x)
		case Num:
			m, _ := linalg.New([][]float64{{float64(x)}})
			return fn(Matrix{m})
		}
		return nil, fmt.Errorf("%s: expected matrix, got %s", name, typeName(args[0]))
	}
}

func matrixFn2(name string, fn func(a, b Matrix) (Value, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		a, ok1 := args[0].(Matrix)
		b, ok2 := args[1].(Matrix)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: expected two vectors", name)
		}
		return fn(a, b)
	}
}

func symbolic1(name string, fn func(string) (string, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1); err != nil {
			return nil, err
		}
		s, ok := args[0].(Text)
		if !ok {
			return nil, fmt.Errorf("%s: expected string, got %s", name, typeName(args[0]))
		}
		out, err := fn(string(s))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return Text(out), nil
	}
}

func symbolic2(name string, fn func(a, b string) (string, error)) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		a, ok1 := args[0].(Text)
		b, ok2 := args[1].(Text)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: expected two strings", name)
		}
		out, err := fn(string(a), string(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return Text(out), nil
	}
}

func isNonNegativeInt(x float64) bool {
	return x >= 0 && x == math.Trunc(x) && !math.IsInf(x, 0)
}

// factorial uses gamma for non-integers. Integers above 170 overflow to
// +Inf.
func factorial(n float64) (float64, error) {
	if n < 0 {
		return 0, ErrNegativeFactorial
	}
	if n != math.Trunc(n) {
		return math.Gamma(n + 1), nil
	}
	if n > 170 {
		return math.Inf(1), nil
	}
	out := 1.0
	for i := 2.0; i <= n; i++ {
		out *= i
	}
	return out, nil
}

// permutationsFn accepts permutations(n) = n! or permutations(n, k).
func permutationsFn(args []Value) (Value, error) {
	if len(args) == 1 {
		n, err := asNumber(args[0], "permutations")
		if err != nil {
			return nil, err
		}
		if !isNonNegativeInt(n) {
			return nil, fmt.Errorf("permutations: %w", ErrNotInteger)
		}
		f, err := factorial(n)
		return Num(f), err
	}
	return numeric2("permutations", permutations)(args)
}

func permutations(n, k float64) (float64, error) {
	if !isNonNegativeInt(n) || !isNonNegativeInt(k) {
		return 0, ErrNotInteger
	}
	if k > n {
		return 0, ErrKExceedsN
	}
	out := 1.0
	for i := n - k + 1; i <= n; i++ {
		out *= i
	}
	return out, nil
}

func combinations(n, k float64) (float64, error) {
	if !isNonNegativeInt(n) || !isNonNegativeInt(k) {
		return 0, ErrNotInteger
	}
	if k > n {
		return 0, ErrKExceedsN
	}
	if k > n-k {
		k = n - k
	}
	out := 1.0
	for i := 1.0; i <= k; i++ {
		out = out * (n - k + i) / i
	}
	return math.Round(out), nil
}
