// Package eval parses, evaluates, simplifies and differentiates calculator
// expressions written in evaluator grammar (see package notation for the
// display-to-evaluator rewrite).
package eval

import (
	"errors"
	"fmt"

	"github.com/private-landing/calc/internal/linalg"
)

var (
	ErrUndefinedSymbol   = errors.New("undefined symbol")
	ErrUndefinedFunction = errors.New("undefined function")
)

// Engine evaluates text against a fixed scope.
type Engine struct {
	scope *Scope
}

// NewEngine returns an Engine bound to scope. A nil scope uses built-ins
// only.
func NewEngine(scope *Scope) *Engine {
	return &Engine{scope: scope}
}

// Evaluate parses and evaluates text.
func (e *Engine) Evaluate(text string) (Value, error) {
	return Evaluate(text, e.scope)
}

// Evaluate parses text and evaluates it in scope.
func Evaluate(text string, scope *Scope) (Value, error) {
	n, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Eval(n, scope)
}

// Eval evaluates a parsed node in scope.
func Eval(n Node, scope *Scope) (Value, error) {
	switch n := n.(type) {
	case *Number:
		return Num(n.Value), nil
	case *Str:
		return Text(n.Value), nil
	case *Symbol:
		v, ok := scope.variable(n.Name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUndefinedSymbol, n.Name)
		}
		return v, nil
	case *Unary:
		x, err := Eval(n.X, scope)
		if err != nil {
			return nil, err
		}
		if n.Op == "+" {
			if _, ok := x.(Text); ok {
				return nil, fmt.Errorf("cannot apply unary + to string")
			}
			return x, nil
		}
		return negate(x)
	case *Binary:
		l, err := Eval(n.L, scope)
		if err != nil {
			return nil, err
		}
		r, err := Eval(n.R, scope)
		if err != nil {
			return nil, err
		}
		return binaryOp(n.Op, l, r)
	case *Factorial:
		x, err := Eval(n.X, scope)
		if err != nil {
			return nil, err
		}
		return builtins["factorial"]([]Value{x})
	case *Call:
		fn, ok := scope.function(n.Name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUndefinedFunction, n.Name)
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := Eval(a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn(args)
	case *MatrixLit:
		return evalMatrix(n, scope)
	}
	return nil, fmt.Errorf("cannot evaluate %T", n)
}

// evalMatrix accepts [1, 2; 3, 4] and the nested form [[1, 2], [3, 4]].
func evalMatrix(lit *MatrixLit, scope *Scope) (Value, error) {
	cells := make([][]Value, len(lit.Rows))
	for i, row := range lit.Rows {
		cells[i] = make([]Value, len(row))
		for j, cell := range row {
			v, err := Eval(cell, scope)
			if err != nil {
				return nil, err
			}
			cells[i][j] = v
		}
	}

	if len(cells) == 1 {
		if nums, ok := numbersOf(cells[0]); ok {
			return wrapMatrix(linalg.NewVector(nums))
		}
		rows := make([][]float64, len(cells[0]))
		for i, v := range cells[0] {
			m, ok := v.(Matrix)
			if !ok || !m.IsVector() {
				return nil, fmt.Errorf("matrix rows must all be numbers or all be vectors")
			}
			rows[i] = m.Values()
		}
		return wrapMatrix(linalg.New(rows))
	}

	rows := make([][]float64, len(cells))
	for i, row := range cells {
		nums, ok := numbersOf(row)
		if !ok {
			return nil, fmt.Errorf("matrix elements must be numbers")
		}
		rows[i] = nums
	}
	return wrapMatrix(linalg.New(rows))
}

func numbersOf(vals []Value) ([]float64, bool) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		n, ok := v.(Num)
		if !ok {
			return nil, false
		}
		out[i] = float64(n)
	}
	return out, true
}
