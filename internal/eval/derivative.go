package eval

import (
	"errors"
	"fmt"
)

// ErrNotDifferentiable is returned for operators and functions with no
// derivative rule.
var ErrNotDifferentiable = errors.New("not differentiable")

// Derivative returns d(n)/d(variable), simplified. log is treated as base
// 10 to match the calculator scopes; ln is the natural logarithm.
func Derivative(n Node, variable string) (Node, error) {
	d, err := derive(n, variable)
	if err != nil {
		return nil, err
	}
	return Simplify(d), nil
}

// DerivativeOf parses expr and differentiates it.
func DerivativeOf(expr, variable string) (Node, error) {
	n, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return Derivative(n, variable)
}

func num(v float64) Node { return &Number{Value: v} }
func mul(l, r Node) Node { return &Binary{Op: "*", L: l, R: r} }
func div(l, r Node) Node { return &Binary{Op: "/", L: l, R: r} }
func add(l, r Node) Node { return &Binary{Op: "+", L: l, R: r} }
func sub(l, r Node) Node { return &Binary{Op: "-", L: l, R: r} }
func pow(l, r Node) Node { return &Binary{Op: "^", L: l, R: r} }
func call(name string, x Node) Node { return &Call{Name: name, Args: []Node{x}} }

func dependsOn(n Node, v string) bool {
	switch n := n.(type) {
	case *Symbol:
		return n.Name == v
	case *Unary:
		return dependsOn(n.X, v)
	case *Binary:
		return dependsOn(n.L, v) || dependsOn(n.R, v)
	case *Call:
		for _, a := range n.Args {
			if dependsOn(a, v) {
				return true
			}
		}
	case *Factorial:
		return dependsOn(n.X, v)
	case *MatrixLit:
		for _, row := range n.Rows {
			for _, c := range row {
				if dependsOn(c, v) {
					return true
				}
			}
		}
	}
	return false
}

func derive(n Node, v string) (Node, error) {
	if !dependsOn(n, v) {
		return num(0), nil
	}
	switch n := n.(type) {
	case *Symbol:
		return num(1), nil
	case *Unary:
		d, err := derive(n.X, v)
		if err != nil {
			return nil, err
		}
		if n.Op == "+" {
			return d, nil
		}
		return &Unary{Op: "-", X: d}, nil
	case *Binary:
		return deriveBinary(n, v)
	case *Call:
		return deriveCall(n, v)
	}
	return nil, fmt.Errorf("%s: %w", n.String(), ErrNotDifferentiable)
}

func deriveBinary(n *Binary, v string) (Node, error) {
	du, err := derive(n.L, v)
	if err != nil {
		return nil, err
	}
	dw, err := derive(n.R, v)
	if err != nil {
		return nil, err
	}
	u, w := n.L, n.R

	switch n.Op {
	case "+":
		return add(du, dw), nil
	case "-":
		return sub(du, dw), nil
	case "*":
		return add(mul(du, w), mul(u, dw)), nil
	case "/":
		return div(sub(mul(du, w), mul(u, dw)), pow(w, num(2))), nil
	case "^":
		switch {
		case !dependsOn(w, v):
			// power rule
			return mul(mul(w, pow(u, sub(w, num(1)))), du), nil
		case !dependsOn(u, v):
			// a^w -> a^w * ln(a) * w'
			return mul(mul(pow(u, w), call("ln", u)), dw), nil
		default:
			// u^w -> u^w * (w' ln(u) + w u'/u)
			return mul(pow(u, w), add(mul(dw, call("ln", u)), div(mul(w, du), u))), nil
		}
	}
	return nil, fmt.Errorf("operator %s: %w", n.Op, ErrNotDifferentiable)
}

func deriveCall(n *Call, v string) (Node, error) {
	if len(n.Args) != 1 {
		return nil, fmt.Errorf("%s: %w", n.Name, ErrNotDifferentiable)
	}
	u := n.Args[0]
	du, err := derive(u, v)
	if err != nil {
		return nil, err
	}

	var outer Node
	switch n.Name {
	case "sin":
		outer = call("cos", u)
	case "cos":
		outer = &Unary{Op: "-", X: call("sin", u)}
	case "tan":
		outer = div(num(1), pow(call("cos", u), num(2)))
	case "exp":
		outer = call("exp", u)
	case "ln":
		outer = div(num(1), u)
	case "log", "log10":
		outer = div(num(1), mul(u, call("ln", num(10))))
	case "sqrt":
		outer = div(num(1), mul(num(2), call("sqrt", u)))
	case "asin":
		outer = div(num(1), call("sqrt", sub(num(1), pow(u, num(2)))))
	case "acos":
		outer = &Unary{Op: "-", X: div(num(1), call("sqrt", sub(num(1), pow(u, num(2)))))}
	case "atan":
		outer = div(num(1), add(num(1), pow(u, num(2))))
	default:
		return nil, fmt.Errorf("%s: %w", n.Name, ErrNotDifferentiable)
	}
	return mul(outer, du), nil
}
